// Package snapshot loads document snapshots into scene trees and
// exports mutated scene state.
//
// A snapshot is the HTML export of a design document: each element is
// one node, with data-kind discriminating text, geometry, instance and
// container nodes, data-name carrying the layer name, and instances
// declaring their component and variant properties via data-component
// and data-props.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/atlanticwaters/podfill/models"
	"github.com/atlanticwaters/podfill/pkg/scene"
)

// Load parses a snapshot into an in-memory scene tree rooted at a
// synthetic document frame.
func Load(r io.Reader) (*scene.Frame, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	root := scene.NewFrame("Document")
	doc.Find("body").Children().Each(func(i int, s *goquery.Selection) {
		root.Append(buildNode(s))
	})
	return root, nil
}

// LoadFile loads a snapshot from disk.
func LoadFile(path string) (*scene.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func buildNode(s *goquery.Selection) models.SceneNode {
	name := s.AttrOr("data-name", goquery.NodeName(s))
	kind := s.AttrOr("data-kind", string(models.KindContainer))

	var node models.SceneNode
	switch models.NodeKind(kind) {
	case models.KindText:
		node = scene.NewText(name, strings.TrimSpace(s.Text()), parseFaces(s.AttrOr("data-font", ""))...)

	case models.KindGeometry:
		node = scene.NewRect(name)

	case models.KindInstance:
		instance := scene.NewInstance(name, s.AttrOr("data-component", name))
		for _, property := range splitList(s.AttrOr("data-props", "")) {
			instance.DefineVariant(property, "")
		}
		s.Children().Each(func(i int, child *goquery.Selection) {
			instance.Append(buildNode(child))
		})
		node = instance

	default:
		frame := scene.NewFrame(name)
		s.Children().Each(func(i int, child *goquery.Selection) {
			frame.Append(buildNode(child))
		})
		node = frame
	}

	if _, hidden := s.Attr("data-hidden"); hidden {
		node.SetVisible(false)
	}
	return node
}

// parseFaces reads "Family/Style;Family/Style" font declarations.
func parseFaces(attr string) []models.FontFace {
	var faces []models.FontFace
	for _, decl := range splitList(attr) {
		family, style, found := strings.Cut(decl, "/")
		if !found {
			style = "Regular"
		}
		faces = append(faces, models.FontFace{Family: strings.TrimSpace(family), Style: strings.TrimSpace(style)})
	}
	return faces
}

func splitList(attr string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(attr, func(r rune) bool { return r == ';' || r == ',' }) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Export serializes the tree's current state as indented JSON, the
// inspectable artifact of a populate run.
func Export(root models.SceneNode) ([]byte, error) {
	data, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to export scene state: %w", err)
	}
	return data, nil
}
