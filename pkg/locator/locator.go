// Package locator implements name-keyed discovery over the scene tree.
// Every lookup is best-effort: absence is a normal outcome and callers
// skip the corresponding field rather than abort.
package locator

import (
	"strings"

	"github.com/atlanticwaters/podfill/models"
)

// FindChildByName walks root's descendants depth-first, pre-order, and
// returns the first node carrying the given layer name, or nil.
// Duplicate names resolve by traversal order only; the authoring
// convention is expected to avoid them.
func FindChildByName(root models.SceneNode, name string) models.SceneNode {
	if root == nil {
		return nil
	}
	for _, child := range root.Children() {
		if child.Name() == name {
			return child
		}
		if found := FindChildByName(child, name); found != nil {
			return found
		}
	}
	return nil
}

// FindTextDescendants resolves the named container under root and
// collects all text leaves beneath it in document order. Returns an
// empty slice when the container is absent or holds no text.
func FindTextDescendants(root models.SceneNode, containerName string) []models.TextNode {
	container := FindChildByName(root, containerName)
	if container == nil {
		return nil
	}
	var texts []models.TextNode
	collectText(container, &texts)
	return texts
}

func collectText(node models.SceneNode, out *[]models.TextNode) {
	if text, ok := node.(models.TextNode); ok {
		*out = append(*out, text)
		return
	}
	for _, child := range node.Children() {
		collectText(child, out)
	}
}

// FindAllNamedChildren resolves the named container and returns its
// direct children matching childName, in document order. Used for
// repeated-slot constructs like badges.
func FindAllNamedChildren(root models.SceneNode, containerName, childName string) []models.SceneNode {
	container := FindChildByName(root, containerName)
	if container == nil {
		return nil
	}
	var matches []models.SceneNode
	for _, child := range container.Children() {
		if child.Name() == childName {
			matches = append(matches, child)
		}
	}
	return matches
}

// FindFillableDescendant walks a fixed sequence of named containers and
// returns the innermost fill-capable node found on the path, falling
// back to an outer one when no deeper match exists. The first path
// segment is the enclosing frame, never a fill target: a pod missing
// every inner segment yields nil rather than painting the frame itself.
func FindFillableDescendant(root models.SceneNode, path ...string) models.FillableNode {
	var innermost models.FillableNode
	node := root
	for i, name := range path {
		next := FindChildByName(node, name)
		if next == nil {
			break
		}
		if fillable, ok := next.(models.FillableNode); ok && i > 0 {
			innermost = fillable
		}
		node = next
	}
	return innermost
}

// IsTargetInstance reports whether node is a pod instance, recognized by
// its component (or component-set) name containing componentLabel.
func IsTargetInstance(node models.SceneNode, componentLabel string) (models.InstanceNode, bool) {
	instance, ok := node.(models.InstanceNode)
	if !ok || node.Kind() != models.KindInstance {
		return nil, false
	}
	if !strings.Contains(instance.ComponentName(), componentLabel) {
		return nil, false
	}
	return instance, true
}

// CollectTargets resolves a selection to pod instances. Non-matching
// containers are recursed into, so a pod nested inside a selected frame
// is still found; a recognized instance's own children are never
// searched for nested targets.
func CollectTargets(selection []models.SceneNode, componentLabel string) []models.InstanceNode {
	var pods []models.InstanceNode
	for _, node := range selection {
		if instance, ok := IsTargetInstance(node, componentLabel); ok {
			pods = append(pods, instance)
			continue
		}
		pods = append(pods, CollectTargets(node.Children(), componentLabel)...)
	}
	return pods
}
