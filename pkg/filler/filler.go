// Package filler populates one pod instance from one normalized field
// record. Steps run in a fixed order; each is best-effort on absence,
// and only a setter error aborts the remaining steps of that instance.
package filler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/atlanticwaters/podfill/models"
	"github.com/atlanticwaters/podfill/pkg/imageset"
	"github.com/atlanticwaters/podfill/pkg/locator"
	"github.com/atlanticwaters/podfill/pkg/rating"
	"github.com/atlanticwaters/podfill/pkg/textset"
)

// modelHint marks the label text that carries the model number.
const modelHint = "model"

// Filler orchestrates locator, setters and the rating encoder for one
// instance at a time.
type Filler struct {
	Text   *textset.Setter
	Images *imageset.Setter
	Layers models.LayerNames
}

func New(text *textset.Setter, images *imageset.Setter, layers models.LayerNames) *Filler {
	return &Filler{Text: text, Images: images, Layers: layers}
}

// Fill applies fields to pod. Steps already applied are not rolled back
// on failure; isolation is per-instance, handled by the orchestrator.
func (f *Filler) Fill(pod models.InstanceNode, fields models.PodFields) error {
	if err := f.fillLabels(pod, fields); err != nil {
		return err
	}
	if err := f.fillPrice(pod, fields); err != nil {
		return err
	}
	if fields.WasPrice != "" {
		textset.SetVisibility(pod, f.Layers.DiscountPrice, true)
	}
	rating.ApplyStars(f.starInstances(pod), fields.StarFills)
	if err := f.fillRatingTexts(pod, fields); err != nil {
		return err
	}
	if err := f.fillBadges(pod, fields); err != nil {
		return err
	}
	textset.SetVisibility(pod, f.Layers.PickupFrame, fields.ShowPickup)
	if err := f.fillDelivery(pod, fields); err != nil {
		return err
	}
	if err := f.fillAttributes(pod, fields); err != nil {
		return err
	}
	if err := f.Text.SetNamedText(pod, f.Layers.ButtonTitle, fields.ButtonLabel); err != nil {
		return err
	}

	// Images run last: they are the most expensive and failure-prone
	// operations, and each one is isolated inside the image setter.
	if !fields.Hero.IsZero() {
		f.Images.SetHero(pod, fields.Hero)
	}
	if len(fields.Thumbnails) > 0 {
		f.Images.SetThumbnails(pod, fields.Thumbnails)
	}
	return nil
}

// fillLabels writes brand and title into the label texts by position:
// with two or more texts the first becomes the brand and the last the
// title; a single text takes the concatenation. A label whose current
// content mentions the model hint takes the model number (first match
// wins).
func (f *Filler) fillLabels(pod models.InstanceNode, fields models.PodFields) error {
	labels := locator.FindTextDescendants(pod, f.Layers.ProductLabels)

	switch {
	case len(labels) >= 2:
		if err := f.Text.SetText(labels[0], fields.BrandName); err != nil {
			return err
		}
		if err := f.Text.SetText(labels[len(labels)-1], fields.ProductTitle); err != nil {
			return err
		}
	case len(labels) == 1:
		if err := f.Text.SetText(labels[0], fields.BrandName+" "+fields.ProductTitle); err != nil {
			return err
		}
	}

	for _, label := range labels {
		if strings.Contains(strings.ToLower(label.Characters()), modelHint) {
			return f.Text.SetText(label, fields.ModelNumber)
		}
	}
	return nil
}

// fillPrice writes dollars and cents into the main-price texts by
// position. Three or more texts leave index 0 (the currency symbol)
// untouched; exactly two means no symbol text exists.
func (f *Filler) fillPrice(pod models.InstanceNode, fields models.PodFields) error {
	prices := locator.FindTextDescendants(pod, f.Layers.MainPrice)

	var dollars, cents models.TextNode
	switch {
	case len(prices) >= 3:
		dollars, cents = prices[1], prices[2]
	case len(prices) == 2:
		dollars, cents = prices[0], prices[1]
	default:
		return nil
	}

	if err := f.Text.SetText(dollars, fields.PriceDollars); err != nil {
		return err
	}
	return f.Text.SetText(cents, fields.PriceCents)
}

// Rating-text classification policy. Each text under the rating block is
// read once and matched against both roles independently; a node can
// satisfy both, the heuristic is not mutually exclusive by construction.
var (
	// average display: short, numeric-leading, no parentheses ("4.5")
	leadingDigit = regexp.MustCompile(`^\d`)
	// review count: parenthesized, or a bare numeral of 2+ digits ("(548)")
	bareCount = regexp.MustCompile(`^\d{2,}$`)
)

func isAverageText(chars string) bool {
	return leadingDigit.MatchString(chars) && len(chars) <= 4 && !strings.Contains(chars, "(")
}

func isReviewCountText(chars string) bool {
	return strings.Contains(chars, "(") || bareCount.MatchString(chars)
}

func (f *Filler) fillRatingTexts(pod models.InstanceNode, fields models.PodFields) error {
	for _, text := range locator.FindTextDescendants(pod, f.Layers.Rating) {
		chars := strings.TrimSpace(text.Characters())
		if isAverageText(chars) {
			if err := f.Text.SetText(text, fields.RatingAverage); err != nil {
				return err
			}
		}
		if isReviewCountText(chars) {
			if err := f.Text.SetText(text, fields.ReviewCount); err != nil {
				return err
			}
		}
	}
	return nil
}

// fillBadges walks the badge containers in document order. A slot with a
// label gets its label sub-container revealed and the first text inside
// it set; a slot without one is hidden whole. Only the first MaxBadges
// slots can carry labels.
func (f *Filler) fillBadges(pod models.InstanceNode, fields models.PodFields) error {
	containers := locator.FindAllNamedChildren(pod, f.Layers.BadgeGroup, f.Layers.Badge)
	for i, container := range containers {
		var label string
		if i < len(fields.Badges) && i < models.MaxBadges {
			label = fields.Badges[i]
		}

		if label == "" {
			container.SetVisible(false)
			continue
		}

		labelContainer := locator.FindChildByName(container, f.Layers.BadgeLabel)
		if labelContainer == nil {
			continue
		}
		texts := locator.FindTextDescendants(container, f.Layers.BadgeLabel)
		if len(texts) > 0 {
			if err := f.Text.SetText(texts[0], label); err != nil {
				return err
			}
		}
		labelContainer.SetVisible(true)
	}
	return nil
}

// fillDelivery always reveals the delivery frame and writes its detail
// text; unlike pickup, delivery is never hidden based on data.
func (f *Filler) fillDelivery(pod models.InstanceNode, fields models.PodFields) error {
	frame := locator.FindChildByName(pod, f.Layers.DeliveryFrame)
	if frame == nil {
		return nil
	}
	frame.SetVisible(true)
	return f.Text.SetNamedText(frame, f.Layers.FulfillmentDetail, fields.DeliveryText)
}

// fillAttributes targets the generically named "Attribute N" / "Value N"
// text pairs that only exist in list-style pod variants; each pair is an
// independent no-op when absent.
func (f *Filler) fillAttributes(pod models.InstanceNode, fields models.PodFields) error {
	for i, entry := range fields.Attributes {
		if i >= models.MaxAttributes {
			break
		}
		slot := i + 1
		if err := f.Text.SetNamedText(pod, fmt.Sprintf("Attribute %d", slot), entry.Label); err != nil {
			return err
		}
		if err := f.Text.SetNamedText(pod, fmt.Sprintf("Value %d", slot), entry.Value); err != nil {
			return err
		}
	}
	return nil
}

// starInstances returns the star instances under the rating block's
// stars frame, in document order.
func (f *Filler) starInstances(pod models.InstanceNode) []models.InstanceNode {
	ratingFrame := locator.FindChildByName(pod, f.Layers.Rating)
	if ratingFrame == nil {
		return nil
	}
	starsFrame := locator.FindChildByName(ratingFrame, f.Layers.Stars)
	if starsFrame == nil {
		return nil
	}

	var stars []models.InstanceNode
	for _, child := range starsFrame.Children() {
		if instance, ok := child.(models.InstanceNode); ok {
			stars = append(stars, instance)
		}
	}
	return stars
}
