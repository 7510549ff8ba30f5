package catalog

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/atlanticwaters/podfill/models"
	"github.com/atlanticwaters/podfill/pkg/rating"
)

const (
	// gallery URLs carry a size token; swapping it requests the small
	// rendition for thumbnail slots
	gallerySizeToken   = "_600."
	thumbnailSizeToken = "_100."

	buttonLabel         = "Add to Cart"
	deliveryAvailable   = "Delivery available"
	deliveryUnavailable = "Unavailable"
	modelNumberPrefix   = "Model# "
)

// groupedDigits formats like the catalog's locale: 1299 -> "1,299".
var groupedDigits = message.NewPrinter(language.English)

// Mapper transforms catalog products into pod field records. Mode picks
// the image delivery strategy: bytes mode resolves payloads here via the
// client, URL mode passes references through for the host to fetch.
type Mapper struct {
	Mode   string
	Client *Client
}

func NewMapper(mode string, client *Client) *Mapper {
	return &Mapper{Mode: mode, Client: client}
}

// MapProduct builds the normalized field record for one product.
func (m *Mapper) MapProduct(product models.CatalogProduct) models.PodFields {
	heroURL := firstNonEmpty(product.Images.Medium, product.Images.Large, product.Images.Primary)
	thumbnailURLs := thumbnailSources(product)
	dollars, cents := splitPrice(product.Price.Current)

	average := product.Rating.Average
	ratingAverage := "0.0"
	if average > 0 {
		ratingAverage = fmt.Sprintf("%.1f", average)
	}
	reviewCount := "(0)"
	if product.Rating.Count > 0 {
		reviewCount = groupedDigits.Sprintf("(%d)", product.Rating.Count)
	}

	modelNumber := ""
	if product.ModelNumber != "" {
		modelNumber = modelNumberPrefix + product.ModelNumber
	}

	badges := product.Badges
	if len(badges) > models.MaxBadges {
		badges = badges[:models.MaxBadges]
	}

	attributes := make([]models.AttributeEntry, 0, models.MaxAttributes)
	for _, entry := range product.Specifications {
		if len(attributes) == models.MaxAttributes {
			break
		}
		attributes = append(attributes, models.AttributeEntry{Label: entry.Key, Value: entry.Value})
	}

	deliveryText := deliveryUnavailable
	if product.Availability.InStock {
		deliveryText = deliveryAvailable
	}

	fields := models.PodFields{
		BrandName:     product.Brand,
		ProductTitle:  product.Title,
		ModelNumber:   modelNumber,
		Badges:        badges,
		StarFills:     rating.ToFillStates(average),
		RatingAverage: ratingAverage,
		ReviewCount:   reviewCount,
		PriceDollars:  groupedDigits.Sprintf("%d", dollars),
		PriceCents:    fmt.Sprintf("%02d", cents),
		// the catalog schema has no discount-price field; the discount
		// frame hook stays dormant until one exists
		WasPrice:     "",
		ShowPickup:   product.Availability.InStock,
		DeliveryText: deliveryText,
		Attributes:   attributes,
		ButtonLabel:  buttonLabel,
	}

	fields.Hero = m.imageRef(heroURL)
	for _, url := range thumbnailURLs {
		ref := m.imageRef(url)
		if !ref.IsZero() {
			fields.Thumbnails = append(fields.Thumbnails, ref)
		}
	}
	return fields
}

// imageRef resolves one image source according to the active strategy.
// In bytes mode a failed payload fetch degrades to an absent ref.
func (m *Mapper) imageRef(url string) models.ImageRef {
	if url == "" {
		return models.ImageRef{}
	}
	if m.Mode == models.ImageModeBytes && m.Client != nil {
		data, err := m.Client.FetchBytes(url)
		if err != nil {
			return models.ImageRef{}
		}
		return models.ImageRef{Bytes: data}
	}
	return models.ImageRef{URL: url}
}

// thumbnailSources lists the primary thumbnail first, then gallery
// entries rewritten to the small rendition, de-duplicated by resulting
// URL and capped at the slot count.
func thumbnailSources(product models.CatalogProduct) []string {
	var urls []string
	seen := make(map[string]struct{})
	add := func(url string) {
		if url == "" {
			return
		}
		if _, ok := seen[url]; ok {
			return
		}
		seen[url] = struct{}{}
		urls = append(urls, url)
	}

	add(product.Images.Thumbnail)
	for _, galleryURL := range product.Images.Gallery {
		if len(urls) >= models.MaxThumbnails {
			break
		}
		add(strings.Replace(galleryURL, gallerySizeToken, thumbnailSizeToken, 1))
	}

	if len(urls) > models.MaxThumbnails {
		urls = urls[:models.MaxThumbnails]
	}
	return urls
}

// splitPrice decomposes a price into display dollars and cents: dollars
// by integer floor, cents by rounding the fractional part to the cent
// boundary (half rounds up).
func splitPrice(price float64) (dollars, cents int) {
	if price < 0 {
		price = 0
	}
	whole := math.Floor(price)
	return int(whole), int(math.Round((price - whole) * 100))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
