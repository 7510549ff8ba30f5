package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Image delivery strategies. Exactly one is active per deployment.
const (
	ImageModeBytes = "bytes"
	ImageModeURL   = "url"
)

// DefaultCatalogBaseURL points at the published catalog data set.
const DefaultCatalogBaseURL = "https://atlanticwaters.github.io/Orange-Catalog/production%20data"

// LayerNames maps logical pod roles to the exact layer names the
// document authoring convention uses. This table is the contract between
// the component library and the engine; documents that deviate simply
// miss fields.
type LayerNames struct {
	ProductLabels     string `yaml:"product_labels"`
	MainPrice         string `yaml:"main_price"`
	DiscountPrice     string `yaml:"discount_price"`
	Rating            string `yaml:"rating"`
	Stars             string `yaml:"stars"`
	BadgeGroup        string `yaml:"badge_group"`
	Badge             string `yaml:"badge"`
	BadgeLabel        string `yaml:"badge_label"`
	PickupFrame       string `yaml:"pickup_frame"`
	DeliveryFrame     string `yaml:"delivery_frame"`
	FulfillmentDetail string `yaml:"fulfillment_detail"`
	ButtonTitle       string `yaml:"button_title"`
	ProductMedia      string `yaml:"product_media"`
	Image             string `yaml:"image"`
	SKUSelector       string `yaml:"sku_selector"`
	SKUOptions        string `yaml:"sku_options"`
	TileGroup         string `yaml:"tile_group"`
	Tile              string `yaml:"tile"`
	TileBase          string `yaml:"tile_base"`
	TileImageColumn   string `yaml:"tile_image_column"`

	// PodComponent is the substring matched against an instance's
	// component (or component-set) name to recognize a target.
	PodComponent string `yaml:"pod_component"`
}

// DefaultLayerNames returns the layer names of the current pod library.
func DefaultLayerNames() LayerNames {
	return LayerNames{
		ProductLabels:     "Product Labels",
		MainPrice:         "Main Price",
		DiscountPrice:     "Discount Price",
		Rating:            "BETA Rating",
		Stars:             "Stars",
		BadgeGroup:        "Badge Group",
		Badge:             "Badge",
		BadgeLabel:        "Label Container",
		PickupFrame:       "BETA Fulfillment - Pickup",
		DeliveryFrame:     "BETA Fulfillment - Delivery",
		FulfillmentDetail: "Fulfillment Detail",
		ButtonTitle:       "Button title",
		ProductMedia:      "Product Media",
		Image:             "Image",
		SKUSelector:       "SKU Selector",
		SKUOptions:        "SKU Options",
		TileGroup:         "Tile Group",
		Tile:              "Tile",
		TileBase:          ".Tile Base",
		TileImageColumn:   "col-left",
		PodComponent:      "Product Pod",
	}
}

// Config holds runtime configuration. Values come from an optional YAML
// file layered over defaults.
type Config struct {
	CatalogBaseURL string `yaml:"catalog_base_url"`
	CacheDir       string `yaml:"cache_dir"`
	// CacheTTL is a Go duration string, e.g. "24h".
	CacheTTL  string `yaml:"cache_ttl"`
	ImageMode string `yaml:"image_mode"`

	FallbackFont FontFace   `yaml:"fallback_font"`
	Layers       LayerNames `yaml:"layers"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		CatalogBaseURL: DefaultCatalogBaseURL,
		CacheDir:       ".podfill-cache",
		CacheTTL:       "24h",
		ImageMode:      ImageModeURL,
		FallbackFont:   FontFace{Family: "Inter", Style: "Regular"},
		Layers:         DefaultLayerNames(),
	}
}

// LoadConfig reads a YAML config file over the defaults. An empty path
// returns the defaults unchanged.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if config.ImageMode != ImageModeBytes && config.ImageMode != ImageModeURL {
		return nil, fmt.Errorf("invalid image_mode %q (want %q or %q)", config.ImageMode, ImageModeBytes, ImageModeURL)
	}
	return config, nil
}

// CacheMaxAge parses CacheTTL, falling back to 24h on a bad value.
func (c *Config) CacheMaxAge() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}
