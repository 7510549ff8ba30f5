package models

// Slot capacities of the pod component. Excess entries are dropped at
// record-assembly time, never treated as errors.
const (
	MaxThumbnails = 5
	MaxBadges     = 2
	MaxAttributes = 3
	StarSlots     = 5
)

// FillState is one discrete star slot state. Values double as the
// variant property value on the star component.
type FillState string

const (
	FillEmpty FillState = "0"
	FillHalf  FillState = "50"
	FillFull  FillState = "100"
)

// ImageRef points at one image payload. Exactly one of Bytes or URL is
// set, depending on the active delivery strategy.
type ImageRef struct {
	Bytes []byte `json:"-"`
	URL   string `json:"url,omitempty"`
}

// IsZero reports whether the ref carries no payload at all.
func (r ImageRef) IsZero() bool {
	return len(r.Bytes) == 0 && r.URL == ""
}

// AttributeEntry is one label/value pair shown in list-style pod variants.
type AttributeEntry struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// PodFields is the normalized field record applied to one pod instance.
// It is assembled once per target and treated as immutable afterwards.
type PodFields struct {
	BrandName    string `json:"brandName"`
	ProductTitle string `json:"productTitle"`
	ModelNumber  string `json:"modelNumber"`

	Hero       ImageRef   `json:"hero"`
	Thumbnails []ImageRef `json:"thumbnails,omitempty"`

	// Badge labels in slot order; an empty slot hides the badge.
	Badges []string `json:"badges,omitempty"`

	StarFills     []FillState `json:"starFills"`
	RatingAverage string      `json:"ratingAverage"`
	ReviewCount   string      `json:"reviewCount"`

	PriceDollars string `json:"priceDollars"`
	PriceCents   string `json:"priceCents"`
	// WasPrice is empty in the current catalog mapping; when present it
	// only reveals the discount frame, no text is written.
	WasPrice string `json:"wasPrice,omitempty"`

	ShowPickup   bool   `json:"showPickup"`
	DeliveryText string `json:"deliveryText"`

	Attributes []AttributeEntry `json:"attributes,omitempty"`

	ButtonLabel string `json:"buttonLabel"`
}
