package textset

import (
	"strings"
	"testing"

	"github.com/atlanticwaters/podfill/models"
	"github.com/atlanticwaters/podfill/pkg/scene"
)

var fallback = models.FontFace{Family: "Inter", Style: "Regular"}

func TestFontCache_LoadsOnce(t *testing.T) {
	fonts := scene.NewFonts()
	cache := NewFontCache()
	face := models.FontFace{Family: "Roboto", Style: "Bold"}

	for i := 0; i < 3; i++ {
		if err := cache.Ensure(fonts, face); err != nil {
			t.Fatalf("Ensure call %d: %v", i, err)
		}
	}
	if got := len(fonts.Loads()); got != 1 {
		t.Errorf("host saw %d loads, want 1", got)
	}
}

func TestFontCache_FailureNotCached(t *testing.T) {
	fonts := scene.NewFonts()
	cache := NewFontCache()
	face := models.FontFace{Family: "Ghost", Style: "Thin"}
	fonts.Fail(face)

	if err := cache.Ensure(fonts, face); err == nil {
		t.Fatal("Ensure should surface the load error")
	}
	// the same face must be retried, not served from cache
	if err := cache.Ensure(fonts, face); err == nil {
		t.Error("a failed face must not be cached as loaded")
	}
}

func TestSetText(t *testing.T) {
	fonts := scene.NewFonts()
	setter := NewSetter(fonts, NewFontCache(), fallback)
	node := scene.NewText("Title", "old", models.FontFace{Family: "Roboto", Style: "Regular"})

	if err := setter.SetText(node, "new value"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	if node.Characters() != "new value" {
		t.Errorf("characters = %q, want %q", node.Characters(), "new value")
	}
}

func TestSetText_FallbackFace(t *testing.T) {
	fonts := scene.NewFonts()
	missing := models.FontFace{Family: "Missing", Style: "Black"}
	fonts.Fail(missing)

	setter := NewSetter(fonts, NewFontCache(), fallback)
	node := scene.NewText("Title", "old", missing)

	if err := setter.SetText(node, "replaced"); err != nil {
		t.Fatalf("SetText with fallback: %v", err)
	}
	if node.Characters() != "replaced" {
		t.Errorf("characters = %q, want %q after fallback load", node.Characters(), "replaced")
	}
	loads := fonts.Loads()
	if len(loads) != 1 || loads[0] != fallback {
		t.Errorf("host loads = %v, want just the fallback face", loads)
	}
}

func TestSetText_FallbackFailureAborts(t *testing.T) {
	fonts := scene.NewFonts()
	missing := models.FontFace{Family: "Missing", Style: "Black"}
	fonts.Fail(missing)
	fonts.Fail(fallback)

	setter := NewSetter(fonts, NewFontCache(), fallback)
	node := scene.NewText("Title", "old", missing)

	err := setter.SetText(node, "replaced")
	if err == nil {
		t.Fatal("want an error when the fallback face cannot load")
	}
	if !strings.Contains(err.Error(), "failed to load fallback font") {
		t.Errorf("error = %q, want fallback load failure", err)
	}
	if node.Characters() != "old" {
		t.Errorf("characters = %q, want unchanged on abort", node.Characters())
	}
}

func TestSetNamedText(t *testing.T) {
	fonts := scene.NewFonts()
	setter := NewSetter(fonts, NewFontCache(), fallback)
	title := scene.NewText("Button title", "old")
	root := scene.NewFrame("Pod", scene.NewFrame("Footer", title))

	if err := setter.SetNamedText(root, "Button title", "Add to Cart"); err != nil {
		t.Fatalf("SetNamedText: %v", err)
	}
	if title.Characters() != "Add to Cart" {
		t.Errorf("characters = %q, want %q", title.Characters(), "Add to Cart")
	}

	// absent layer and non-text match are both silent no-ops
	if err := setter.SetNamedText(root, "No Such Layer", "x"); err != nil {
		t.Errorf("absent layer: %v", err)
	}
	if err := setter.SetNamedText(root, "Footer", "x"); err != nil {
		t.Errorf("non-text layer: %v", err)
	}
}

func TestSetVisibility(t *testing.T) {
	pickup := scene.NewFrame("BETA Fulfillment - Pickup")
	root := scene.NewFrame("Pod", pickup)

	SetVisibility(root, "BETA Fulfillment - Pickup", false)
	if pickup.Visible() {
		t.Error("pickup frame should be hidden")
	}
	SetVisibility(root, "BETA Fulfillment - Pickup", true)
	if !pickup.Visible() {
		t.Error("pickup frame should be visible again")
	}
	// absent layer: no panic, nothing to assert
	SetVisibility(root, "Missing", true)
}
