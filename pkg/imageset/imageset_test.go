package imageset

import (
	"fmt"
	"testing"

	"github.com/atlanticwaters/podfill/models"
	"github.com/atlanticwaters/podfill/pkg/scene"
)

// fakeFactory hashes URLs locally and fails the ones marked bad.
type fakeFactory struct {
	bad map[string]bool
}

func (f *fakeFactory) FromBytes(data []byte) (models.ImageHandle, error) {
	if len(data) == 0 {
		return models.ImageHandle{}, fmt.Errorf("empty payload")
	}
	return models.ImageHandle{Hash: "bytes:" + string(data)}, nil
}

func (f *fakeFactory) FromURL(url string) (models.ImageHandle, error) {
	if f.bad[url] {
		return models.ImageHandle{}, fmt.Errorf("fetch failed for %s", url)
	}
	return models.ImageHandle{Hash: "url:" + url}, nil
}

func newTile() (*scene.Frame, *scene.Rect) {
	image := scene.NewRect("Image")
	tile := scene.NewFrame("Tile",
		scene.NewFrame(".Tile Base",
			scene.NewFrame("col-left", image),
		),
	)
	return tile, image
}

func podWithTiles(tiles ...models.SceneNode) *scene.Frame {
	return scene.NewFrame("Pod",
		scene.NewFrame("SKU Selector",
			scene.NewFrame("SKU Options",
				scene.NewFrame("Tile Group", tiles...),
			),
		),
	)
}

func TestSetHero(t *testing.T) {
	inner := scene.NewRect("Image")
	root := scene.NewFrame("Pod",
		scene.NewFrame("Product Media",
			scene.NewFrame("Image", inner),
		),
	)

	setter := NewSetter(URLSource{Factory: &fakeFactory{}}, models.DefaultLayerNames())
	setter.SetHero(root, models.ImageRef{URL: "https://cdn.example/hero.jpg"})

	fill, ok := inner.Fill()
	if !ok {
		t.Fatal("hero slot has no fill")
	}
	if fill.Hash != "url:https://cdn.example/hero.jpg" {
		t.Errorf("hero fill = %q, want the resolved URL handle", fill.Hash)
	}
}

func TestSetHero_OuterFallback(t *testing.T) {
	mediaImage := scene.NewFrame("Image")
	root := scene.NewFrame("Pod",
		scene.NewFrame("Product Media", mediaImage),
	)

	setter := NewSetter(URLSource{Factory: &fakeFactory{}}, models.DefaultLayerNames())
	setter.SetHero(root, models.ImageRef{URL: "https://cdn.example/hero.jpg"})

	if _, ok := mediaImage.Fill(); !ok {
		t.Error("outer image frame should carry the fill when the inner node is absent")
	}
}

func TestSetHero_NoImageContainer(t *testing.T) {
	media := scene.NewFrame("Product Media")
	root := scene.NewFrame("Pod", media)

	setter := NewSetter(URLSource{Factory: &fakeFactory{}}, models.DefaultLayerNames())
	setter.SetHero(root, models.ImageRef{URL: "https://cdn.example/hero.jpg"})

	if fill, ok := media.Fill(); ok {
		t.Errorf("media frame was filled with %q; a pod without an image container takes no hero", fill.Hash)
	}
}

func TestSetHero_ResolutionFailureSkips(t *testing.T) {
	inner := scene.NewRect("Image")
	root := scene.NewFrame("Pod",
		scene.NewFrame("Product Media",
			scene.NewFrame("Image", inner),
		),
	)

	factory := &fakeFactory{bad: map[string]bool{"https://cdn.example/broken.jpg": true}}
	setter := NewSetter(URLSource{Factory: factory}, models.DefaultLayerNames())
	setter.SetHero(root, models.ImageRef{URL: "https://cdn.example/broken.jpg"})

	if _, ok := inner.Fill(); ok {
		t.Error("failed resolution must leave the slot unfilled")
	}
}

func TestSetThumbnails(t *testing.T) {
	tileA, imageA := newTile()
	tileB, imageB := newTile()
	root := podWithTiles(tileA, tileB)

	setter := NewSetter(URLSource{Factory: &fakeFactory{}}, models.DefaultLayerNames())
	setter.SetThumbnails(root, []models.ImageRef{
		{URL: "https://cdn.example/a_100.jpg"},
		{URL: "https://cdn.example/b_100.jpg"},
		{URL: "https://cdn.example/unused.jpg"},
	})

	if fill, ok := imageA.Fill(); !ok || fill.Hash != "url:https://cdn.example/a_100.jpg" {
		t.Errorf("tile 0 fill = %v %v, want first ref", fill, ok)
	}
	if fill, ok := imageB.Fill(); !ok || fill.Hash != "url:https://cdn.example/b_100.jpg" {
		t.Errorf("tile 1 fill = %v %v, want second ref", fill, ok)
	}
}

func TestSetThumbnails_FailedSlotIsolated(t *testing.T) {
	tileA, imageA := newTile()
	tileB, imageB := newTile()
	tileC, imageC := newTile()
	root := podWithTiles(tileA, tileB, tileC)

	factory := &fakeFactory{bad: map[string]bool{"https://cdn.example/b_100.jpg": true}}
	setter := NewSetter(URLSource{Factory: factory}, models.DefaultLayerNames())
	setter.SetThumbnails(root, []models.ImageRef{
		{URL: "https://cdn.example/a_100.jpg"},
		{URL: "https://cdn.example/b_100.jpg"},
		{URL: "https://cdn.example/c_100.jpg"},
	})

	if _, ok := imageA.Fill(); !ok {
		t.Error("tile 0 should be filled despite tile 1 failing")
	}
	if _, ok := imageB.Fill(); ok {
		t.Error("tile 1 resolution failed and must stay unfilled")
	}
	if _, ok := imageC.Fill(); !ok {
		t.Error("tile 2 should be filled despite tile 1 failing")
	}
}

func TestSetThumbnails_MalformedTileSkipped(t *testing.T) {
	tileA, imageA := newTile()
	// tile missing the image column contributes no slot
	broken := scene.NewFrame("Tile", scene.NewFrame(".Tile Base"))
	tileC, imageC := newTile()
	root := podWithTiles(tileA, broken, tileC)

	setter := NewSetter(URLSource{Factory: &fakeFactory{}}, models.DefaultLayerNames())
	setter.SetThumbnails(root, []models.ImageRef{
		{URL: "https://cdn.example/a_100.jpg"},
		{URL: "https://cdn.example/c_100.jpg"},
	})

	if fill, _ := imageA.Fill(); fill.Hash != "url:https://cdn.example/a_100.jpg" {
		t.Errorf("tile 0 fill = %q, want first ref", fill.Hash)
	}
	// refs assign to surviving slots in order, so the third tile takes
	// the second ref
	if fill, _ := imageC.Fill(); fill.Hash != "url:https://cdn.example/c_100.jpg" {
		t.Errorf("tile 2 fill = %q, want second ref", fill.Hash)
	}
}

func TestSetThumbnails_NoTileGroup(t *testing.T) {
	root := scene.NewFrame("Pod")
	setter := NewSetter(URLSource{Factory: &fakeFactory{}}, models.DefaultLayerNames())
	// nothing to fill, must not panic
	setter.SetThumbnails(root, []models.ImageRef{{URL: "https://cdn.example/a_100.jpg"}})
}

func TestBytesSource(t *testing.T) {
	source := BytesSource{Factory: &fakeFactory{}}
	handle, err := source.Resolve(models.ImageRef{Bytes: []byte("png-data")})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if handle.Hash != "bytes:png-data" {
		t.Errorf("handle = %q, want byte-derived hash", handle.Hash)
	}
	if _, err := source.Resolve(models.ImageRef{URL: "https://cdn.example/a.jpg"}); err == nil {
		t.Error("bytes source must reject a ref without a payload")
	}
}

func TestURLSource(t *testing.T) {
	source := URLSource{Factory: &fakeFactory{}}
	if _, err := source.Resolve(models.ImageRef{Bytes: []byte("x")}); err == nil {
		t.Error("url source must reject a ref without a URL")
	}
}

func TestForMode(t *testing.T) {
	factory := &fakeFactory{}
	if _, ok := ForMode(models.ImageModeBytes, factory).(BytesSource); !ok {
		t.Error("bytes mode should select the bytes source")
	}
	if _, ok := ForMode(models.ImageModeURL, factory).(URLSource); !ok {
		t.Error("url mode should select the url source")
	}
}
