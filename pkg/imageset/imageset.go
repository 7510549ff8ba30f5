// Package imageset applies image fills to the hero slot and the SKU
// thumbnail tiles. Image delivery runs behind a Source so the filler
// never knows which strategy is active.
package imageset

import (
	"fmt"
	"sync"

	"github.com/atlanticwaters/podfill/models"
	"github.com/atlanticwaters/podfill/pkg/locator"
)

// Source resolves an image reference into a host image handle. Two
// strategies exist: raw bytes resolved upstream, and fetchable URLs the
// host retrieves itself. Exactly one is active per deployment.
type Source interface {
	Resolve(ref models.ImageRef) (models.ImageHandle, error)
}

// BytesSource resolves refs whose payload was fetched upstream.
type BytesSource struct {
	Factory models.ImageFactory
}

func (s BytesSource) Resolve(ref models.ImageRef) (models.ImageHandle, error) {
	if len(ref.Bytes) == 0 {
		return models.ImageHandle{}, fmt.Errorf("image ref has no byte payload")
	}
	return s.Factory.FromBytes(ref.Bytes)
}

// URLSource hands the URL to the host, which fetches and decodes it.
type URLSource struct {
	Factory models.ImageFactory
}

func (s URLSource) Resolve(ref models.ImageRef) (models.ImageHandle, error) {
	if ref.URL == "" {
		return models.ImageHandle{}, fmt.Errorf("image ref has no URL")
	}
	return s.Factory.FromURL(ref.URL)
}

// ForMode returns the source matching a configured image mode.
func ForMode(mode string, factory models.ImageFactory) Source {
	if mode == models.ImageModeBytes {
		return BytesSource{Factory: factory}
	}
	return URLSource{Factory: factory}
}

// Setter locates fill targets inside a pod and applies resolved images.
// Every image operation is isolated: one failed resolution never blocks
// the others.
type Setter struct {
	Source Source
	Layers models.LayerNames
}

func NewSetter(source Source, layers models.LayerNames) *Setter {
	return &Setter{Source: source, Layers: layers}
}

// SetHero fills the hero image slot: the inner image under the media
// frame, or the outer image container when the inner one is absent. A
// pod with no image container at all, or a failed resolution, is a
// skip; the media frame itself is never painted.
func (s *Setter) SetHero(root models.SceneNode, ref models.ImageRef) {
	target := locator.FindFillableDescendant(root, s.Layers.ProductMedia, s.Layers.Image, s.Layers.Image)
	if target == nil {
		return
	}
	handle, err := s.Source.Resolve(ref)
	if err != nil {
		return
	}
	target.SetImageFill(handle)
}

// SetThumbnails fills the SKU thumbnail tiles, one ref per tile slot in
// document order. All resolutions for an instance are issued
// concurrently; a failed slot is skipped without cancelling siblings.
// Fills are applied only after every resolution has settled.
func (s *Setter) SetThumbnails(root models.SceneNode, refs []models.ImageRef) {
	tiles := s.thumbnailTargets(root)
	count := len(tiles)
	if len(refs) < count {
		count = len(refs)
	}
	if count == 0 {
		return
	}

	handles := make([]*models.ImageHandle, count)
	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			handle, err := s.Source.Resolve(refs[slot])
			if err != nil {
				return
			}
			handles[slot] = &handle
		}(i)
	}
	wg.Wait()

	for i, handle := range handles {
		if handle != nil {
			tiles[i].SetImageFill(*handle)
		}
	}
}

// thumbnailTargets walks SKU Selector > SKU Options > Tile Group, then
// for each Tile child descends Tile Base > image column > Image to the
// fill-capable node. Tiles missing any link in the chain are skipped.
func (s *Setter) thumbnailTargets(root models.SceneNode) []models.FillableNode {
	tileGroup := locator.FindChildByName(root, s.Layers.SKUSelector)
	if tileGroup == nil {
		return nil
	}
	tileGroup = locator.FindChildByName(tileGroup, s.Layers.SKUOptions)
	if tileGroup == nil {
		return nil
	}
	tileGroup = locator.FindChildByName(tileGroup, s.Layers.TileGroup)
	if tileGroup == nil {
		return nil
	}

	var targets []models.FillableNode
	for _, tile := range tileGroup.Children() {
		if tile.Name() != s.Layers.Tile {
			continue
		}
		node := models.SceneNode(tile)
		for _, name := range []string{s.Layers.TileBase, s.Layers.TileImageColumn, s.Layers.Image} {
			if node = locator.FindChildByName(node, name); node == nil {
				break
			}
		}
		// unlike the hero slot there is no outer fallback: the tile's
		// Image node itself must be fill-capable
		if target, ok := node.(models.FillableNode); ok {
			targets = append(targets, target)
		}
	}
	return targets
}
