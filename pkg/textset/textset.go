// Package textset writes text and visibility onto discovered nodes.
package textset

import (
	"fmt"
	"sync"

	"github.com/atlanticwaters/podfill/models"
	"github.com/atlanticwaters/podfill/pkg/locator"
)

// FontCache remembers which faces have already been loaded so each face
// is requested from the host once. The cache is owned by one population
// session and injected into the setter, not process-global.
type FontCache struct {
	mu     sync.Mutex
	loaded map[string]struct{}
}

func NewFontCache() *FontCache {
	return &FontCache{loaded: make(map[string]struct{})}
}

// Ensure loads a face through the loader unless it is already cached.
// Failures are not cached, so a transient font error can recover on a
// later call.
func (c *FontCache) Ensure(loader models.FontLoader, face models.FontFace) error {
	c.mu.Lock()
	_, ok := c.loaded[face.Key()]
	c.mu.Unlock()
	if ok {
		return nil
	}

	if err := loader.LoadFont(face); err != nil {
		return err
	}

	c.mu.Lock()
	c.loaded[face.Key()] = struct{}{}
	c.mu.Unlock()
	return nil
}

// Setter applies text content with the font-loading precondition.
type Setter struct {
	Loader   models.FontLoader
	Cache    *FontCache
	Fallback models.FontFace
}

func NewSetter(loader models.FontLoader, cache *FontCache, fallback models.FontFace) *Setter {
	return &Setter{Loader: loader, Cache: cache, Fallback: fallback}
}

// SetText ensures every face used by the node's character ranges is
// loaded, then replaces the characters. A face that fails to load is
// substituted by the fallback face and the text is still written; only a
// fallback load failure aborts.
func (s *Setter) SetText(node models.TextNode, value string) error {
	for _, face := range node.FontFaces() {
		if err := s.Cache.Ensure(s.Loader, face); err != nil {
			if fbErr := s.Cache.Ensure(s.Loader, s.Fallback); fbErr != nil {
				return fmt.Errorf("failed to load fallback font %s: %w", s.Fallback.Key(), fbErr)
			}
		}
	}
	node.SetCharacters(value)
	return nil
}

// SetNamedText writes value into the named text layer under root.
// Missing layers and non-text matches are skipped.
func (s *Setter) SetNamedText(root models.SceneNode, name, value string) error {
	node := locator.FindChildByName(root, name)
	if node == nil {
		return nil
	}
	text, ok := node.(models.TextNode)
	if !ok {
		return nil
	}
	return s.SetText(text, value)
}

// SetVisibility flips the named layer's visible flag; no-op when absent.
func SetVisibility(root models.SceneNode, name string, visible bool) {
	if node := locator.FindChildByName(root, name); node != nil {
		node.SetVisible(visible)
	}
}
