package scene

import (
	"crypto/sha256"
	"fmt"
	"sync"

	"github.com/atlanticwaters/podfill/models"
	"github.com/atlanticwaters/podfill/pkg/fetcher"
)

// Fonts is an in-memory font service. Tests can mark faces as failing to
// exercise the fallback path; outside tests every load succeeds.
type Fonts struct {
	mu      sync.Mutex
	failing map[string]struct{}
	loads   []models.FontFace
}

func NewFonts() *Fonts {
	return &Fonts{}
}

// Fail makes future loads of the given face return an error.
func (f *Fonts) Fail(face models.FontFace) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing == nil {
		f.failing = make(map[string]struct{})
	}
	f.failing[face.Key()] = struct{}{}
}

func (f *Fonts) LoadFont(face models.FontFace) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.failing[face.Key()]; ok {
		return fmt.Errorf("font %s unavailable", face.Key())
	}
	f.loads = append(f.loads, face)
	return nil
}

// Loads returns every successful load in order.
func (f *Fonts) Loads() []models.FontFace {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.FontFace, len(f.loads))
	copy(out, f.loads)
	return out
}

// Images creates image handles the way the host would: content-hashed
// for byte payloads, fetched then hashed for remote refs.
type Images struct {
	fetcher *fetcher.Fetcher
}

func NewImages(f *fetcher.Fetcher) *Images {
	return &Images{fetcher: f}
}

func (im *Images) FromBytes(data []byte) (models.ImageHandle, error) {
	if len(data) == 0 {
		return models.ImageHandle{}, fmt.Errorf("empty image payload")
	}
	hash := sha256.Sum256(data)
	return models.ImageHandle{Hash: fmt.Sprintf("%x", hash)}, nil
}

func (im *Images) FromURL(url string) (models.ImageHandle, error) {
	data, err := im.fetcher.GetBytes(url)
	if err != nil {
		return models.ImageHandle{}, fmt.Errorf("failed to load image %s: %w", url, err)
	}
	return im.FromBytes(data)
}
