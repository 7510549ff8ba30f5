// Package catalog reads the remote product catalog and maps its records
// into pod field records.
package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atlanticwaters/podfill/models"
	"github.com/atlanticwaters/podfill/pkg/fetcher"
)

// Client fetches catalog documents, caching each URL's body for the
// cache TTL. The catalog is read-only from this side.
type Client struct {
	base    string
	fetcher *fetcher.Fetcher
	cache   *Cache
}

// NewClient trims a trailing slash off base so endpoint building stays
// uniform. cache may be nil to disable caching.
func NewClient(base string, f *fetcher.Fetcher, cache *Cache) *Client {
	return &Client{
		base:    strings.TrimSuffix(base, "/"),
		fetcher: f,
		cache:   cache,
	}
}

// CategoryIndex fetches the catalog's root index document.
func (c *Client) CategoryIndex() (*models.CategoryIndex, error) {
	var index models.CategoryIndex
	if err := c.getJSON(c.indexURL(), &index); err != nil {
		return nil, fmt.Errorf("failed to load category index: %w", err)
	}
	return &index, nil
}

// CategoryProducts fetches one category's product-list document.
func (c *Client) CategoryProducts(slugPath string) (*models.CategoryFile, error) {
	var file models.CategoryFile
	if err := c.getJSON(c.productsURL(slugPath), &file); err != nil {
		return nil, fmt.Errorf("failed to load category %q: %w", slugPath, err)
	}
	return &file, nil
}

// FetchBytes returns a raw body, cache-first. Used by the bytes-mode
// mapper for image payloads.
func (c *Client) FetchBytes(url string) ([]byte, error) {
	if c.cache != nil {
		if data, ok := c.cache.Get(url); ok {
			return data, nil
		}
	}

	data, err := c.fetcher.GetBytes(url)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		// cache write failures don't invalidate the fetched body
		_ = c.cache.Set(url, data)
	}
	return data, nil
}

func (c *Client) getJSON(url string, v any) error {
	data, err := c.FetchBytes(url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse JSON from %s: %w", url, err)
	}
	return nil
}
