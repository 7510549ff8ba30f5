package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CatalogProduct is the compact product schema from the remote catalog's
// category listing files. Only the fields the mapper consumes are typed.
type CatalogProduct struct {
	ProductID   string `json:"productId"`
	ModelNumber string `json:"modelNumber"`
	Brand       string `json:"brand"`
	Title       string `json:"title"`
	Subcategory string `json:"subcategory"`
	Description string `json:"description"`

	Rating struct {
		Average float64 `json:"average"`
		Count   int     `json:"count"`
	} `json:"rating"`

	Images struct {
		Primary   string   `json:"primary"`
		Thumbnail string   `json:"thumbnail"`
		Small     string   `json:"small"`
		Medium    string   `json:"medium"`
		Large     string   `json:"large"`
		Gallery   []string `json:"gallery"`
	} `json:"images"`

	Badges []string `json:"badges"`

	Availability struct {
		InStock bool `json:"inStock"`
	} `json:"availability"`

	Price struct {
		Current  float64 `json:"current"`
		Currency string  `json:"currency"`
	} `json:"price"`

	Specifications Specifications `json:"specifications"`
	Highlights     []string       `json:"highlights"`
}

// SpecEntry is one specification label/value pair.
type SpecEntry struct {
	Key   string
	Value string
}

// Specifications keeps the document order of the catalog's spec object.
// A plain map would lose it, and the pod's attribute slots take the
// first entries in order.
type Specifications []SpecEntry

func (s *Specifications) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("specifications: expected object, got %v", tok)
	}

	var entries Specifications
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("specifications: non-string key %v", keyTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("specifications: value for %q: %w", key, err)
		}
		entries = append(entries, SpecEntry{Key: key, Value: value})
	}

	*s = entries
	return nil
}

func (s Specifications) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// CategoryNode is one entry in the category index tree.
type CategoryNode struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Slug          string         `json:"slug"`
	ProductCount  int            `json:"productCount"`
	Path          string         `json:"path,omitempty"`
	Subcategories []CategoryNode `json:"subcategories,omitempty"`
}

// CategoryIndex is the catalog's root index document.
type CategoryIndex struct {
	Version         string         `json:"version"`
	LastUpdated     string         `json:"lastUpdated"`
	TotalCategories int            `json:"totalCategories"`
	TotalProducts   int            `json:"totalProducts"`
	Categories      []CategoryNode `json:"categories"`
}

// CategoryFile is one per-category product-list document.
type CategoryFile struct {
	CategoryID  string `json:"categoryId"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Path        string `json:"path"`
	Version     string `json:"version"`
	LastUpdated string `json:"lastUpdated"`
	PageInfo    struct {
		TotalResults int `json:"totalResults"`
	} `json:"pageInfo"`
	Products []CatalogProduct `json:"products"`
}
