package catalog

import "fmt"

// indexURL is the category index document.
func (c *Client) indexURL() string {
	return fmt.Sprintf("%s/categories/index.json", c.base)
}

// productsURL builds the per-category products file URL. Slug paths run
// 1-3 levels deep, e.g. "tools", "tools/drills",
// "tools/drills/hammer-drills".
func (c *Client) productsURL(slugPath string) string {
	return fmt.Sprintf("%s/categories/%s.json", c.base, slugPath)
}
