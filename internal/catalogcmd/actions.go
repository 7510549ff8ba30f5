// Package catalogcmd implements the catalog browsing CLI actions.
package catalogcmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/atlanticwaters/podfill/models"
	"github.com/atlanticwaters/podfill/pkg/catalog"
	"github.com/atlanticwaters/podfill/pkg/fetcher"
)

func newClient(c *cli.Context, logger *slog.Logger) *catalog.Client {
	config, err := models.LoadConfig(c.String("config"))
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}
	cache, err := catalog.NewCache(config.CacheDir, config.CacheMaxAge())
	if err != nil {
		logger.Error("failed to initialize cache", "error", err)
		os.Exit(2)
	}
	return catalog.NewClient(config.CatalogBaseURL, fetcher.NewFetcher(), cache)
}

func newLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

// CategoriesAction prints the catalog's category tree with product counts.
func CategoriesAction(c *cli.Context) error {
	logger := newLogger(c)
	client := newClient(c, logger)

	index, err := client.CategoryIndex()
	if err != nil {
		logger.Error("failed to fetch category index", "error", err)
		os.Exit(2)
	}

	fmt.Printf("%d categories, %d products (updated %s)\n", index.TotalCategories, index.TotalProducts, index.LastUpdated)
	for _, category := range index.Categories {
		printCategory(category, 0)
	}
	return nil
}

func printCategory(node models.CategoryNode, depth int) {
	fmt.Printf("%s%s (%s, %d products)\n", strings.Repeat("  ", depth), node.Name, node.Slug, node.ProductCount)
	for _, sub := range node.Subcategories {
		printCategory(sub, depth+1)
	}
}

// ProductsAction prints one category's products.
func ProductsAction(c *cli.Context) error {
	logger := newLogger(c)

	category := c.String("category")
	if category == "" {
		fmt.Fprintln(os.Stderr, "Error: --category is required")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  podfill products --category tools/drills`)
		os.Exit(1)
	}

	client := newClient(c, logger)
	file, err := client.CategoryProducts(category)
	if err != nil {
		logger.Error("failed to fetch category", "error", err, "category", category)
		os.Exit(2)
	}

	fmt.Printf("%s: %d products\n", file.Name, len(file.Products))
	for _, product := range file.Products {
		fmt.Printf("  %-14s %-24s $%.2f  %.1f (%d)  %s\n",
			product.ProductID, product.Brand, product.Price.Current,
			product.Rating.Average, product.Rating.Count, product.Title)
	}
	return nil
}
