// Package populate implements the CLI action that fills a snapshot
// document from the catalog and records the run.
package populate

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/atlanticwaters/podfill/models"
	"github.com/atlanticwaters/podfill/pkg/batch"
	"github.com/atlanticwaters/podfill/pkg/catalog"
	"github.com/atlanticwaters/podfill/pkg/db"
	"github.com/atlanticwaters/podfill/pkg/fetcher"
	"github.com/atlanticwaters/podfill/pkg/filler"
	"github.com/atlanticwaters/podfill/pkg/imageset"
	"github.com/atlanticwaters/podfill/pkg/scene"
	"github.com/atlanticwaters/podfill/pkg/snapshot"
	"github.com/atlanticwaters/podfill/pkg/storage"
	"github.com/atlanticwaters/podfill/pkg/textset"
)

// collectingEmitter logs every message and keeps them for run recording.
type collectingEmitter struct {
	logger   *slog.Logger
	messages []models.Message
}

func (e *collectingEmitter) Emit(msg models.Message) {
	switch msg.Type {
	case models.MsgProgress:
		e.logger.Info("populate progress", "current", msg.Current, "total", msg.Total)
	case models.MsgSuccess:
		e.logger.Info("populate success", "count", msg.Count)
	case models.MsgError:
		e.logger.Error("populate error", "message", msg.Text)
	case models.MsgSelectionUpdate:
		e.logger.Info("selection resolved", "count", msg.Count, "has_pods", msg.HasPods)
	}
	e.messages = append(e.messages, msg)
}

// terminal returns the run's single terminal message, if one was emitted.
func (e *collectingEmitter) terminal() (models.Message, bool) {
	for i := len(e.messages) - 1; i >= 0; i-- {
		if e.messages[i].Type == models.MsgSuccess || e.messages[i].Type == models.MsgError {
			return e.messages[i], true
		}
	}
	return models.Message{}, false
}

// lastProgress returns the last progress tick's current value.
func (e *collectingEmitter) lastProgress() int {
	for i := len(e.messages) - 1; i >= 0; i-- {
		if e.messages[i].Type == models.MsgProgress {
			return e.messages[i].Current
		}
	}
	return 0
}

func Action(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	config, err := models.LoadConfig(c.String("config"))
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}

	category := c.String("category")
	snapshotPath := c.String("snapshot")
	if category == "" || snapshotPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --category and --snapshot are required")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  podfill populate --snapshot board.html --category tools/drills`)
		fmt.Fprintln(os.Stderr, `  podfill populate --snapshot board.html --category tools/drills --count 4 --out filled.json`)
		os.Exit(1)
	}

	cache, err := catalog.NewCache(config.CacheDir, config.CacheMaxAge())
	if err != nil {
		logger.Error("failed to initialize cache", "error", err)
		os.Exit(2)
	}

	httpFetcher := fetcher.NewFetcher()
	client := catalog.NewClient(config.CatalogBaseURL, httpFetcher, cache)
	mapper := catalog.NewMapper(config.ImageMode, client)

	database, err := openDatabase(c)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	file, err := client.CategoryProducts(category)
	if err != nil {
		logger.Error("failed to fetch category", "error", err, "category", category)
		os.Exit(2)
	}
	products := file.Products
	if count := c.Int("count"); count > 0 && count < len(products) {
		products = products[:count]
	}
	if len(products) == 0 {
		logger.Error("category has no products", "category", category)
		os.Exit(1)
	}

	root, err := snapshot.LoadFile(snapshotPath)
	if err != nil {
		logger.Error("failed to load snapshot", "error", err, "path", snapshotPath)
		os.Exit(2)
	}
	selection := []models.SceneNode{root}

	// Engine assembly: in-memory host stand-ins behind the capability
	// interfaces, session-scoped font cache.
	fonts := scene.NewFonts()
	images := scene.NewImages(httpFetcher)
	textSetter := textset.NewSetter(fonts, textset.NewFontCache(), config.FallbackFont)
	imageSetter := imageset.NewSetter(imageset.ForMode(config.ImageMode, images), config.Layers)
	emitter := &collectingEmitter{logger: logger}
	orchestrator := batch.NewOrchestrator(
		filler.New(textSetter, imageSetter, config.Layers),
		emitter,
		config.Layers.PodComponent,
	)

	selectionMsg := orchestrator.SelectionSnapshot(selection)

	mode := "batch"
	single := c.Bool("single")
	if single {
		mode = "single"
	}
	runID, err := database.CreateRun(mode, category, selectionMsg.Count)
	if err != nil {
		logger.Error("failed to create run", "error", err)
		os.Exit(2)
	}

	items := make([]models.PodFields, len(products))
	for i, product := range products {
		items[i] = mapper.MapProduct(product)
	}

	if single {
		orchestrator.PopulateSingle(selection, items[0])
	} else {
		orchestrator.PopulateBatch(selection, items)
	}

	recordOutcome(logger, database, runID, emitter, products, single)

	exported, err := snapshot.Export(root)
	if err != nil {
		logger.Error("failed to export scene state", "error", err)
		os.Exit(2)
	}
	outPath := c.String("out")
	if outPath == "" {
		outPath = "populated.json"
	}
	store := &storage.Storage{}
	if err := store.SaveFile(outPath, exported); err != nil {
		logger.Error("failed to save output", "error", err, "path", outPath)
		os.Exit(2)
	}

	final, ok := emitter.terminal()
	if ok && final.Type == models.MsgSuccess {
		fmt.Printf("Populated %d pod(s) from %q; state written to %s\n", final.Count, category, outPath)
		return nil
	}
	if ok {
		fmt.Fprintf(os.Stderr, "Populate failed: %s\n", final.Text)
	}
	os.Exit(1)
	return nil
}

// recordOutcome turns the emitted message stream into per-product rows
// and the run's final status.
func recordOutcome(logger *slog.Logger, database *db.DB, runID int64, emitter *collectingEmitter, products []models.CatalogProduct, single bool) {
	final, ok := emitter.terminal()
	if !ok {
		return
	}

	filled := 0
	failedPosition := 0
	status := db.RunStatusError
	if final.Type == models.MsgSuccess {
		status = db.RunStatusSuccess
		filled = final.Count
	} else {
		// the failing pair is the last progress tick before the error
		failedPosition = emitter.lastProgress()
		filled = failedPosition - 1
		if filled < 0 {
			filled = 0
		}
	}

	recorded := len(products)
	if single && recorded > 1 {
		recorded = 1
	}
	for i := 0; i < recorded; i++ {
		position := i + 1
		productStatus := db.ProductStatusSkipped
		switch {
		case position <= filled:
			productStatus = db.ProductStatusFilled
		case position == failedPosition:
			productStatus = db.ProductStatusFailed
		}
		if err := database.RecordProduct(runID, position, products[i].ProductID, products[i].Title, productStatus); err != nil {
			logger.Error("failed to record product outcome", "error", err, "position", position)
		}
	}

	if err := database.FinishRun(runID, filled, status, final.Text); err != nil {
		logger.Error("failed to finish run", "error", err)
	}
}

func openDatabase(c *cli.Context) (*db.DB, error) {
	if path := strings.TrimSpace(c.String("db")); path != "" {
		return db.OpenAt(path)
	}
	return db.Open()
}
