package serve

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/atlanticwaters/podfill/models"
	"github.com/atlanticwaters/podfill/pkg/batch"
	"github.com/atlanticwaters/podfill/pkg/fetcher"
	"github.com/atlanticwaters/podfill/pkg/filler"
	"github.com/atlanticwaters/podfill/pkg/imageset"
	"github.com/atlanticwaters/podfill/pkg/scene"
	"github.com/atlanticwaters/podfill/pkg/snapshot"
	"github.com/atlanticwaters/podfill/pkg/textset"
)

// Action starts the websocket bridge against a session document.
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

	snapshotPath := c.String("snapshot")
	if snapshotPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --snapshot is required")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  podfill serve --snapshot board.html --addr :8787`)
		os.Exit(1)
	}

	root, err := snapshot.LoadFile(snapshotPath)
	if err != nil {
		logger.Error("failed to load snapshot", "error", err, "path", snapshotPath)
		os.Exit(2)
	}

	httpFetcher := fetcher.NewFetcher()
	textSetter := textset.NewSetter(scene.NewFonts(), textset.NewFontCache(), config.FallbackFont)
	imageSetter := imageset.NewSetter(
		imageset.ForMode(config.ImageMode, scene.NewImages(httpFetcher)),
		config.Layers,
	)

	hub := NewHub()
	orchestrator := batch.NewOrchestrator(
		filler.New(textSetter, imageSetter, config.Layers),
		hub,
		config.Layers.PodComponent,
	)
	server := NewServer(logger, hub, orchestrator, []models.SceneNode{root})

	addr := c.String("addr")
	if addr == "" {
		addr = ":8787"
	}
	logger.Info("serving message channel", "addr", addr, "snapshot", snapshotPath)
	if err := http.ListenAndServe(addr, server.Router()); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(2)
	}
	return nil
}
