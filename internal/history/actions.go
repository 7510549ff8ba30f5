// Package history implements the run-history CLI action.
package history

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/atlanticwaters/podfill/pkg/db"
)

// RunsAction lists recent populate runs, newest first.
func RunsAction(c *cli.Context) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	database, err := openDatabase(c)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		logger.Error("failed to list runs", "error", err)
		os.Exit(2)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet")
		return nil
	}

	for _, run := range runs {
		line := fmt.Sprintf("#%d  %s  %-6s %-7s targets=%d filled=%d",
			run.RunID, run.CreatedAt.Format("2006-01-02 15:04:05"), run.Mode, run.Status,
			run.TargetCount, run.FilledCount)
		if run.Category != "" {
			line += "  category=" + run.Category
		}
		if run.ErrorMessage != "" {
			line += "  error=" + run.ErrorMessage
		}
		fmt.Println(line)
	}
	return nil
}

func openDatabase(c *cli.Context) (*db.DB, error) {
	if path := strings.TrimSpace(c.String("db")); path != "" {
		return db.OpenAt(path)
	}
	return db.Open()
}
