package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run statuses.
const (
	RunStatusRunning = "running"
	RunStatusSuccess = "success"
	RunStatusError   = "error"
)

// Per-product statuses within a run.
const (
	ProductStatusFilled  = "filled"
	ProductStatusFailed  = "failed"
	ProductStatusSkipped = "skipped"
)

// Run is one recorded populate operation.
type Run struct {
	RunID        int64
	RunUUID      string
	CreatedAt    time.Time
	Mode         string
	Category     string
	TargetCount  int
	FilledCount  int
	Status       string
	ErrorMessage string
}

// RunProduct is one product's outcome within a run.
type RunProduct struct {
	RunID     int64
	Position  int
	ProductID string
	Title     string
	Status    string
}

// CreateRun inserts a new run in the running state and returns its ID.
func (db *DB) CreateRun(mode, category string, targetCount int) (int64, error) {
	result, err := db.Exec(
		`INSERT INTO runs (run_uuid, mode, category, target_count) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), mode, category, targetCount,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create run: %w", err)
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

// RecordProduct stores one product's outcome for a run.
func (db *DB) RecordProduct(runID int64, position int, productID, title, status string) error {
	_, err := db.Exec(
		`INSERT INTO run_products (run_id, position, product_id, title, status) VALUES (?, ?, ?, ?, ?)`,
		runID, position, productID, title, status,
	)
	if err != nil {
		return fmt.Errorf("failed to record product: %w", err)
	}
	return nil
}

// FinishRun closes out a run with its final counts and status.
func (db *DB) FinishRun(runID int64, filledCount int, status, errorMessage string) error {
	_, err := db.Exec(
		`UPDATE runs SET filled_count = ?, status = ?, error_message = ? WHERE run_id = ?`,
		filledCount, status, errorMessage, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// GetRun returns one run by ID.
func (db *DB) GetRun(runID int64) (*Run, error) {
	row := db.QueryRow(
		`SELECT run_id, run_uuid, created_at, mode, COALESCE(category, ''), target_count,
		        filled_count, status, COALESCE(error_message, '')
		 FROM runs WHERE run_id = ?`, runID,
	)
	var run Run
	err := row.Scan(&run.RunID, &run.RunUUID, &run.CreatedAt, &run.Mode, &run.Category,
		&run.TargetCount, &run.FilledCount, &run.Status, &run.ErrorMessage)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(
		`SELECT run_id, run_uuid, created_at, mode, COALESCE(category, ''), target_count,
		        filled_count, status, COALESCE(error_message, '')
		 FROM runs ORDER BY created_at DESC, run_id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.RunID, &run.RunUUID, &run.CreatedAt, &run.Mode, &run.Category,
			&run.TargetCount, &run.FilledCount, &run.Status, &run.ErrorMessage); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRunProducts returns a run's product outcomes in pairing order.
func (db *DB) GetRunProducts(runID int64) ([]RunProduct, error) {
	rows, err := db.Query(
		`SELECT run_id, position, product_id, COALESCE(title, ''), status
		 FROM run_products WHERE run_id = ? ORDER BY position`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get run products: %w", err)
	}
	defer rows.Close()

	var products []RunProduct
	for rows.Next() {
		var product RunProduct
		if err := rows.Scan(&product.RunID, &product.Position, &product.ProductID,
			&product.Title, &product.Status); err != nil {
			return nil, fmt.Errorf("failed to scan run product: %w", err)
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
