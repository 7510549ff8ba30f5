package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Runs: one row per populate operation
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_uuid TEXT NOT NULL UNIQUE,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    mode TEXT NOT NULL,               -- single | batch
    category TEXT,                    -- catalog slug path the records came from
    target_count INTEGER NOT NULL,    -- pods the selection resolved to
    filled_count INTEGER DEFAULT 0,
    status TEXT NOT NULL DEFAULT 'running',  -- running | success | error
    error_message TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);

-- Run products: per-product outcome rows within a run
CREATE TABLE IF NOT EXISTS run_products (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    position INTEGER NOT NULL,        -- 1-based pairing order
    product_id TEXT NOT NULL,
    title TEXT,
    status TEXT NOT NULL,             -- filled | failed | skipped
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    UNIQUE(run_id, position)
);

CREATE INDEX IF NOT EXISTS idx_run_products_run ON run_products(run_id);
`
