package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"execview/api/model"
)

var ErrNotFound = errors.New("not found")

type DB struct {
	pool *pgxpool.Pool
}

func Connect(databaseURL string) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &DB{pool: pool}, nil
}

func (db *DB) Close() {
	db.pool.Close()
}

func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

func Migrate(db *DB) error {
	ctx := context.Background()
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS executions (
			id          TEXT PRIMARY KEY,
			username    TEXT NOT NULL DEFAULT '',
			script_name TEXT NOT NULL DEFAULT '',
			command     TEXT NOT NULL DEFAULT '',
			exit_code   INT,
			output      TEXT NOT NULL DEFAULT '',
			log_key     TEXT NOT NULL DEFAULT '',
			started_at  TIMESTAMPTZ,
			finished_at TIMESTAMPTZ
		);
		CREATE INDEX IF NOT EXISTS idx_executions_started ON executions(started_at DESC);
	`)
	return err
}

func (db *DB) InsertExecution(ctx context.Context, e *model.HistoryEntry) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO executions (id, username, script_name, command, exit_code, output, log_key, started_at, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.Username, e.ScriptName, e.Command, e.ExitCode, e.Output, e.LogKey, e.StartTime, e.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert execution %s: %w", e.ID, err)
	}
	return nil
}

// FinishExecution records the exit code and final log of a running execution.
func (db *DB) FinishExecution(ctx context.Context, id string, exitCode int, output, logKey string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE executions SET exit_code = $1, output = $2, log_key = $3, finished_at = $4 WHERE id = $5`,
		exitCode, output, logKey, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("finish execution %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("finish execution %s: %w", id, ErrNotFound)
	}
	return nil
}

func (db *DB) GetExecution(ctx context.Context, id string) (*model.HistoryEntry, error) {
	var e model.HistoryEntry
	err := db.pool.QueryRow(ctx,
		`SELECT id, username, script_name, command, exit_code, output, log_key, started_at, finished_at
		 FROM executions WHERE id = $1`, id,
	).Scan(&e.ID, &e.Username, &e.ScriptName, &e.Command, &e.ExitCode, &e.Output, &e.LogKey, &e.StartTime, &e.FinishedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("execution %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get execution %s: %w", id, err)
	}
	return &e, nil
}
