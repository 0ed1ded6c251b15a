package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"recipe-recommender/internal/core/domain"
)

// Journal 僅追加的互動事件日誌（純 Go SQLite）
type Journal struct {
	db *sql.DB
}

// Open 開啟或建立日誌檔
func Open(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	// 單一寫入者
	db.SetMaxOpenConns(1)

	j := &Journal{db: db}
	if err := j.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return j, nil
}

func (j *Journal) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS interaction_events (
        seq INTEGER PRIMARY KEY AUTOINCREMENT,
        id TEXT NOT NULL UNIQUE,
        user_id TEXT NOT NULL,
        recipe_id TEXT NOT NULL,
        event TEXT NOT NULL,
        created_at TEXT NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_events_user ON interaction_events(user_id, seq);
    `

	if _, err := j.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// RecordEvents 實作 domain.EventRecorder，整批寫入同一交易
func (j *Journal) RecordEvents(ctx context.Context, events []domain.InteractionEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO interaction_events (id, user_id, recipe_id, event, created_at)
        VALUES (?, ?, ?, ?, ?)
    `)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range events {
		id := e.ID
		if id == "" {
			id = uuid.NewString()
		}
		created := e.CreatedAt
		if created.IsZero() {
			created = time.Now()
		}
		if _, err := stmt.ExecContext(ctx, id, e.UserID, e.RecipeID, string(e.Event),
			created.UTC().Format(time.RFC3339Nano)); err != nil {
			return fmt.Errorf("failed to insert event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit events: %w", err)
	}
	return nil
}

// ListEvents 依寫入順序列出使用者最近的事件（新到舊）
func (j *Journal) ListEvents(ctx context.Context, userID string, limit int) ([]domain.InteractionEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := j.db.QueryContext(ctx, `
        SELECT id, user_id, recipe_id, event, created_at
        FROM interaction_events
        WHERE user_id = ?
        ORDER BY seq DESC
        LIMIT ?
    `, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []domain.InteractionEvent
	for rows.Next() {
		var e domain.InteractionEvent
		var event, created string
		if err := rows.Scan(&e.ID, &e.UserID, &e.RecipeID, &event, &created); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.Event = domain.EventType(event)
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("failed to parse event time: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Ping 檢查日誌連線
func (j *Journal) Ping(ctx context.Context) error {
	return j.db.PingContext(ctx)
}

// Close 關閉日誌
func (j *Journal) Close() error {
	return j.db.Close()
}
