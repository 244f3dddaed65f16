package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/models"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/recorder"
)

// PostStore is the Postgres record store. The UNIQUE constraint on session_id
// is the only guard against duplicate records; no in-process locking.
type PostStore struct {
	db *sql.DB
}

func NewPostStore(connectionString string) (*PostStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostStore{db: db}, nil
}

// InsertIfAbsent inserts the record unless one already exists for its session.
// On conflict the existing row is read back unchanged, so concurrent inserts
// for the same session all converge on the first writer's record.
func (s *PostStore) InsertIfAbsent(ctx context.Context, record *models.PostRecord) (*models.PostRecord, bool, error) {
	stored := *record
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO posts (id, session_id, product_id, product_url, product_name, product_category,
			asset_urls, displayed_count, user_name, asset_type, caption, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		ON CONFLICT (session_id) DO NOTHING
		RETURNING id, created_at
	`, record.ID, record.SessionID, record.ProductID, record.ProductURL, record.ProductName,
		record.ProductCategory, pq.Array(record.AssetURLs), record.DisplayedCount,
		record.UserName, record.AssetType, record.Caption, record.Comment,
	).Scan(&stored.ID, &stored.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		// Lost the race or retried: return the existing record.
		existing, getErr := s.GetBySession(ctx, record.SessionID)
		if getErr != nil {
			return nil, false, fmt.Errorf("failed to read back existing record: %w", getErr)
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to insert post record: %w", err)
	}

	return &stored, true, nil
}

func (s *PostStore) GetBySession(ctx context.Context, sessionID string) (*models.PostRecord, error) {
	var record models.PostRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, session_id, product_id, product_url, product_name, product_category,
			asset_urls, displayed_count, user_name, asset_type, caption, comment, created_at
		FROM posts
		WHERE session_id = $1
	`, sessionID).Scan(
		&record.ID, &record.SessionID, &record.ProductID, &record.ProductURL,
		&record.ProductName, &record.ProductCategory, pq.Array(&record.AssetURLs),
		&record.DisplayedCount, &record.UserName, &record.AssetType,
		&record.Caption, &record.Comment, &record.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, recorder.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post record: %w", err)
	}

	return &record, nil
}

func (s *PostStore) IncrementDisplayed(ctx context.Context, sessionID string, by int) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		UPDATE posts
		SET displayed_count = displayed_count + $1
		WHERE session_id = $2
		RETURNING displayed_count
	`, by, sessionID).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, recorder.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to update displayed count: %w", err)
	}

	return count, nil
}

func (s *PostStore) Close() error {
	return s.db.Close()
}
