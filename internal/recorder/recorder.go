package recorder

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/models"
)

// Fixed literals on every record, matching the serving side's expectations.
// These are deliberate constants, never derived from the request.
const (
	RecordUserName  = "AI Showcase"
	RecordAssetType = "instagram"
)

// ErrNotFound is returned by Get when no record exists for a session.
var ErrNotFound = errors.New("post record not found")

// ErrRecordingFailed marks a persistence outage. Unlike tier failures it is
// fatal: a published artifact with no record is silent data loss.
var ErrRecordingFailed = errors.New("recording failed")

// Store is the durable record store. InsertIfAbsent must rely on the store's
// own uniqueness guarantee on session ID: concurrent inserts for one session
// race to a single row, and the loser reads back the winner's record.
type Store interface {
	InsertIfAbsent(ctx context.Context, record *models.PostRecord) (*models.PostRecord, bool, error)
	GetBySession(ctx context.Context, sessionID string) (*models.PostRecord, error)
	IncrementDisplayed(ctx context.Context, sessionID string, by int) (int, error)
}

type Recorder struct {
	store Store
}

func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store}
}

// Record persists exactly one PostRecord per session. If a record already
// exists for the request's session ID it is returned unchanged and the given
// location is discarded, which makes client retries safe.
func (r *Recorder) Record(ctx context.Context, req *models.MockupRequest, location *models.PublishedLocation) (*models.PostRecord, error) {
	record := &models.PostRecord{
		ID:              uuid.NewString(),
		SessionID:       req.SessionID,
		ProductID:       req.ProductID,
		ProductURL:      req.ProductURL,
		ProductName:     req.ProductName,
		ProductCategory: req.ProductCategory,
		AssetURLs:       []string{location.URL},
		DisplayedCount:  0,
		UserName:        RecordUserName,
		AssetType:       RecordAssetType,
		Caption:         req.Caption,
		Comment:         req.Comment,
	}

	stored, _, err := r.store.InsertIfAbsent(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecordingFailed, err)
	}
	return stored, nil
}

// Get looks up the record for a session, or ErrNotFound.
func (r *Recorder) Get(ctx context.Context, sessionID string) (*models.PostRecord, error) {
	return r.store.GetBySession(ctx, sessionID)
}

// MarkDisplayed increments the displayed count and returns the new value.
func (r *Recorder) MarkDisplayed(ctx context.Context, sessionID string, by int) (int, error) {
	if by <= 0 {
		by = 1
	}
	return r.store.IncrementDisplayed(ctx, sessionID, by)
}
