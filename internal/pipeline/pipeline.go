package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/metrics"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/models"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/render"
)

// State names the pipeline's position. Transitions are linear; FAILED is
// reachable only from RENDERING and RECORDING. Publishing cannot fail the
// pipeline: its fallback tier always yields a location.
type State string

const (
	StateReceived   State = "RECEIVED"
	StateRendering  State = "RENDERING"
	StateRendered   State = "RENDERED"
	StatePublishing State = "PUBLISHING"
	StatePublished  State = "PUBLISHED"
	StateRecording  State = "RECORDING"
	StateDone       State = "DONE"
	StateFailed     State = "FAILED"
)

// MarkupProducer supplies the renderable composition markup for a request.
type MarkupProducer interface {
	Build(req *models.MockupRequest) (string, error)
}

// Renderer turns a composition into a raster artifact or reports that every
// render tier is exhausted.
type Renderer interface {
	Render(ctx context.Context, comp render.Composition, viewport render.Viewport) (*models.RenderedArtifact, error)
}

// Publisher turns an artifact into a dereferenceable location. It never fails.
type Publisher interface {
	Publish(ctx context.Context, artifact *models.RenderedArtifact, sessionID string) *models.PublishedLocation
}

// Recorder durably records the produced post, idempotently per session.
type Recorder interface {
	Record(ctx context.Context, req *models.MockupRequest, location *models.PublishedLocation) (*models.PostRecord, error)
}

// Result reports the stored record along with which tier served each stage,
// so callers can tell a fully degraded success from the optimal path without
// reading logs.
type Result struct {
	Record      *models.PostRecord
	Location    *models.PublishedLocation
	RenderTier  models.RenderTier
	StorageTier models.StorageTier
}

// RecordingError is the fatal recording failure. It carries the location that
// was already produced so the caller can retry recording, or reconcile, without
// re-rendering.
type RecordingError struct {
	SessionID   string
	Location    *models.PublishedLocation
	RenderTier  models.RenderTier
	StorageTier models.StorageTier
	Err         error
}

func (e *RecordingError) Error() string {
	return fmt.Sprintf("recording failed for session %s: %v", e.SessionID, e.Err)
}

func (e *RecordingError) Unwrap() error {
	return e.Err
}

type Pipeline struct {
	markup    MarkupProducer
	renderer  Renderer
	publisher Publisher
	recorder  Recorder
	viewport  render.Viewport
}

func New(markup MarkupProducer, renderer Renderer, publisher Publisher, recorder Recorder) *Pipeline {
	return &Pipeline{
		markup:    markup,
		renderer:  renderer,
		publisher: publisher,
		recorder:  recorder,
		viewport:  render.DefaultViewport,
	}
}

// Run executes one request end to end: render, publish, record. At most one
// outbound call per provider and one store write happen per invocation; the
// only automatic retry is the single fallback step inside each capability.
func (p *Pipeline) Run(ctx context.Context, req *models.MockupRequest) (*Result, error) {
	start := time.Now()
	defer func() {
		metrics.PipelineDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}
	state := StateReceived
	log.Printf("pipeline session %s: %s", req.SessionID, state)

	html, err := p.markup.Build(req)
	if err != nil {
		// The local raster tier composes from structured fields, so a markup
		// failure only degrades the remote capture path.
		log.Printf("pipeline session %s: markup build failed, remote capture degraded: %v", req.SessionID, err)
	}
	comp := render.Composition{
		HTML:            html,
		ProductName:     req.ProductName,
		ProductCategory: req.ProductCategory,
		Caption:         req.Caption,
	}

	state = p.transition(req.SessionID, state, StateRendering)
	artifact, err := p.renderer.Render(ctx, comp, p.viewport)
	if err != nil {
		p.transition(req.SessionID, state, StateFailed)
		metrics.PipelineRunsTotal.WithLabelValues("render_unavailable").Inc()
		return nil, err
	}
	metrics.RenderTierTotal.WithLabelValues(string(artifact.Tier)).Inc()
	state = p.transition(req.SessionID, state, StateRendered)

	state = p.transition(req.SessionID, state, StatePublishing)
	location := p.publisher.Publish(ctx, artifact, req.SessionID)
	metrics.PublishTierTotal.WithLabelValues(string(location.Tier)).Inc()
	state = p.transition(req.SessionID, state, StatePublished)

	state = p.transition(req.SessionID, state, StateRecording)
	record, err := p.recorder.Record(ctx, req, location)
	if err != nil {
		p.transition(req.SessionID, state, StateFailed)
		metrics.PipelineRunsTotal.WithLabelValues("recording_failed").Inc()
		return nil, &RecordingError{
			SessionID:   req.SessionID,
			Location:    location,
			RenderTier:  artifact.Tier,
			StorageTier: location.Tier,
			Err:         err,
		}
	}
	p.transition(req.SessionID, state, StateDone)
	metrics.PipelineRunsTotal.WithLabelValues("done").Inc()

	return &Result{
		Record:      record,
		Location:    location,
		RenderTier:  artifact.Tier,
		StorageTier: location.Tier,
	}, nil
}

func (p *Pipeline) transition(sessionID string, from, to State) State {
	log.Printf("pipeline session %s: %s -> %s", sessionID, from, to)
	return to
}
