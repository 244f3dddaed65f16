package render

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/capture"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/models"
)

// ErrUnavailable is returned only when every render tier has failed.
var ErrUnavailable = errors.New("render unavailable")

// Viewport is the fixed output geometry for a render.
type Viewport struct {
	Width  int
	Height int
}

// DefaultViewport matches the Instagram portrait post format.
var DefaultViewport = Viewport{Width: 1080, Height: 1350}

// Composition is the renderable description of a mockup: the self-contained
// markup for browser-based capture, plus the structural fields the local
// raster tier needs to synthesize the same layout without fetching anything.
type Composition struct {
	HTML            string
	ProductName     string
	ProductCategory string
	Caption         string
}

// Tier is one rendering strategy. Tiers are tried in priority order; an error
// from one tier means "try the next", never "abort".
type Tier interface {
	Name() models.RenderTier
	Attempt(ctx context.Context, comp Composition, viewport Viewport) (*models.RenderedArtifact, error)
}

type Renderer struct {
	tiers []Tier
}

// NewRenderer builds the ordered tier list. A nil capture client means the
// remote tier is not configured and only the local raster tier runs.
func NewRenderer(captureClient *capture.Client) *Renderer {
	tiers := make([]Tier, 0, 2)
	if captureClient != nil {
		tiers = append(tiers, &remoteTier{client: captureClient})
	}
	tiers = append(tiers, &localTier{})
	return &Renderer{tiers: tiers}
}

// NewRendererWithTiers is used by tests to inject fake tiers.
func NewRendererWithTiers(tiers ...Tier) *Renderer {
	return &Renderer{tiers: tiers}
}

// Render tries each tier in order and returns the first successful artifact,
// tagged with the tier that produced it. Tier failures are logged as degraded
// mode events; only total exhaustion surfaces as an error.
func (r *Renderer) Render(ctx context.Context, comp Composition, viewport Viewport) (*models.RenderedArtifact, error) {
	var lastErr error
	for _, tier := range r.tiers {
		artifact, err := tier.Attempt(ctx, comp, viewport)
		if err != nil {
			log.Printf("render tier %s failed, trying next: %v", tier.Name(), err)
			lastErr = err
			continue
		}
		artifact.Tier = tier.Name()
		return artifact, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

type remoteTier struct {
	client *capture.Client
}

func (t *remoteTier) Name() models.RenderTier {
	return models.RenderTierRemoteCapture
}

func (t *remoteTier) Attempt(ctx context.Context, comp Composition, viewport Viewport) (*models.RenderedArtifact, error) {
	data, contentType, err := t.client.CaptureHTML(ctx, comp.HTML, viewport.Width, viewport.Height)
	if err != nil {
		return nil, err
	}
	return &models.RenderedArtifact{
		Bytes:    data,
		MimeType: contentType,
		Width:    viewport.Width,
		Height:   viewport.Height,
	}, nil
}

type localTier struct{}

func (t *localTier) Name() models.RenderTier {
	return models.RenderTierLocalRaster
}

func (t *localTier) Attempt(ctx context.Context, comp Composition, viewport Viewport) (*models.RenderedArtifact, error) {
	data, err := drawMockup(comp, viewport)
	if err != nil {
		return nil, err
	}
	return &models.RenderedArtifact{
		Bytes:    data,
		MimeType: "image/jpeg",
		Width:    viewport.Width,
		Height:   viewport.Height,
	}, nil
}
