package render_test

import (
	"bytes"
	"context"
	"errors"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/models"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/render"
)

type failingTier struct {
	name models.RenderTier
}

func (t *failingTier) Name() models.RenderTier {
	return t.name
}

func (t *failingTier) Attempt(ctx context.Context, comp render.Composition, viewport render.Viewport) (*models.RenderedArtifact, error) {
	return nil, errors.New("provider down")
}

func TestRenderer_LocalRasterOnly(t *testing.T) {
	// No capture client configured: the local raster tier serves the render.
	renderer := render.NewRenderer(nil)

	comp := render.Composition{
		ProductName:     "Quantum Kettle",
		ProductCategory: "Kitchen",
		Caption:         "Boils water before you ask",
	}
	artifact, err := renderer.Render(context.Background(), comp, render.DefaultViewport)

	require.NoError(t, err)
	assert.Equal(t, models.RenderTierLocalRaster, artifact.Tier)
	assert.Equal(t, "image/jpeg", artifact.MimeType)
	assert.NotEmpty(t, artifact.Bytes)
	assert.Equal(t, 1080, artifact.Width)
	assert.Equal(t, 1350, artifact.Height)

	// The bytes must be a decodable JPEG of the requested geometry.
	img, err := jpeg.Decode(bytes.NewReader(artifact.Bytes))
	require.NoError(t, err)
	assert.Equal(t, 1080, img.Bounds().Dx())
	assert.Equal(t, 1350, img.Bounds().Dy())
}

func TestRenderer_FallsBackWhenRemoteFails(t *testing.T) {
	renderer := render.NewRendererWithTiers(
		&failingTier{name: models.RenderTierRemoteCapture},
		localTier(t),
	)

	artifact, err := renderer.Render(context.Background(), render.Composition{ProductName: "Lamp"}, render.DefaultViewport)

	require.NoError(t, err)
	assert.Equal(t, models.RenderTierLocalRaster, artifact.Tier)
	assert.NotEmpty(t, artifact.Bytes)
}

func TestRenderer_UnavailableWhenAllTiersFail(t *testing.T) {
	renderer := render.NewRendererWithTiers(
		&failingTier{name: models.RenderTierRemoteCapture},
		&failingTier{name: models.RenderTierLocalRaster},
	)

	_, err := renderer.Render(context.Background(), render.Composition{}, render.DefaultViewport)

	require.Error(t, err)
	assert.ErrorIs(t, err, render.ErrUnavailable)
}

func TestRenderer_LocalRasterDeterministic(t *testing.T) {
	renderer := render.NewRenderer(nil)
	comp := render.Composition{
		ProductName: "Solar Charger",
		Caption:     "Charge anywhere under the sun with this compact panel that folds into your pocket",
	}

	first, err := renderer.Render(context.Background(), comp, render.DefaultViewport)
	require.NoError(t, err)
	second, err := renderer.Render(context.Background(), comp, render.DefaultViewport)
	require.NoError(t, err)

	assert.Equal(t, first.Bytes, second.Bytes)
}

func TestRenderer_LocalRasterRejectsBadViewport(t *testing.T) {
	renderer := render.NewRenderer(nil)

	_, err := renderer.Render(context.Background(), render.Composition{}, render.Viewport{Width: 0, Height: 0})

	assert.ErrorIs(t, err, render.ErrUnavailable)
}

// localTier extracts the local raster tier from a default renderer.
func localTier(t *testing.T) render.Tier {
	t.Helper()
	return &rasterAdapter{renderer: render.NewRenderer(nil)}
}

type rasterAdapter struct {
	renderer *render.Renderer
}

func (a *rasterAdapter) Name() models.RenderTier {
	return models.RenderTierLocalRaster
}

func (a *rasterAdapter) Attempt(ctx context.Context, comp render.Composition, viewport render.Viewport) (*models.RenderedArtifact, error) {
	return a.renderer.Render(ctx, comp, viewport)
}
