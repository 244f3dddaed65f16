package publish

import (
	"context"
	"log"

	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/models"
)

// CloudUploader is the narrow contract a cloud storage provider must satisfy.
type CloudUploader interface {
	UploadMockup(sessionID string, data []byte, contentType string) (assetRef, publicURL string, err error)
}

// Tier is one publishing strategy, tried in priority order.
type Tier interface {
	Name() models.StorageTier
	Attempt(ctx context.Context, artifact *models.RenderedArtifact, sessionID string) (*models.PublishedLocation, error)
}

type Publisher struct {
	tiers []Tier
}

// NewPublisher builds the ordered tier list. A nil uploader means cloud
// storage is not configured and every artifact is published inline.
func NewPublisher(uploader CloudUploader) *Publisher {
	tiers := make([]Tier, 0, 2)
	if uploader != nil {
		tiers = append(tiers, &cloudTier{uploader: uploader})
	}
	tiers = append(tiers, &inlineTier{})
	return &Publisher{tiers: tiers}
}

// NewPublisherWithTiers is used by tests to inject fake tiers.
func NewPublisherWithTiers(tiers ...Tier) *Publisher {
	return &Publisher{tiers: tiers}
}

// Publish always returns a usable location. A cloud upload failure degrades to
// an inline data URI rather than failing the caller; the inline tier itself
// cannot fail.
func (p *Publisher) Publish(ctx context.Context, artifact *models.RenderedArtifact, sessionID string) *models.PublishedLocation {
	for _, tier := range p.tiers {
		location, err := tier.Attempt(ctx, artifact, sessionID)
		if err != nil {
			log.Printf("publish tier %s failed, trying next: %v", tier.Name(), err)
			continue
		}
		location.Tier = tier.Name()
		return location
	}
	// Unreachable when the tier list ends with the inline tier, which is
	// infallible; kept so an empty tier list still returns a location.
	return &models.PublishedLocation{
		URL:  EncodeDataURI(artifact.MimeType, artifact.Bytes),
		Tier: models.StorageTierInlineData,
	}
}

type cloudTier struct {
	uploader CloudUploader
}

func (t *cloudTier) Name() models.StorageTier {
	return models.StorageTierCloudUpload
}

func (t *cloudTier) Attempt(ctx context.Context, artifact *models.RenderedArtifact, sessionID string) (*models.PublishedLocation, error) {
	assetRef, publicURL, err := t.uploader.UploadMockup(sessionID, artifact.Bytes, artifact.MimeType)
	if err != nil {
		return nil, err
	}
	return &models.PublishedLocation{
		URL:         publicURL,
		ProviderRef: assetRef,
	}, nil
}

type inlineTier struct{}

func (t *inlineTier) Name() models.StorageTier {
	return models.StorageTierInlineData
}

func (t *inlineTier) Attempt(ctx context.Context, artifact *models.RenderedArtifact, sessionID string) (*models.PublishedLocation, error) {
	return &models.PublishedLocation{
		URL: EncodeDataURI(artifact.MimeType, artifact.Bytes),
	}, nil
}
