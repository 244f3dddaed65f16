package models

import "time"

// RenderTier identifies which rendering strategy produced an artifact.
type RenderTier string

const (
	RenderTierRemoteCapture RenderTier = "REMOTE_CAPTURE"
	RenderTierLocalRaster   RenderTier = "LOCAL_RASTER"
)

// StorageTier identifies which publishing strategy produced a location.
type StorageTier string

const (
	StorageTierCloudUpload StorageTier = "CLOUD_UPLOAD"
	StorageTierInlineData  StorageTier = "INLINE_DATA"
)

// MockupRequest is the accepted unit of work. The session ID doubles as the
// idempotency key: resubmitting with the same session ID is always safe.
// Immutable once accepted by the pipeline.
type MockupRequest struct {
	SessionID       string
	ProductID       string
	ProductURL      string
	ProductName     string
	ProductCategory string
	ImageURL        string
	Caption         string
	Comment         string
}

// RenderedArtifact holds the raster output of one pipeline invocation.
// It is never shared across sessions.
type RenderedArtifact struct {
	Bytes    []byte
	MimeType string
	Width    int
	Height   int
	Tier     RenderTier
}

// PublishedLocation is a dereferenceable home for an artifact: either a hosted
// http(s) URL or a self-contained data URI. ProviderRef is the storage
// provider's opaque asset reference and is empty for inline data.
type PublishedLocation struct {
	URL         string
	Tier        StorageTier
	ProviderRef string
}

// PostRecord is the durable record of a produced mockup. At most one exists
// per session ID. Historical fields are append-only; only DisplayedCount may
// change after insert.
type PostRecord struct {
	ID              string    `json:"record_id"`
	SessionID       string    `json:"session_id"`
	ProductID       string    `json:"product_id"`
	ProductURL      string    `json:"product_url"`
	ProductName     string    `json:"product_name"`
	ProductCategory string    `json:"product_category"`
	CreatedAt       time.Time `json:"created_at"`
	AssetURLs       []string  `json:"asset_urls"`
	DisplayedCount  int       `json:"displayed_count"`
	UserName        string    `json:"user_name"`
	AssetType       string    `json:"asset_type"`
	Caption         string    `json:"caption"`
	Comment         string    `json:"comment"`
}
