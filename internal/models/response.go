package models

import "time"

type MockupResponse struct {
	Success     bool     `json:"success"`
	SessionID   string   `json:"session_id"`
	RecordID    string   `json:"record_id"`
	AssetURLs   []string `json:"asset_urls"`
	RenderTier  string   `json:"render_tier"`
	StorageTier string   `json:"storage_tier"`
}

type PostResponse struct {
	SessionID       string    `json:"session_id"`
	RecordID        string    `json:"record_id"`
	ProductID       string    `json:"product_id"`
	ProductURL      string    `json:"product_url"`
	ProductName     string    `json:"product_name"`
	ProductCategory string    `json:"product_category"`
	AssetURLs       []string  `json:"asset_urls"`
	DisplayedCount  int       `json:"displayed_count"`
	UserName        string    `json:"user_name"`
	AssetType       string    `json:"asset_type"`
	Caption         string    `json:"caption"`
	Comment         string    `json:"comment"`
	CreatedAt       time.Time `json:"created_at"`
}

type DisplayedResponse struct {
	SessionID      string `json:"session_id"`
	DisplayedCount int    `json:"displayed_count"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
