package models

type CreateMockupRequest struct {
	// SessionID is optional; the server generates one when absent. Resubmitting
	// with the same session_id returns the original record.
	SessionID       string `json:"session_id,omitempty"`
	ProductID       string `json:"product_id" binding:"required"`
	ProductURL      string `json:"product_url"`
	ProductName     string `json:"product_name"`
	ProductCategory string `json:"product_category"`
	ImageURL        string `json:"image_url" binding:"required"`
	Caption         string `json:"caption"`
	Comment         string `json:"comment"`
}

type DisplayedRequest struct {
	// Increment defaults to 1 when omitted or zero.
	Increment int `json:"increment,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	// AssetURL carries the already-published location when recording failed,
	// so the caller can reconcile without re-rendering.
	AssetURL    string `json:"asset_url,omitempty"`
	StorageTier string `json:"storage_tier,omitempty"`
	SessionID   string `json:"session_id,omitempty"`
}
