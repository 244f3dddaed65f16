package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/models"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/pipeline"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/recorder"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/render"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/supabase"
)

// Error kinds surfaced to callers.
const (
	errKindRenderUnavailable = "RenderUnavailable"
	errKindRecordingFailed   = "RecordingFailed"
)

type MockupsHandler struct {
	pipeline *pipeline.Pipeline
	recorder *recorder.Recorder
	realtime *supabase.RealtimeClient
}

// NewMockupsHandler wires the mockup endpoints. The realtime client may be
// nil when Supabase is not configured.
func NewMockupsHandler(p *pipeline.Pipeline, r *recorder.Recorder, realtime *supabase.RealtimeClient) *MockupsHandler {
	return &MockupsHandler{
		pipeline: p,
		recorder: r,
		realtime: realtime,
	}
}

// CreateMockup runs the full pipeline for one request and returns the stored
// record with the tier that served each stage.
func (h *MockupsHandler) CreateMockup(c *gin.Context) {
	var req models.CreateMockupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	mockupReq := &models.MockupRequest{
		SessionID:       req.SessionID,
		ProductID:       req.ProductID,
		ProductURL:      req.ProductURL,
		ProductName:     req.ProductName,
		ProductCategory: req.ProductCategory,
		ImageURL:        req.ImageURL,
		Caption:         req.Caption,
		Comment:         req.Comment,
	}

	result, err := h.pipeline.Run(c.Request.Context(), mockupReq)
	if err != nil {
		var recordingErr *pipeline.RecordingError
		if errors.As(err, &recordingErr) {
			// The artifact is published but unrecorded; hand the caller the
			// orphaned location so a retry or reconciliation can pick it up.
			if h.realtime != nil {
				h.realtime.PublishSessionEvent(recordingErr.SessionID, "mockup_failed",
					supabase.MockupFailedPayload(recordingErr.SessionID, errKindRecordingFailed, recordingErr.Err.Error()))
			}
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:       errKindRecordingFailed,
				Message:     recordingErr.Err.Error(),
				AssetURL:    recordingErr.Location.URL,
				StorageTier: string(recordingErr.StorageTier),
				SessionID:   recordingErr.SessionID,
			})
			return
		}
		if errors.Is(err, render.ErrUnavailable) {
			if h.realtime != nil {
				h.realtime.PublishSessionEvent(mockupReq.SessionID, "mockup_failed",
					supabase.MockupFailedPayload(mockupReq.SessionID, errKindRenderUnavailable, err.Error()))
			}
			c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error:     errKindRenderUnavailable,
				Message:   err.Error(),
				SessionID: mockupReq.SessionID,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:     "pipeline failed",
			Message:   err.Error(),
			SessionID: mockupReq.SessionID,
		})
		return
	}

	if h.realtime != nil {
		h.realtime.PublishSessionEvent(result.Record.SessionID, "mockup_recorded",
			supabase.MockupRecordedPayload(result.Record.SessionID, result.Record.ID, result.Record.AssetURLs))
		if result.RenderTier == models.RenderTierLocalRaster || result.StorageTier == models.StorageTierInlineData {
			h.realtime.PublishSessionEvent(result.Record.SessionID, "mockup_degraded",
				supabase.MockupDegradedPayload(result.Record.SessionID, string(result.RenderTier), string(result.StorageTier)))
		}
	}

	c.JSON(http.StatusOK, models.MockupResponse{
		Success:     true,
		SessionID:   result.Record.SessionID,
		RecordID:    result.Record.ID,
		AssetURLs:   result.Record.AssetURLs,
		RenderTier:  string(result.RenderTier),
		StorageTier: string(result.StorageTier),
	})
}

// GetMockup returns the stored record for a session.
func (h *MockupsHandler) GetMockup(c *gin.Context) {
	sessionID := c.Param("session_id")

	record, err := h.recorder.Get(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, recorder.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "post not found", SessionID: sessionID})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to load post",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.PostResponse{
		SessionID:       record.SessionID,
		RecordID:        record.ID,
		ProductID:       record.ProductID,
		ProductURL:      record.ProductURL,
		ProductName:     record.ProductName,
		ProductCategory: record.ProductCategory,
		AssetURLs:       record.AssetURLs,
		DisplayedCount:  record.DisplayedCount,
		UserName:        record.UserName,
		AssetType:       record.AssetType,
		Caption:         record.Caption,
		Comment:         record.Comment,
		CreatedAt:       record.CreatedAt,
	})
}

// MarkDisplayed bumps the displayed counter for a recorded post. This is the
// only mutation allowed on a stored record.
func (h *MockupsHandler) MarkDisplayed(c *gin.Context) {
	sessionID := c.Param("session_id")

	var req models.DisplayedRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	count, err := h.recorder.MarkDisplayed(c.Request.Context(), sessionID, req.Increment)
	if err != nil {
		if errors.Is(err, recorder.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "post not found", SessionID: sessionID})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update displayed count",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.DisplayedResponse{
		SessionID:      sessionID,
		DisplayedCount: count,
	})
}
