package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/handlers"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/markup"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/models"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/pipeline"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/publish"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/recorder"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/render"
)

type failingStore struct{}

func (s *failingStore) InsertIfAbsent(ctx context.Context, record *models.PostRecord) (*models.PostRecord, bool, error) {
	return nil, false, errors.New("connection refused")
}

func (s *failingStore) GetBySession(ctx context.Context, sessionID string) (*models.PostRecord, error) {
	return nil, errors.New("connection refused")
}

func (s *failingStore) IncrementDisplayed(ctx context.Context, sessionID string, by int) (int, error) {
	return 0, errors.New("connection refused")
}

func setupRouter(store recorder.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)

	rec := recorder.NewRecorder(store)
	pipe := pipeline.New(
		markup.NewBuilder(),
		render.NewRenderer(nil),
		publish.NewPublisher(nil),
		rec,
	)

	handler := handlers.NewMockupsHandler(pipe, rec, nil)
	router := gin.New()
	router.POST("/api/v1/mockups", handler.CreateMockup)
	router.GET("/api/v1/mockups/:session_id", handler.GetMockup)
	router.POST("/api/v1/mockups/:session_id/displayed", handler.MarkDisplayed)
	return router
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateMockup_Success(t *testing.T) {
	router := setupRouter(recorder.NewMemoryStore())

	w := postJSON(router, "/api/v1/mockups", models.CreateMockupRequest{
		SessionID:   "S1",
		ProductID:   "P1",
		ProductName: "Quantum Kettle",
		ImageURL:    "https://cdn.example.com/p1.jpg",
		Caption:     "hello",
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.MockupResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "S1", resp.SessionID)
	assert.NotEmpty(t, resp.RecordID)
	require.Len(t, resp.AssetURLs, 1)
	assert.True(t, strings.HasPrefix(resp.AssetURLs[0], "data:"))
	assert.Equal(t, string(models.RenderTierLocalRaster), resp.RenderTier)
	assert.Equal(t, string(models.StorageTierInlineData), resp.StorageTier)
}

func TestCreateMockup_MissingRequiredFields(t *testing.T) {
	router := setupRouter(recorder.NewMemoryStore())

	w := postJSON(router, "/api/v1/mockups", map[string]string{"caption": "hello"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateMockup_ResubmitReturnsSameRecord(t *testing.T) {
	router := setupRouter(recorder.NewMemoryStore())

	body := models.CreateMockupRequest{
		SessionID: "S1",
		ProductID: "P1",
		ImageURL:  "https://cdn.example.com/p1.jpg",
	}
	first := postJSON(router, "/api/v1/mockups", body)
	second := postJSON(router, "/api/v1/mockups", body)

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)

	var a, b models.MockupResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &b))
	assert.Equal(t, a.RecordID, b.RecordID)
	assert.Equal(t, a.AssetURLs, b.AssetURLs)
}

func TestCreateMockup_RecordingFailedResponse(t *testing.T) {
	router := setupRouter(&failingStore{})

	w := postJSON(router, "/api/v1/mockups", models.CreateMockupRequest{
		SessionID: "S1",
		ProductID: "P1",
		ImageURL:  "https://cdn.example.com/p1.jpg",
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "RecordingFailed", resp.Error)
	assert.Equal(t, "S1", resp.SessionID)
	assert.True(t, strings.HasPrefix(resp.AssetURL, "data:"))
	assert.Equal(t, string(models.StorageTierInlineData), resp.StorageTier)
}

func TestGetMockup_NotFound(t *testing.T) {
	router := setupRouter(recorder.NewMemoryStore())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/mockups/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMockup_ReturnsStoredRecord(t *testing.T) {
	router := setupRouter(recorder.NewMemoryStore())

	created := postJSON(router, "/api/v1/mockups", models.CreateMockupRequest{
		SessionID:  "S1",
		ProductID:  "P1",
		ProductURL: "https://shop.example.com/products/p1",
		ImageURL:   "https://cdn.example.com/p1.jpg",
		Caption:    "hello",
	})
	require.Equal(t, http.StatusOK, created.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/mockups/S1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.PostResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "S1", resp.SessionID)
	assert.Equal(t, "P1", resp.ProductID)
	assert.Equal(t, "AI Showcase", resp.UserName)
	assert.Equal(t, "instagram", resp.AssetType)
	assert.Equal(t, 0, resp.DisplayedCount)
	assert.False(t, resp.CreatedAt.IsZero())
}

func TestMarkDisplayed(t *testing.T) {
	router := setupRouter(recorder.NewMemoryStore())

	created := postJSON(router, "/api/v1/mockups", models.CreateMockupRequest{
		SessionID: "S1",
		ProductID: "P1",
		ImageURL:  "https://cdn.example.com/p1.jpg",
	})
	require.Equal(t, http.StatusOK, created.Code)

	// Empty body defaults the increment to 1.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/mockups/S1/displayed", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp models.DisplayedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.DisplayedCount)

	w = postJSON(router, "/api/v1/mockups/S1/displayed", models.DisplayedRequest{Increment: 3})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.DisplayedCount)
}

func TestMarkDisplayed_NotFound(t *testing.T) {
	router := setupRouter(recorder.NewMemoryStore())

	w := postJSON(router, "/api/v1/mockups/missing/displayed", models.DisplayedRequest{Increment: 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
