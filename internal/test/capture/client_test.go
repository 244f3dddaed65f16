package capture_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stvhwngwrtr/shopify-ai-showcase/internal/capture"
)

func TestClient_CaptureHTML(t *testing.T) {
	imageBytes := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/take", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test-key", body["access_key"])
		assert.Equal(t, "<html>post</html>", body["html"])
		assert.Equal(t, float64(1080), body["viewport_width"])
		assert.Equal(t, float64(1350), body["viewport_height"])
		assert.Equal(t, float64(2), body["device_scale_factor"])
		assert.Equal(t, "jpg", body["format"])
		assert.Equal(t, float64(90), body["image_quality"])

		w.Header().Set("Content-Type", "image/jpeg")
		w.Write(imageBytes)
	}))
	defer server.Close()

	client := capture.NewClient(server.URL, "test-key", 5*time.Second)
	data, contentType, err := client.CaptureHTML(context.Background(), "<html>post</html>", 1080, 1350)

	require.NoError(t, err)
	assert.Equal(t, imageBytes, data)
	assert.Equal(t, "image/jpeg", contentType)
}

func TestClient_CaptureHTML_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := capture.NewClient(server.URL, "test-key", 5*time.Second)
	_, _, err := client.CaptureHTML(context.Background(), "<html></html>", 1080, 1350)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestClient_CaptureHTML_NonImagePayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":"something went sideways"}`))
	}))
	defer server.Close()

	client := capture.NewClient(server.URL, "test-key", 5*time.Second)
	_, _, err := client.CaptureHTML(context.Background(), "<html></html>", 1080, 1350)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "non-image payload")
}

func TestClient_CaptureHTML_Unreachable(t *testing.T) {
	client := capture.NewClient("http://127.0.0.1:1", "test-key", 500*time.Millisecond)
	_, _, err := client.CaptureHTML(context.Background(), "<html></html>", 1080, 1350)

	assert.Error(t, err)
}
