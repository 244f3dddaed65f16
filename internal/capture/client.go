package capture

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Fixed capture parameters. The markup is sent inline rather than as a URL so
// that non-public resources (data URIs, locally served assets) still render.
const (
	deviceScaleFactor = 2
	outputFormat      = "jpg"
	imageQuality      = 90
	renderDelaySecs   = 1
)

type Client struct {
	baseURL    string
	accessKey  string
	httpClient *http.Client
}

type captureRequest struct {
	AccessKey         string `json:"access_key"`
	HTML              string `json:"html"`
	ViewportWidth     int    `json:"viewport_width"`
	ViewportHeight    int    `json:"viewport_height"`
	DeviceScaleFactor int    `json:"device_scale_factor"`
	Format            string `json:"format"`
	ImageQuality      int    `json:"image_quality"`
	Delay             int    `json:"delay"`
}

func NewClient(baseURL, accessKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:   baseURL,
		accessKey: accessKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CaptureHTML renders the given markup in a headless browser at the provider
// and returns the encoded image bytes. Any transport error, non-2xx status, or
// non-image success body is returned as an error; callers treat all of them as
// a signal to fall back.
func (c *Client) CaptureHTML(ctx context.Context, html string, width, height int) ([]byte, string, error) {
	reqBody := captureRequest{
		AccessKey:         c.accessKey,
		HTML:              html,
		ViewportWidth:     width,
		ViewportHeight:    height,
		DeviceScaleFactor: deviceScaleFactor,
		Format:            outputFormat,
		ImageQuality:      imageQuality,
		Delay:             renderDelaySecs,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(c.baseURL, "/") + "/take"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("capture failed: status %d, body: %s", resp.StatusCode, truncate(body, 512))
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, "", fmt.Errorf("capture returned non-image payload: content type %q", contentType)
	}

	if len(body) == 0 {
		return nil, "", fmt.Errorf("capture returned empty image body")
	}

	return body, contentType, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
