package supabase

import (
	"fmt"

	"github.com/supabase-community/supabase-go"
)

// RealtimeClient publishes mockup lifecycle events on session-scoped channels.
type RealtimeClient struct {
	client *supabase.Client
}

func NewRealtimeClient(supabaseURL, publishableKey string) (*RealtimeClient, error) {
	client, err := supabase.NewClient(supabaseURL, publishableKey, nil)
	if err != nil {
		return nil, err
	}
	return &RealtimeClient{client: client}, nil
}

func (r *RealtimeClient) PublishEvent(channel string, event string, payload map[string]interface{}) error {
	// The Supabase Go client has no direct Realtime publish; record inserts
	// trigger Realtime automatically. Explicit event publishing would go
	// through the Realtime REST API.
	return nil
}

func (r *RealtimeClient) PublishSessionEvent(sessionID string, event string, payload map[string]interface{}) error {
	channel := fmt.Sprintf("session:%s", sessionID)
	return r.PublishEvent(channel, event, payload)
}

// Event payloads
func MockupRecordedPayload(sessionID, recordID string, assetURLs []string) map[string]interface{} {
	return map[string]interface{}{
		"session_id": sessionID,
		"record_id":  recordID,
		"status":     "recorded",
		"asset_urls": assetURLs,
	}
}

func MockupDegradedPayload(sessionID, renderTier, storageTier string) map[string]interface{} {
	return map[string]interface{}{
		"session_id":   sessionID,
		"status":       "recorded_degraded",
		"render_tier":  renderTier,
		"storage_tier": storageTier,
	}
}

func MockupFailedPayload(sessionID, errorKind, errorMsg string) map[string]interface{} {
	return map[string]interface{}{
		"session_id": sessionID,
		"status":     "failed",
		"error":      errorKind,
		"message":    errorMsg,
	}
}
