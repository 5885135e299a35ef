package client

import (
	"context"
	"net/http"
	"time"

	"github.com/BethCNC/dad-social-media-agent-sub000/types"
)

// SchedulePost submits the rendered post to the social publishing provider.
// A nil scheduledAt means publish as soon as the provider allows.
func (c *Client) SchedulePost(ctx context.Context, mediaURL, caption string, platforms []string, scheduledAt *time.Time) (*types.ScheduleReceipt, error) {
	payload := map[string]interface{}{
		"video_url": mediaURL,
		"caption":   caption,
		"platforms": platforms,
	}
	if scheduledAt != nil {
		payload["scheduled_time"] = scheduledAt.UTC().Format(time.RFC3339)
	}

	var receipt types.ScheduleReceipt
	if err := c.doJSONRequest(ctx, http.MethodPost, "/api/social/schedule", payload, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}
