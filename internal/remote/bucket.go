package remote

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Upload stores a binary artifact (proof of residency, certificates) in the
// named bucket and returns its public URL. The caller treats the URL as an
// opaque string.
func (c *Client) Upload(ctx context.Context, bucket, objectPath, contentType string, data []byte) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(data).
		Post(fmt.Sprintf("/storage/v1/object/%s/%s", bucket, objectPath))
	if err != nil {
		return "", fmt.Errorf("remote upload: %w", err)
	}
	if resp.IsError() {
		c.logger.Warn("remote upload failed",
			zap.String("bucket", bucket),
			zap.String("path", objectPath),
			zap.Int("status", resp.StatusCode()),
		)
		return "", fmt.Errorf("remote upload: status %d", resp.StatusCode())
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.http.BaseURL, bucket, objectPath), nil
}
