// Package photos pushes inline-encoded activity photos to the hosted object
// storage. Upload is best-effort: a failed upload keeps the inline data URI
// in the record, photo references are opaque strings either way.
package photos

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sedes-ce/sedesgo/internal/config"
)

// Uploader stores photos in a hosted storage bucket
type Uploader struct {
	client *resty.Client
	bucket string
	logger *zap.Logger
}

// NewUploader builds a storage client from configuration. A nil uploader is
// returned when no storage URL is configured; callers treat that as
// "keep photos inline".
func NewUploader(cfg config.StorageConfig, logger *zap.Logger) *Uploader {
	if cfg.URL == "" {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.URL, "/")).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetTimeout(30 * time.Second)

	return &Uploader{client: client, bucket: cfg.Bucket, logger: logger}
}

// ResolveAll uploads every inline data URI in refs and replaces it with the
// resulting public URL. References that are already URLs, or whose upload
// fails, pass through unchanged.
func (u *Uploader) ResolveAll(ctx context.Context, refs []string) []string {
	if u == nil {
		return refs
	}

	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		if !strings.HasPrefix(ref, "data:image/") {
			out = append(out, ref)
			continue
		}
		url, err := u.upload(ctx, ref)
		if err != nil {
			u.logger.Warn("photo upload failed, keeping inline data", zap.Error(err))
			out = append(out, ref)
			continue
		}
		out = append(out, url)
	}
	return out
}

func (u *Uploader) upload(ctx context.Context, dataURI string) (string, error) {
	mediaType, data, err := decodeDataURI(dataURI)
	if err != nil {
		return "", err
	}

	ext := "png"
	if parts := strings.SplitN(mediaType, "/", 2); len(parts) == 2 {
		ext = parts[1]
	}
	objectPath := fmt.Sprintf("%s/%s.%s", time.Now().Format("2006-01"), uuid.New().String(), ext)

	resp, err := u.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", mediaType).
		SetBody(data).
		Post(fmt.Sprintf("/storage/v1/object/%s/%s", u.bucket, objectPath))
	if err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return "", fmt.Errorf("storage api error: status=%d body=%s", resp.StatusCode(), resp.String())
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", u.client.BaseURL, u.bucket, objectPath), nil
}

func decodeDataURI(uri string) (mediaType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data uri")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data uri")
	}

	mediaType = meta
	if i := strings.Index(meta, ";"); i >= 0 {
		mediaType = meta[:i]
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode photo payload: %w", err)
	}
	return mediaType, data, nil
}
