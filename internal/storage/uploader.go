// Package storage proxies file uploads into the backend's object store.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/smart-wallet/core/internal/backend"
	"github.com/smart-wallet/core/internal/config"
	"github.com/smart-wallet/core/internal/models"
)

// Object is a stored file.
type Object struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Uploader streams files into one bucket with the service role key.
type Uploader struct {
	base   *url.URL
	key    string
	bucket string
	http   *http.Client
	log    zerolog.Logger
}

// NewUploader creates an Uploader for the configured bucket. It fails when
// no service role key is configured.
func NewUploader(b *backend.Client, cfg config.Config) (*Uploader, error) {
	if b.ServiceRoleKey() == "" {
		return nil, config.ErrServiceKeyMissing
	}

	return &Uploader{
		base:   b.BaseURL(),
		key:    b.ServiceRoleKey(),
		bucket: cfg.Bucket,
		http:   &http.Client{Timeout: cfg.RequestTimeout},
		log:    log.With().Str("component", "storage").Logger(),
	}, nil
}

// objectKey derives a collision-free key from the original filename. Only
// the base name survives, client-supplied paths never reach the bucket.
func (u *Uploader) objectKey(filename string) string {
	name := path.Base(filename)
	if name == "." || name == "/" {
		name = "upload"
	}

	return "receipts/" + strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + name
}

// Upload streams one file into the bucket and returns the stored object.
func (u *Uploader) Upload(ctx context.Context, filename string, file io.Reader) (Object, error) {
	if filename == "" {
		return Object{}, fmt.Errorf("storage: filename is required: %w", models.ErrValidation)
	}

	key := u.objectKey(filename)
	target := u.base.JoinPath("/api/storage/buckets/", u.bucket, "/objects/", key)

	reader, writer := io.Pipe()
	form := multipart.NewWriter(writer)

	go func() {
		part, err := form.CreateFormFile("file", path.Base(filename))
		if err != nil {
			writer.CloseWithError(err)
			return
		}

		if _, err := io.Copy(part, file); err != nil {
			writer.CloseWithError(err)
			return
		}

		writer.CloseWithError(form.Close())
	}()

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), reader)
	if err != nil {
		return Object{}, fmt.Errorf("%s: %w", err.Error(), models.ErrNetwork)
	}

	request.Header.Set("Content-Type", form.FormDataContentType())
	request.Header.Set("Authorization", "Bearer "+u.key)

	response, err := u.http.Do(request)
	if err != nil {
		return Object{}, fmt.Errorf("%s: %w", err.Error(), models.ErrNetwork)
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusForbidden:
		return Object{}, fmt.Errorf("upload rejected: %w", models.ErrAuth)
	case response.StatusCode >= 400:
		return Object{}, fmt.Errorf("upload failed (%s): %w", response.Status, models.ErrBackend)
	}

	u.log.Debug().Str("key", key).Msg("object stored")

	return Object{Key: key, URL: target.String()}, nil
}
