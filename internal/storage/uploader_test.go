package storage_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/smart-wallet/core/internal/backend"
	"github.com/smart-wallet/core/internal/config"
	"github.com/smart-wallet/core/internal/models"
	"github.com/smart-wallet/core/internal/storage"
)

func newUploader(t *testing.T, handler http.Handler) *storage.Uploader {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	base, err := url.Parse(srv.URL)
	assert.Nil(t, err)

	cfg := config.Config{
		BackendURL:     base,
		AnonKey:        "test-anon-key",
		ServiceRoleKey: "test-service-key",
		Bucket:         "uploads",
		RequestTimeout: 5 * time.Second,
	}

	client, err := backend.New(cfg)
	assert.Nil(t, err)

	uploader, err := storage.NewUploader(client, cfg)
	assert.Nil(t, err)

	return uploader
}

func TestUpload(t *testing.T) {
	uploader := newUploader(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasPrefix(r.URL.Path, "/api/storage/buckets/uploads/objects/receipts/"))
		assert.True(t, strings.HasSuffix(r.URL.Path, "-receipt.jpg"))
		assert.Equal(t, "Bearer test-service-key", r.Header.Get("Authorization"))

		file, header, err := r.FormFile("file")
		assert.Nil(t, err)
		defer file.Close()

		assert.Equal(t, "receipt.jpg", header.Filename)
		body, err := io.ReadAll(file)
		assert.Nil(t, err)
		assert.Equal(t, "fake image bytes", string(body))

		w.WriteHeader(http.StatusCreated)
	}))

	object, err := uploader.Upload(context.Background(), "receipt.jpg", strings.NewReader("fake image bytes"))
	assert.Nil(t, err)
	assert.True(t, strings.HasPrefix(object.Key, "receipts/"))
	assert.True(t, strings.HasSuffix(object.Key, "-receipt.jpg"))
	assert.Contains(t, object.URL, object.Key)
}

func TestUploadStripsClientPath(t *testing.T) {
	uploader := newUploader(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotContains(t, r.URL.Path, "..")
		w.WriteHeader(http.StatusCreated)
	}))

	object, err := uploader.Upload(context.Background(), "../../etc/receipt.jpg", strings.NewReader("x"))
	assert.Nil(t, err)
	assert.True(t, strings.HasSuffix(object.Key, "-receipt.jpg"))
	assert.NotContains(t, object.Key, "..")
}

func TestUploadRequiresFilename(t *testing.T) {
	uploader := newUploader(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	}))

	_, err := uploader.Upload(context.Background(), "", strings.NewReader("x"))
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestUploadFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		err    error
	}{
		{"unauthorized", http.StatusUnauthorized, models.ErrAuth},
		{"bucket missing", http.StatusNotFound, models.ErrBackend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uploader := newUploader(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			_, err := uploader.Upload(context.Background(), "receipt.jpg", strings.NewReader("x"))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestNewUploaderRequiresServiceKey(t *testing.T) {
	base, err := url.Parse("https://backend.example")
	assert.Nil(t, err)

	cfg := config.Config{BackendURL: base, AnonKey: "test-anon-key", Bucket: "uploads"}
	client, err := backend.New(cfg)
	assert.Nil(t, err)

	_, err = storage.NewUploader(client, cfg)
	assert.ErrorIs(t, err, config.ErrServiceKeyMissing)
}
