package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBunnyBaseURL = "https://storage.bunnycdn.com"

var ErrNotConfigured = errors.New("bunny storage is not configured")

type BunnyConfig struct {
	StorageZone string
	AccessKey   string
	BaseURL     string // storage API endpoint, region specific
	CDNUrl      string // public pull zone serving the files
}

// BunnyStorage stores files in a Bunny storage zone and serves them from its CDN.
type BunnyStorage interface {
	IsConfigured() bool
	// UploadFile writes data to path inside the zone and returns its public URL.
	UploadFile(ctx context.Context, path string, data []byte, contentType string) (string, error)
	DeleteFile(ctx context.Context, path string) error
	// Owns reports whether fileURL points into this storage zone.
	Owns(fileURL string) bool
	// DeleteByURL removes a file given the public URL UploadFile returned.
	DeleteByURL(ctx context.Context, fileURL string) error
	Ping(ctx context.Context) error
}

type bunnyStorage struct {
	config     BunnyConfig
	httpClient *http.Client
}

func NewBunnyStorage(config BunnyConfig) BunnyStorage {
	if config.BaseURL == "" {
		config.BaseURL = defaultBunnyBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	config.CDNUrl = strings.TrimRight(config.CDNUrl, "/")

	return &bunnyStorage{
		config: config,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (s *bunnyStorage) IsConfigured() bool {
	return s.config.StorageZone != "" && s.config.AccessKey != "" && s.config.CDNUrl != ""
}

func (s *bunnyStorage) objectURL(path string) string {
	return fmt.Sprintf("%s/%s/%s", s.config.BaseURL, s.config.StorageZone, strings.TrimLeft(path, "/"))
}

// PublicURL returns the CDN URL of a stored path.
func (s *bunnyStorage) PublicURL(path string) string {
	return s.config.CDNUrl + "/" + strings.TrimLeft(path, "/")
}

func (s *bunnyStorage) UploadFile(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	if !s.IsConfigured() {
		return "", ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.objectURL(path), bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("AccessKey", s.config.AccessKey)
	req.Header.Set("Content-Type", "application/octet-stream")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if err := s.do(req, http.StatusCreated, http.StatusOK); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", path, err)
	}

	return s.PublicURL(path), nil
}

func (s *bunnyStorage) DeleteFile(ctx context.Context, path string) error {
	if !s.IsConfigured() {
		return ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.objectURL(path), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("AccessKey", s.config.AccessKey)

	// A missing file is already deleted.
	if err := s.do(req, http.StatusOK, http.StatusNotFound); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}

func (s *bunnyStorage) Owns(fileURL string) bool {
	return s.IsConfigured() && strings.HasPrefix(fileURL, s.config.CDNUrl+"/")
}

func (s *bunnyStorage) DeleteByURL(ctx context.Context, fileURL string) error {
	if !s.Owns(fileURL) {
		return fmt.Errorf("url %q is not served by this storage zone", fileURL)
	}
	return s.DeleteFile(ctx, strings.TrimPrefix(fileURL, s.config.CDNUrl+"/"))
}

// Ping lists the zone root to check the credentials.
func (s *bunnyStorage) Ping(ctx context.Context) error {
	if !s.IsConfigured() {
		return ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.objectURL(""), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("AccessKey", s.config.AccessKey)
	req.Header.Set("Accept", "application/json")

	return s.do(req, http.StatusOK)
}

func (s *bunnyStorage) do(req *http.Request, expected ...int) error {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	for _, code := range expected {
		if resp.StatusCode == code {
			io.Copy(io.Discard, resp.Body)
			return nil
		}
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
