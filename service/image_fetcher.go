package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ImageFetcherInterface is the fetch-and-embed collaborator used by the
// catalog document generator. Fetch resolves a source URL to embeddable bytes
// and a MIME type, or an error when the image is unavailable.
type ImageFetcherInterface interface {
	Fetch(ctx context.Context, imageURL string) (data []byte, mimeType string, err error)
}

// ImageFetcher fetches images over HTTP. Images hosted on Google Drive are
// downloaded through the Drive API when a Drive service is configured, since
// their public URLs do not serve raw bytes reliably.
type ImageFetcher struct {
	client       *http.Client
	driveService DriveServiceInterface // optional
	baseURL      string                // prepended to relative URLs
}

// NewImageFetcher creates an ImageFetcher. driveService may be nil.
func NewImageFetcher(baseURL string, driveService DriveServiceInterface) *ImageFetcher {
	return &ImageFetcher{
		client:       &http.Client{Timeout: 30 * time.Second},
		driveService: driveService,
		baseURL:      baseURL,
	}
}

// Ensure ImageFetcher implements ImageFetcherInterface
var _ ImageFetcherInterface = (*ImageFetcher)(nil)

// Fetch downloads the image at imageURL and sniffs its MIME type
func (f *ImageFetcher) Fetch(ctx context.Context, imageURL string) ([]byte, string, error) {
	if imageURL == "" {
		return nil, "", fmt.Errorf("empty image URL")
	}

	if fileID := driveFileID(imageURL); fileID != "" && f.driveService != nil {
		data, err := f.driveService.DownloadImage(fileID)
		if err != nil {
			return nil, "", fmt.Errorf("failed to download drive image: %w", err)
		}
		return data, http.DetectContentType(data), nil
	}

	fullURL := imageURL
	if imageURL[0] == '/' {
		fullURL = f.baseURL + imageURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build image request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("image endpoint returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image data: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("image endpoint returned an empty body")
	}

	return data, http.DetectContentType(data), nil
}

// driveFileID extracts the file id from a drive.google.com/uc?id=... URL,
// returning "" for any other URL
func driveFileID(imageURL string) string {
	u, err := url.Parse(imageURL)
	if err != nil {
		return ""
	}
	if u.Host != "drive.google.com" {
		return ""
	}
	return u.Query().Get("id")
}
