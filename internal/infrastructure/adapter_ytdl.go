package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/yourusername/shareconnect-go/internal/domain"
)

// DownloaderServiceAdapter talks to MeTube and YT-DLP web services. Both
// expose the same /add endpoint.
type DownloaderServiceAdapter struct {
	service domain.ServiceType
}

type addVideoRequest struct {
	URL     string `json:"url"`
	Quality string `json:"quality"`
}

// NewMeTubeAdapter creates the MeTube adapter
func NewMeTubeAdapter() *DownloaderServiceAdapter {
	return &DownloaderServiceAdapter{service: domain.ServiceMeTube}
}

// NewYTDLAdapter creates the YT-DLP adapter
func NewYTDLAdapter() *DownloaderServiceAdapter {
	return &DownloaderServiceAdapter{service: domain.ServiceYTDL}
}

func (a *DownloaderServiceAdapter) Backend() domain.BackendKey {
	return domain.BackendKey{Service: a.service}
}

// BuildRequest posts {"url":<link>,"quality":"best"} to <base>/add
func (a *DownloaderServiceAdapter) BuildRequest(ctx context.Context, profile *domain.ServerProfile, link string) (*http.Request, error) {
	body, err := encodeJSON(addVideoRequest{URL: link, Quality: "best"})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, profile.BaseURL()+"/add", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", jsonContentType)
	return req, nil
}
