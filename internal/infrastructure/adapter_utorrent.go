package infrastructure

import (
	"context"
	"net/http"
	"net/url"

	"github.com/yourusername/shareconnect-go/internal/domain"
)

// UTorrentAdapter talks to the uTorrent Web UI
type UTorrentAdapter struct{}

// NewUTorrentAdapter creates the uTorrent adapter
func NewUTorrentAdapter() *UTorrentAdapter {
	return &UTorrentAdapter{}
}

func (a *UTorrentAdapter) Backend() domain.BackendKey {
	return domain.BackendKey{Service: domain.ServiceTorrent, Client: domain.TorrentUTorrent}
}

// BuildRequest issues GET <base>/gui/?action=add-url&s=<escaped link>
func (a *UTorrentAdapter) BuildRequest(ctx context.Context, profile *domain.ServerProfile, link string) (*http.Request, error) {
	target := profile.BaseURL() + "/gui/?action=add-url&s=" + url.QueryEscape(link)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	setBasicAuth(req, profile)
	return req, nil
}
