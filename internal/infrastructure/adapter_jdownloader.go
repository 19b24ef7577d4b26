package infrastructure

import (
	"context"
	"net/http"
	"net/url"

	"github.com/yourusername/shareconnect-go/internal/domain"
)

// JDownloaderAdapter uses the FlashGot-compatible endpoint of jDownloader
type JDownloaderAdapter struct{}

// NewJDownloaderAdapter creates the jDownloader adapter
func NewJDownloaderAdapter() *JDownloaderAdapter {
	return &JDownloaderAdapter{}
}

func (a *JDownloaderAdapter) Backend() domain.BackendKey {
	return domain.BackendKey{Service: domain.ServiceJDownloader}
}

// BuildRequest issues GET <base>/flashget?url=<escaped link>
func (a *JDownloaderAdapter) BuildRequest(ctx context.Context, profile *domain.ServerProfile, link string) (*http.Request, error) {
	target := profile.BaseURL() + "/flashget?url=" + url.QueryEscape(link)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	setBasicAuth(req, profile)
	return req, nil
}
