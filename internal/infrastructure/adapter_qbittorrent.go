package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/yourusername/shareconnect-go/internal/domain"
)

// QBittorrentAdapter talks to the qBittorrent Web API v2
type QBittorrentAdapter struct{}

// NewQBittorrentAdapter creates the qBittorrent adapter
func NewQBittorrentAdapter() *QBittorrentAdapter {
	return &QBittorrentAdapter{}
}

func (a *QBittorrentAdapter) Backend() domain.BackendKey {
	return domain.BackendKey{Service: domain.ServiceTorrent, Client: domain.TorrentQBittorrent}
}

// BuildRequest posts a multipart form whose urls field carries the link.
// Magnet links and .torrent URLs take the same path.
func (a *QBittorrentAdapter) BuildRequest(ctx context.Context, profile *domain.ServerProfile, link string) (*http.Request, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("urls", link); err != nil {
		return nil, fmt.Errorf("failed to write form field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, profile.BaseURL()+"/api/v2/torrents/add", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req, nil
}

// Authenticate logs in when the profile has a username. The SID cookie is
// kept by the client's cookie jar.
func (a *QBittorrentAdapter) Authenticate(ctx context.Context, client domain.HTTPDoer, profile *domain.ServerProfile) error {
	if !profile.HasCredentials() {
		return nil
	}

	form := url.Values{}
	form.Set("username", profile.Username)
	form.Set("password", profile.Password)

	base := profile.BaseURL()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/api/v2/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	// qBittorrent rejects logins whose Referer does not match its own origin
	req.Header.Set("Referer", base)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	text := strings.TrimSpace(string(data))
	if resp.StatusCode/100 != 2 || text != "Ok." {
		if text == "" {
			text = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return fmt.Errorf("qBittorrent login failed: %s", text)
	}
	return nil
}
