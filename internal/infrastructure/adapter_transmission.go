package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/yourusername/shareconnect-go/internal/domain"
)

const transmissionSessionHeader = "X-Transmission-Session-Id"

// TransmissionAdapter talks to the Transmission RPC endpoint. It caches the
// CSRF session id per server so only the first request pays the 409 round trip.
type TransmissionAdapter struct {
	mu       sync.Mutex
	sessions map[string]string
}

type transmissionRequest struct {
	Method    string                 `json:"method"`
	Arguments transmissionAddRequest `json:"arguments"`
}

type transmissionAddRequest struct {
	Filename string `json:"filename"`
}

// NewTransmissionAdapter creates the Transmission adapter
func NewTransmissionAdapter() *TransmissionAdapter {
	return &TransmissionAdapter{sessions: make(map[string]string)}
}

func (a *TransmissionAdapter) Backend() domain.BackendKey {
	return domain.BackendKey{Service: domain.ServiceTorrent, Client: domain.TorrentTransmission}
}

// BuildRequest posts a torrent-add RPC call carrying the cached session id
func (a *TransmissionAdapter) BuildRequest(ctx context.Context, profile *domain.ServerProfile, link string) (*http.Request, error) {
	body, err := encodeJSON(transmissionRequest{
		Method:    "torrent-add",
		Arguments: transmissionAddRequest{Filename: link},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	base := profile.BaseURL()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/transmission/rpc", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", jsonContentType)
	if id := a.session(base); id != "" {
		req.Header.Set(transmissionSessionHeader, id)
	}
	setBasicAuth(req, profile)
	return req, nil
}

// Renegotiate stores the session id from a 409 challenge and asks for a resend
func (a *TransmissionAdapter) Renegotiate(profile *domain.ServerProfile, resp *http.Response) bool {
	if resp.StatusCode != http.StatusConflict {
		return false
	}
	id := resp.Header.Get(transmissionSessionHeader)
	if id == "" {
		return false
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.sessions[profile.BaseURL()] = id
	return true
}

func (a *TransmissionAdapter) session(base string) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sessions[base]
}
