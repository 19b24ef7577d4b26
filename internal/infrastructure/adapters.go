package infrastructure

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/yourusername/shareconnect-go/internal/domain"
)

const jsonContentType = "application/json; charset=utf-8"

// DefaultAdapters returns one adapter per supported back-end variant
func DefaultAdapters() []domain.BackendAdapter {
	return []domain.BackendAdapter{
		NewMeTubeAdapter(),
		NewYTDLAdapter(),
		NewQBittorrentAdapter(),
		NewTransmissionAdapter(),
		NewUTorrentAdapter(),
		NewJDownloaderAdapter(),
	}
}

// encodeJSON marshals v without HTML escaping so that '&', '<' and '>' in
// URLs are sent literally
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func setBasicAuth(req *http.Request, profile *domain.ServerProfile) {
	if profile.HasCredentials() {
		req.SetBasicAuth(profile.Username, profile.Password)
	}
}
