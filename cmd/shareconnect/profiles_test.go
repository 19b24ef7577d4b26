package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/shareconnect-go/internal/domain"
)

func TestEncodeDecodeProfiles(t *testing.T) {
	profiles := []domain.ServerProfile{
		{ID: "a", Name: "Home", Host: "http://192.168.1.10", Port: 8081, ServiceType: domain.ServiceMeTube},
		{ID: "b", Name: "Seedbox", Host: "https://seed.example.com", Port: 9091,
			ServiceType: domain.ServiceTorrent, TorrentClientType: domain.TorrentTransmission,
			Username: "admin", Password: "secret"},
	}

	var buf bytes.Buffer
	require.NoError(t, encodeProfiles(&buf, profiles))
	assert.Contains(t, buf.String(), "torrent_client_type: transmission")

	decoded, err := decodeProfiles(&buf)
	require.NoError(t, err)
	require.Len(t, decoded, 2)

	// ids are not carried over
	assert.Empty(t, decoded[0].ID)
	assert.Empty(t, decoded[1].ID)
	assert.Equal(t, "Seedbox", decoded[1].Name)
	assert.Equal(t, domain.TorrentTransmission, decoded[1].TorrentClientType)
	assert.Equal(t, "secret", decoded[1].Password)
}

func TestDecodeProfiles_DefaultsServiceType(t *testing.T) {
	doc := `
profiles:
  - name: Living room
    host: http://10.0.0.2
    port: 8081
`
	profiles, err := decodeProfiles(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, domain.ServiceMeTube, profiles[0].ServiceType)
}

func TestDecodeProfiles_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"not yaml", "profiles: [unclosed"},
		{"missing host", "profiles:\n  - name: x\n    port: 80\n"},
		{"torrent without client", "profiles:\n  - name: x\n    host: http://h\n    port: 80\n    service_type: torrent\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeProfiles(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}
