package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLinkType(t *testing.T) {
	tests := []struct {
		url      string
		expected LinkType
	}{
		{"magnet:?xt=urn:btih:ABC", LinkTorrent},
		{"MAGNET:?xt=urn:btih:ABC", LinkTorrent},
		{"https://example.com/ubuntu.torrent", LinkTorrent},
		{"https://www.youtube.com/watch?v=abc", LinkStreaming},
		{"https://youtu.be/abc", LinkStreaming},
		{"https://example.com/file.zip", LinkDirectDownload},
		{"ftp://example.com/file.zip", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectLinkType(tt.url))
		})
	}
}

func TestServiceType_Supports(t *testing.T) {
	assert.True(t, ServiceMeTube.Supports(LinkStreaming))
	assert.False(t, ServiceMeTube.Supports(LinkDirectDownload))
	assert.True(t, ServiceYTDL.Supports(LinkDirectDownload))
	assert.False(t, ServiceYTDL.Supports(LinkTorrent))
	assert.True(t, ServiceTorrent.Supports(LinkTorrent))
	assert.False(t, ServiceTorrent.Supports(LinkStreaming))
	assert.True(t, ServiceJDownloader.Supports(LinkDirectDownload))
	assert.False(t, ServiceType("other").Supports(LinkStreaming))
}

func TestFilterCompatibleProfiles(t *testing.T) {
	profiles := []ServerProfile{
		{ID: "1", ServiceType: ServiceMeTube},
		{ID: "2", ServiceType: ServiceTorrent, TorrentClientType: TorrentQBittorrent},
		{ID: "3", ServiceType: ServiceJDownloader},
	}

	torrent := FilterCompatibleProfiles(profiles, "magnet:?xt=urn:btih:ABC")
	assert.Len(t, torrent, 1)
	assert.Equal(t, "2", torrent[0].ID)

	streaming := FilterCompatibleProfiles(profiles, "https://youtube.com/watch?v=abc")
	assert.Len(t, streaming, 2)

	assert.Len(t, FilterCompatibleProfiles(profiles, "not a link"), 3)
}
