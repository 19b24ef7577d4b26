package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/shareconnect-go/internal/domain"
)

func seedHistoryService(t *testing.T) *HistoryService {
	t.Helper()
	store := newTestStore(t)
	base := time.Now().Add(-time.Hour)
	for i, l := range []struct {
		link    string
		service domain.ServerProfile
	}{
		{"https://youtube.com/watch?v=1", domain.ServerProfile{Name: "A", ServiceType: domain.ServiceMeTube}},
		{"https://youtube.com/playlist?list=PL1", domain.ServerProfile{Name: "A", ServiceType: domain.ServiceMeTube}},
		{"https://vimeo.com/channel/staff", domain.ServerProfile{Name: "B", ServiceType: domain.ServiceYTDL}},
		{"magnet:?xt=urn:btih:ABC", domain.ServerProfile{Name: "C", ServiceType: domain.ServiceTorrent, TorrentClientType: domain.TorrentUTorrent}},
	} {
		item := domain.NewHistoryItem(l.link, l.service, domain.Success(200))
		item.Timestamp = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, store.Insert(item))
	}
	return NewHistoryService(store)
}

func urls(items []*domain.HistoryItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.URL
	}
	return out
}

func TestHistoryService_List(t *testing.T) {
	h := seedHistoryService(t)

	all, err := h.List(domain.HistoryFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"magnet:?xt=urn:btih:ABC",
		"https://vimeo.com/channel/staff",
		"https://youtube.com/playlist?list=PL1",
		"https://youtube.com/watch?v=1",
	}, urls(all))

	youtube, err := h.List(domain.HistoryFilter{ServiceProvider: "YouTube"})
	require.NoError(t, err)
	assert.Len(t, youtube, 2)

	combined, err := h.List(domain.HistoryFilter{ServiceProvider: "YouTube", MediaType: domain.MediaPlaylist})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://youtube.com/playlist?list=PL1"}, urls(combined))

	channels, err := h.List(domain.HistoryFilter{MediaType: domain.MediaChannel})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://vimeo.com/channel/staff"}, urls(channels))

	torrents, err := h.List(domain.HistoryFilter{ServiceType: "Torrent (uTorrent)"})
	require.NoError(t, err)
	assert.Equal(t, []string{"magnet:?xt=urn:btih:ABC"}, urls(torrents))
}

func TestHistoryService_ListCombinedFilters(t *testing.T) {
	h := seedHistoryService(t)

	tests := []struct {
		name   string
		filter domain.HistoryFilter
		want   []string
	}{
		{"provider and media type", domain.HistoryFilter{ServiceProvider: "YouTube", MediaType: domain.MediaPlaylist},
			[]string{"https://youtube.com/playlist?list=PL1"}},
		{"provider and service type", domain.HistoryFilter{ServiceProvider: "Vimeo", ServiceType: "YT-DLP"},
			[]string{"https://vimeo.com/channel/staff"}},
		{"provider and other service type", domain.HistoryFilter{ServiceProvider: "YouTube", ServiceType: "YT-DLP"},
			[]string{}},
		{"media type and service type", domain.HistoryFilter{MediaType: domain.MediaSingleVideo, ServiceType: "MeTube"},
			[]string{"https://youtube.com/watch?v=1"}},
		{"media type and other service type", domain.HistoryFilter{MediaType: domain.MediaSingleVideo, ServiceType: "YT-DLP"},
			[]string{}},
		{"all three", domain.HistoryFilter{ServiceProvider: "YouTube", MediaType: domain.MediaSingleVideo, ServiceType: "MeTube"},
			[]string{"https://youtube.com/watch?v=1"}},
		{"all three, no match", domain.HistoryFilter{ServiceProvider: "YouTube", MediaType: domain.MediaPlaylist, ServiceType: "YT-DLP"},
			[]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := h.List(tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, urls(items))
		})
	}
}

func TestHistoryService_Filters(t *testing.T) {
	h := seedHistoryService(t)

	filters, err := h.Filters()
	require.NoError(t, err)
	assert.Equal(t, []string{"Magnet Link", "Vimeo", "YouTube"}, filters.ServiceProviders)
	assert.Equal(t, []domain.MediaType{domain.MediaChannel, domain.MediaPlaylist, domain.MediaSingleVideo, domain.MediaTorrent}, filters.MediaTypes)
	assert.Equal(t, []string{"MeTube", "Torrent (uTorrent)", "YT-DLP"}, filters.ServiceTypes)
}

func TestHistoryService_Clear(t *testing.T) {
	h := seedHistoryService(t)

	require.NoError(t, h.Clear(domain.HistoryFilter{ServiceType: "MeTube"}))
	remaining, err := h.List(domain.HistoryFilter{})
	require.NoError(t, err)
	assert.Len(t, remaining, 2)

	require.NoError(t, h.Clear(domain.HistoryFilter{}))
	require.NoError(t, h.Clear(domain.HistoryFilter{}))
	remaining, err = h.List(domain.HistoryFilter{})
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestHistoryService_ClearCombinedFilter(t *testing.T) {
	h := seedHistoryService(t)

	// only the YouTube playlist matches both fields
	require.NoError(t, h.Clear(domain.HistoryFilter{ServiceProvider: "YouTube", MediaType: domain.MediaPlaylist}))
	remaining, err := h.List(domain.HistoryFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"magnet:?xt=urn:btih:ABC",
		"https://vimeo.com/channel/staff",
		"https://youtube.com/watch?v=1",
	}, urls(remaining))

	// no row is both YouTube and YT-DLP
	require.NoError(t, h.Clear(domain.HistoryFilter{ServiceProvider: "YouTube", ServiceType: "YT-DLP"}))
	remaining, err = h.List(domain.HistoryFilter{})
	require.NoError(t, err)
	assert.Len(t, remaining, 3)

	require.NoError(t, h.Clear(domain.HistoryFilter{MediaType: domain.MediaSingleVideo, ServiceType: "MeTube", ServiceProvider: "YouTube"}))
	remaining, err = h.List(domain.HistoryFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"magnet:?xt=urn:btih:ABC", "https://vimeo.com/channel/staff"}, urls(remaining))
}

func TestHistoryService_GetAndDelete(t *testing.T) {
	h := seedHistoryService(t)

	all, err := h.List(domain.HistoryFilter{})
	require.NoError(t, err)
	id := all[0].ID

	item, err := h.Get(id)
	require.NoError(t, err)
	require.NotNil(t, item)

	require.NoError(t, h.Delete(id))
	item, err = h.Get(id)
	require.NoError(t, err)
	assert.Nil(t, item)
}
