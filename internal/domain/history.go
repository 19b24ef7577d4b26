package domain

import (
	"net/url"
	"strings"
	"time"
)

// MediaType classifies the shape of a shared URL
type MediaType string

const (
	MediaSingleVideo MediaType = "single_video"
	MediaPlaylist    MediaType = "playlist"
	MediaChannel     MediaType = "channel"
	MediaTorrent     MediaType = "torrent"
)

// ProviderUnknown is the service provider of URLs no rule matches
const ProviderUnknown = "Unknown"

// HistoryItem is an immutable record of one dispatch attempt. Profile and
// service fields are copies taken at write time so the record stays
// meaningful after the profile is edited or deleted.
type HistoryItem struct {
	ID               uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	URL              string    `json:"url" gorm:"not null"`
	Title            string    `json:"title"`
	ServiceProvider  string    `json:"service_provider" gorm:"index"`
	MediaType        MediaType `json:"media_type" gorm:"index"`
	Timestamp        time.Time `json:"timestamp" gorm:"not null;index"`
	ProfileID        string    `json:"profile_id"`
	ProfileName      string    `json:"profile_name"`
	ServiceType      string    `json:"service_type" gorm:"index"`
	SentSuccessfully bool      `json:"sent_successfully"`
	ErrorMessage     string    `json:"error_message,omitempty" gorm:"type:text"`
}

// TableName specifies the table name for GORM
func (HistoryItem) TableName() string {
	return "history_items"
}

// NewHistoryItem snapshots a dispatch outcome
func NewHistoryItem(link string, profile ServerProfile, result DispatchResult) *HistoryItem {
	item := &HistoryItem{
		URL:              link,
		Title:            ExtractTitle(link),
		ServiceProvider:  DetectServiceProvider(link),
		MediaType:        DetectMediaType(link),
		Timestamp:        time.Now(),
		ProfileID:        profile.ID,
		ProfileName:      profile.Name,
		ServiceType:      profile.ServiceTypeName(),
		SentSuccessfully: result.OK,
	}
	if !result.OK {
		item.ErrorMessage = result.Message
	}
	return item
}

// ExtractTitle derives a display label from a URL. Magnet links use their
// dn= display name when they carry one.
func ExtractTitle(link string) string {
	if IsMagnet(link) {
		if name := magnetDisplayName(link); name != "" {
			return name
		}
		return link
	}
	title := strings.ReplaceAll(link, "https://", "")
	title = strings.ReplaceAll(title, "http://", "")
	return strings.ReplaceAll(title, "www.", "")
}

func magnetDisplayName(link string) string {
	idx := strings.Index(link, "?")
	if idx < 0 {
		return ""
	}
	values, err := url.ParseQuery(link[idx+1:])
	if err != nil {
		return ""
	}
	return strings.TrimSpace(values.Get("dn"))
}

var providerRules = []struct {
	name     string
	contains []string
}{
	{"YouTube", []string{"youtube.com", "youtu.be"}},
	{"Vimeo", []string{"vimeo.com"}},
	{"Twitch", []string{"twitch.tv"}},
	{"Reddit", []string{"reddit.com"}},
	{"Twitter", []string{"twitter.com"}},
	{"Instagram", []string{"instagram.com"}},
	{"Facebook", []string{"facebook.com"}},
	{"SoundCloud", []string{"soundcloud.com"}},
	{"Dailymotion", []string{"dailymotion.com"}},
	{"Bandcamp", []string{"bandcamp.com"}},
}

// DetectServiceProvider classifies the content origin of a URL
func DetectServiceProvider(link string) string {
	for _, rule := range providerRules {
		for _, s := range rule.contains {
			if strings.Contains(link, s) {
				return rule.name
			}
		}
		// x.com is matched on the host so that e.g. dropbox.com is not Twitter
		if rule.name == "Twitter" && hostIs(link, "x.com") {
			return rule.name
		}
	}
	if IsMagnet(link) {
		return "Magnet Link"
	}
	return ProviderUnknown
}

// DetectMediaType infers the media type from the URL shape
func DetectMediaType(link string) MediaType {
	switch {
	case strings.Contains(link, "/playlist") || strings.Contains(link, "&list="):
		return MediaPlaylist
	case strings.Contains(link, "/channel/") || strings.Contains(link, "/user/"):
		return MediaChannel
	case IsMagnet(link):
		return MediaTorrent
	default:
		return MediaSingleVideo
	}
}

// IsMagnet checks for the magnet: scheme prefix
func IsMagnet(link string) bool {
	return strings.HasPrefix(link, "magnet:")
}

func hostIs(link, domain string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == domain || strings.HasSuffix(host, "."+domain)
}
