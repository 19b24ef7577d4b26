package domain

import (
	"net/url"
	"strings"
)

// LinkType is the broad kind of a shared link, used to match profiles
type LinkType string

const (
	LinkStreaming      LinkType = "streaming"
	LinkTorrent        LinkType = "torrent"
	LinkDirectDownload LinkType = "direct_download"
)

var streamingHosts = map[string]bool{
	"youtube.com": true, "www.youtube.com": true, "m.youtube.com": true, "youtu.be": true,
	"vimeo.com": true, "www.vimeo.com": true,
	"twitch.tv": true, "www.twitch.tv": true,
	"reddit.com": true, "www.reddit.com": true,
	"twitter.com": true, "www.twitter.com": true, "x.com": true, "www.x.com": true,
	"instagram.com": true, "www.instagram.com": true,
	"facebook.com": true, "www.facebook.com": true,
	"soundcloud.com": true, "www.soundcloud.com": true,
	"dailymotion.com": true, "www.dailymotion.com": true,
	"bandcamp.com": true, "www.bandcamp.com": true,
}

// DetectLinkType classifies a link. The empty LinkType means the link is
// not recognized (blank, or a scheme other than http/https/magnet).
func DetectLinkType(link string) LinkType {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}
	lower := strings.ToLower(link)
	if strings.HasPrefix(lower, "magnet:") || strings.HasSuffix(lower, ".torrent") {
		return LinkTorrent
	}

	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return ""
	}
	if streamingHosts[strings.ToLower(u.Hostname())] {
		return LinkStreaming
	}
	return LinkDirectDownload
}

// Supports reports whether a back-end of this type accepts links of the given type
func (t ServiceType) Supports(link LinkType) bool {
	switch t {
	case ServiceMeTube:
		return link == LinkStreaming
	case ServiceYTDL:
		return link == LinkStreaming || link == LinkDirectDownload
	case ServiceTorrent:
		return link == LinkTorrent
	case ServiceJDownloader:
		return link == LinkDirectDownload || link == LinkStreaming
	default:
		return false
	}
}

// FilterCompatibleProfiles keeps the profiles able to handle link. An
// unrecognized link leaves the list untouched.
func FilterCompatibleProfiles(profiles []ServerProfile, link string) []ServerProfile {
	linkType := DetectLinkType(link)
	if linkType == "" {
		return profiles
	}
	compatible := make([]ServerProfile, 0, len(profiles))
	for _, p := range profiles {
		if p.ServiceType.Supports(linkType) {
			compatible = append(compatible, p)
		}
	}
	return compatible
}
