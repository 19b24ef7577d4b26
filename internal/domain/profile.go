package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// ServiceType represents the kind of back-end a profile targets
type ServiceType string

const (
	ServiceMeTube      ServiceType = "metube"      // MeTube web UI for yt-dlp
	ServiceYTDL        ServiceType = "ytdl"        // YT-DLP web service
	ServiceTorrent     ServiceType = "torrent"     // Torrent client, see TorrentClientType
	ServiceJDownloader ServiceType = "jdownloader" // jDownloader
)

// TorrentClientType represents the torrent client behind a torrent profile
type TorrentClientType string

const (
	TorrentQBittorrent  TorrentClientType = "qbittorrent"
	TorrentTransmission TorrentClientType = "transmission"
	TorrentUTorrent     TorrentClientType = "utorrent"
)

// ServiceTypes lists every supported service type
var ServiceTypes = []ServiceType{ServiceMeTube, ServiceYTDL, ServiceTorrent, ServiceJDownloader}

// TorrentClientTypes lists every supported torrent client
var TorrentClientTypes = []TorrentClientType{TorrentQBittorrent, TorrentTransmission, TorrentUTorrent}

// ServerProfile is a named configuration pointing at one download back-end
type ServerProfile struct {
	ID                string            `json:"id" yaml:"id,omitempty"`
	Name              string            `json:"name" yaml:"name"`
	Host              string            `json:"host" yaml:"host"` // includes the http:// or https:// scheme
	Port              int               `json:"port" yaml:"port"`
	ServiceType       ServiceType       `json:"service_type" yaml:"service_type"`
	TorrentClientType TorrentClientType `json:"torrent_client_type,omitempty" yaml:"torrent_client_type,omitempty"`
	Username          string            `json:"username,omitempty" yaml:"username,omitempty"`
	Password          string            `json:"password,omitempty" yaml:"password,omitempty"`
}

// BackendKey identifies one protocol adapter
type BackendKey struct {
	Service ServiceType
	Client  TorrentClientType
}

func (k BackendKey) String() string {
	if k.Client == "" {
		return string(k.Service)
	}
	return string(k.Service) + "+" + string(k.Client)
}

// Backend resolves the adapter key for the profile. Unknown service or
// client types yield an error whose text is suitable for a dispatch result.
func (p *ServerProfile) Backend() (BackendKey, error) {
	switch p.ServiceType {
	case ServiceMeTube, ServiceYTDL, ServiceJDownloader:
		return BackendKey{Service: p.ServiceType}, nil
	case ServiceTorrent:
		switch p.TorrentClientType {
		case TorrentQBittorrent, TorrentTransmission, TorrentUTorrent:
			return BackendKey{Service: ServiceTorrent, Client: p.TorrentClientType}, nil
		default:
			return BackendKey{}, fmt.Errorf("Unsupported torrent client: %s", p.TorrentClientType)
		}
	default:
		return BackendKey{}, fmt.Errorf("Unsupported service type: %s", p.ServiceType)
	}
}

// BaseURL returns "<host>:<port>" as the back-ends expect it
func (p *ServerProfile) BaseURL() string {
	return fmt.Sprintf("%s:%d", strings.TrimRight(p.Host, "/"), p.Port)
}

// HasCredentials reports whether a username is configured
func (p *ServerProfile) HasCredentials() bool {
	return p.Username != ""
}

// IsTorrent checks if the profile targets a torrent client
func (p *ServerProfile) IsTorrent() bool {
	return p.ServiceType == ServiceTorrent
}

// ServiceTypeName returns the display name of the profile's back-end
func (p *ServerProfile) ServiceTypeName() string {
	switch p.ServiceType {
	case ServiceMeTube:
		return "MeTube"
	case ServiceYTDL:
		return "YT-DLP"
	case ServiceTorrent:
		return "Torrent (" + p.TorrentClientName() + ")"
	case ServiceJDownloader:
		return "jDownloader"
	default:
		return "Unknown"
	}
}

// TorrentClientName returns the display name of the torrent client
func (p *ServerProfile) TorrentClientName() string {
	switch p.TorrentClientType {
	case "":
		return "Unknown"
	case TorrentQBittorrent:
		return "qBittorrent"
	case TorrentTransmission:
		return "Transmission"
	case TorrentUTorrent:
		return "uTorrent"
	default:
		return string(p.TorrentClientType)
	}
}

// Validate checks the fields a profile editor must reject before saving
func (p *ServerProfile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Message: "profile name is required"}
	}
	if strings.TrimSpace(p.Host) == "" {
		return &ValidationError{Field: "host", Message: "server URL is required"}
	}
	u, err := url.Parse(p.Host)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ValidationError{Field: "host", Message: "server URL must start with http:// or https://"}
	}
	if p.Port < 1 || p.Port > 65535 {
		return &ValidationError{Field: "port", Message: fmt.Sprintf("port must be between 1 and 65535, got %d", p.Port)}
	}
	if !ValidateServiceType(p.ServiceType) {
		return &ValidationError{Field: "service_type", Message: fmt.Sprintf("unknown service type: %s", p.ServiceType)}
	}
	if p.ServiceType == ServiceTorrent && !ValidateTorrentClientType(p.TorrentClientType) {
		return &ValidationError{Field: "torrent_client_type", Message: fmt.Sprintf("unknown torrent client: %q", p.TorrentClientType)}
	}
	return nil
}

// ValidateServiceType checks if a service type is known
func ValidateServiceType(t ServiceType) bool {
	for _, known := range ServiceTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ValidateTorrentClientType checks if a torrent client type is known
func ValidateTorrentClientType(t TorrentClientType) bool {
	for _, known := range TorrentClientTypes {
		if t == known {
			return true
		}
	}
	return false
}
