package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/shareconnect-go/internal/app"
	"github.com/yourusername/shareconnect-go/internal/domain"
	"go.uber.org/zap"
)

// ProfileHandler handles server profile requests
type ProfileHandler struct {
	profiles *app.ProfileManager
	share    *app.ShareService
	logger   *zap.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profiles *app.ProfileManager, share *app.ShareService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		share:    share,
		logger:   logger,
	}
}

// ProfileResponse is a profile annotated with its default flag
type ProfileResponse struct {
	domain.ServerProfile
	IsDefault       bool   `json:"is_default"`
	ServiceTypeName string `json:"service_type_name"`
}

func (h *ProfileHandler) toResponses(profiles []domain.ServerProfile) ([]ProfileResponse, error) {
	defaultID, err := h.profiles.DefaultID()
	if err != nil {
		return nil, err
	}
	out := make([]ProfileResponse, len(profiles))
	for i, p := range profiles {
		out[i] = ProfileResponse{
			ServerProfile:   p,
			IsDefault:       defaultID != "" && p.ID == defaultID,
			ServiceTypeName: p.ServiceTypeName(),
		}
	}
	return out, nil
}

// ListProfiles handles GET /api/v1/profiles
func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	var (
		profiles []domain.ServerProfile
		err      error
	)
	if serviceType := c.Query("service_type"); serviceType != "" {
		profiles, err = h.profiles.FilterByServiceType(domain.ServiceType(serviceType))
	} else {
		profiles, err = h.profiles.List()
	}
	if err != nil {
		respondError(c, h.logger, "Failed to list profiles", err)
		return
	}

	resp, err := h.toResponses(profiles)
	if err != nil {
		respondError(c, h.logger, "Failed to list profiles", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProfile handles GET /api/v1/profiles/:id
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.Get(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "Failed to get profile", err)
		return
	}

	resp, err := h.toResponses([]domain.ServerProfile{*profile})
	if err != nil {
		respondError(c, h.logger, "Failed to get profile", err)
		return
	}
	c.JSON(http.StatusOK, resp[0])
}

// CreateProfile handles POST /api/v1/profiles
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var profile domain.ServerProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if profile.ServiceType == "" {
		profile.ServiceType = domain.ServiceMeTube
	}
	if err := profile.Validate(); err != nil {
		respondError(c, h.logger, "Invalid profile", err)
		return
	}

	if err := h.profiles.Add(&profile); err != nil {
		respondError(c, h.logger, "Failed to add profile", err)
		return
	}

	h.logger.Info("Profile created",
		zap.String("id", profile.ID),
		zap.String("name", profile.Name),
		zap.String("service_type", string(profile.ServiceType)))
	c.JSON(http.StatusCreated, profile)
}

// UpdateProfile handles PUT /api/v1/profiles/:id
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.profiles.Get(id); err != nil {
		respondError(c, h.logger, "Failed to update profile", err)
		return
	}

	var profile domain.ServerProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile.ID = id
	if err := profile.Validate(); err != nil {
		respondError(c, h.logger, "Invalid profile", err)
		return
	}

	if err := h.profiles.Update(profile); err != nil {
		respondError(c, h.logger, "Failed to update profile", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// DeleteProfile handles DELETE /api/v1/profiles/:id
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	profile, err := h.profiles.Get(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "Failed to delete profile", err)
		return
	}

	if err := h.profiles.Delete(*profile); err != nil {
		respondError(c, h.logger, "Failed to delete profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile deleted"})
}

// GetDefault handles GET /api/v1/profiles/default
func (h *ProfileHandler) GetDefault(c *gin.Context) {
	profile, err := h.profiles.GetDefault()
	if err != nil {
		respondError(c, h.logger, "Failed to get default profile", err)
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no profiles configured"})
		return
	}

	resp, err := h.toResponses([]domain.ServerProfile{*profile})
	if err != nil {
		respondError(c, h.logger, "Failed to get default profile", err)
		return
	}
	c.JSON(http.StatusOK, resp[0])
}

// SetDefault handles POST /api/v1/profiles/:id/default
func (h *ProfileHandler) SetDefault(c *gin.Context) {
	profile, err := h.profiles.Get(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "Failed to set default profile", err)
		return
	}

	if err := h.profiles.SetDefault(*profile); err != nil {
		respondError(c, h.logger, "Failed to set default profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "default profile set", "id": profile.ID})
}

// ServiceTypes handles GET /api/v1/profiles/service-types
func (h *ProfileHandler) ServiceTypes(c *gin.Context) {
	used, err := h.profiles.AllServiceTypes()
	if err != nil {
		respondError(c, h.logger, "Failed to list service types", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"service_types": used,
		"available":     domain.ServiceTypes,
	})
}

// TorrentClients handles GET /api/v1/profiles/torrent-clients
func (h *ProfileHandler) TorrentClients(c *gin.Context) {
	used, err := h.profiles.AllTorrentClientTypes()
	if err != nil {
		respondError(c, h.logger, "Failed to list torrent clients", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"torrent_clients": used,
		"available":       domain.TorrentClientTypes,
	})
}

// CompatibleProfiles handles GET /api/v1/profiles/compatible?url=
func (h *ProfileHandler) CompatibleProfiles(c *gin.Context) {
	link := c.Query("url")
	if link == "" {
		respondError(c, h.logger, "Invalid request", domain.ErrEmptyURL)
		return
	}

	profiles, err := h.share.CompatibleProfiles(link)
	if err != nil {
		respondError(c, h.logger, "Failed to list compatible profiles", err)
		return
	}

	resp, err := h.toResponses(profiles)
	if err != nil {
		respondError(c, h.logger, "Failed to list compatible profiles", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"link_type": domain.DetectLinkType(link),
		"profiles":  resp,
	})
}
