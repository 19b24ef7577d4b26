package app

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/yourusername/shareconnect-go/internal/domain"
)

// ProfileManager stores server profiles and the default-profile pointer in
// the settings repository. The whole collection is rewritten on every
// change, in a single transaction together with the pointer.
type ProfileManager struct {
	repo domain.SettingsRepository
	mu   sync.Mutex
}

// NewProfileManager creates a new profile manager
func NewProfileManager(repo domain.SettingsRepository) *ProfileManager {
	return &ProfileManager{repo: repo}
}

// List returns every profile in insertion order
func (pm *ProfileManager) List() ([]domain.ServerProfile, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.load()
}

// Add appends a profile, assigning an id and the default service type when
// they are missing. The assigned values are written back into profile.
func (pm *ProfileManager) Add(profile *domain.ServerProfile) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if profile.ServiceType == "" {
		profile.ServiceType = domain.ServiceMeTube
	}

	profiles, err := pm.load()
	if err != nil {
		return err
	}
	return pm.save(append(profiles, *profile), nil)
}

// Update replaces the profile with the same id. Unknown ids are ignored.
func (pm *ProfileManager) Update(profile domain.ServerProfile) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	profiles, err := pm.load()
	if err != nil {
		return err
	}

	for i := range profiles {
		if profiles[i].ID == profile.ID {
			profiles[i] = profile
			return pm.save(profiles, nil)
		}
	}
	return nil
}

// Delete removes the profile with the same id, clearing the default pointer
// when it named that profile
func (pm *ProfileManager) Delete(profile domain.ServerProfile) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	profiles, err := pm.load()
	if err != nil {
		return err
	}

	kept := make([]domain.ServerProfile, 0, len(profiles))
	for _, p := range profiles {
		if p.ID != profile.ID {
			kept = append(kept, p)
		}
	}

	defaultID, err := pm.defaultID()
	if err != nil {
		return err
	}
	var newDefault *string
	if defaultID != "" && defaultID == profile.ID {
		cleared := ""
		newDefault = &cleared
	}
	return pm.save(kept, newDefault)
}

// Get returns the profile with the given id
func (pm *ProfileManager) Get(id string) (*domain.ServerProfile, error) {
	profiles, err := pm.List()
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		if profiles[i].ID == id {
			return &profiles[i], nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

// GetDefault returns the profile named by the default pointer, falling back
// to the first profile. It returns nil when no profile exists.
func (pm *ProfileManager) GetDefault() (*domain.ServerProfile, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	profiles, err := pm.load()
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, nil
	}

	defaultID, err := pm.defaultID()
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		if profiles[i].ID == defaultID {
			return &profiles[i], nil
		}
	}
	return &profiles[0], nil
}

// SetDefault stores the profile id as the default. The id is not checked
// against the collection; a dangling pointer reads as no default.
func (pm *ProfileManager) SetDefault(profile domain.ServerProfile) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if err := pm.repo.PutSettings(map[string]string{domain.SettingDefaultProfile: profile.ID}); err != nil {
		return fmt.Errorf("failed to save default profile: %w", err)
	}
	return nil
}

// DefaultID returns the explicit default pointer, empty when unset
func (pm *ProfileManager) DefaultID() (string, error) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.defaultID()
}

// FilterByServiceType returns the profiles of one service type
func (pm *ProfileManager) FilterByServiceType(serviceType domain.ServiceType) ([]domain.ServerProfile, error) {
	profiles, err := pm.List()
	if err != nil {
		return nil, err
	}

	filtered := []domain.ServerProfile{}
	for _, p := range profiles {
		if p.ServiceType == serviceType {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// AllServiceTypes returns the distinct service types in first-seen order
func (pm *ProfileManager) AllServiceTypes() ([]domain.ServiceType, error) {
	profiles, err := pm.List()
	if err != nil {
		return nil, err
	}

	seen := make(map[domain.ServiceType]bool)
	types := []domain.ServiceType{}
	for _, p := range profiles {
		if !seen[p.ServiceType] {
			seen[p.ServiceType] = true
			types = append(types, p.ServiceType)
		}
	}
	return types, nil
}

// AllTorrentClientTypes returns the distinct clients of torrent profiles in
// first-seen order
func (pm *ProfileManager) AllTorrentClientTypes() ([]domain.TorrentClientType, error) {
	profiles, err := pm.List()
	if err != nil {
		return nil, err
	}

	seen := make(map[domain.TorrentClientType]bool)
	clients := []domain.TorrentClientType{}
	for _, p := range profiles {
		if !p.IsTorrent() || p.TorrentClientType == "" {
			continue
		}
		if !seen[p.TorrentClientType] {
			seen[p.TorrentClientType] = true
			clients = append(clients, p.TorrentClientType)
		}
	}
	return clients, nil
}

func (pm *ProfileManager) load() ([]domain.ServerProfile, error) {
	raw, ok, err := pm.repo.GetSetting(domain.SettingProfiles)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	profiles := []domain.ServerProfile{}
	if !ok || raw == "" {
		return profiles, nil
	}
	if err := json.Unmarshal([]byte(raw), &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}
	return profiles, nil
}

func (pm *ProfileManager) defaultID() (string, error) {
	id, _, err := pm.repo.GetSetting(domain.SettingDefaultProfile)
	if err != nil {
		return "", fmt.Errorf("failed to load default profile: %w", err)
	}
	return id, nil
}

// save writes the collection and, when non-nil, the default pointer together
func (pm *ProfileManager) save(profiles []domain.ServerProfile, defaultID *string) error {
	data, err := json.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("failed to encode profiles: %w", err)
	}

	values := map[string]string{domain.SettingProfiles: string(data)}
	if defaultID != nil {
		values[domain.SettingDefaultProfile] = *defaultID
	}
	if err := pm.repo.PutSettings(values); err != nil {
		return fmt.Errorf("failed to save profiles: %w", err)
	}
	return nil
}
