package app

import (
	"github.com/yourusername/shareconnect-go/internal/domain"
)

// HistoryService answers filtered history queries on top of the repository
type HistoryService struct {
	repo domain.HistoryRepository
}

// NewHistoryService creates a new history service
func NewHistoryService(repo domain.HistoryRepository) *HistoryService {
	return &HistoryService{repo: repo}
}

// List returns the items matching every non-empty field of filter, most
// recent first
func (h *HistoryService) List(filter domain.HistoryFilter) ([]*domain.HistoryItem, error) {
	return h.repo.ListMatching(filter)
}

// Get returns one item, nil when absent
func (h *HistoryService) Get(id uint) (*domain.HistoryItem, error) {
	return h.repo.FindByID(id)
}

// Filters returns the distinct values present in the history
func (h *HistoryService) Filters() (*domain.HistoryFilters, error) {
	providers, err := h.repo.DistinctServiceProviders()
	if err != nil {
		return nil, err
	}
	mediaTypes, err := h.repo.DistinctMediaTypes()
	if err != nil {
		return nil, err
	}
	serviceTypes, err := h.repo.DistinctServiceTypes()
	if err != nil {
		return nil, err
	}
	return &domain.HistoryFilters{
		ServiceProviders: providers,
		MediaTypes:       mediaTypes,
		ServiceTypes:     serviceTypes,
	}, nil
}

// Delete removes one item
func (h *HistoryService) Delete(id uint) error {
	return h.repo.Delete(id)
}

// Clear removes the items matching every non-empty field of filter, or
// everything when the filter is empty
func (h *HistoryService) Clear(filter domain.HistoryFilter) error {
	return h.repo.DeleteMatching(filter)
}
