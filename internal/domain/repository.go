package domain

// SettingsRepository is a durable string key-value store
type SettingsRepository interface {
	// GetSetting returns the value stored under key and whether it exists
	GetSetting(key string) (string, bool, error)

	// PutSettings writes all values in a single transaction
	PutSettings(values map[string]string) error
}

// HistoryRepository defines the interface for dispatch history persistence
type HistoryRepository interface {
	// Insert assigns a new id and stores the item
	Insert(item *HistoryItem) error

	// FindByID finds a history item by ID, nil if absent
	FindByID(id uint) (*HistoryItem, error)

	// ListAll returns every item, most recent first
	ListAll() ([]*HistoryItem, error)

	ListByServiceProvider(provider string) ([]*HistoryItem, error)
	ListByMediaType(mediaType MediaType) ([]*HistoryItem, error)
	ListByServiceType(serviceType string) ([]*HistoryItem, error)
	ListByServiceProviderAndType(provider string, mediaType MediaType) ([]*HistoryItem, error)

	// ListMatching returns the items matching every non-empty filter field
	ListMatching(filter HistoryFilter) ([]*HistoryItem, error)

	DistinctServiceProviders() ([]string, error)
	DistinctMediaTypes() ([]MediaType, error)
	DistinctServiceTypes() ([]string, error)

	// Delete deletes a history item by ID
	Delete(id uint) error

	DeleteAll() error
	DeleteByServiceProvider(provider string) error
	DeleteByMediaType(mediaType MediaType) error
	DeleteByServiceType(serviceType string) error

	// DeleteMatching deletes the items matching every non-empty filter field;
	// an empty filter deletes everything
	DeleteMatching(filter HistoryFilter) error
}

// HistoryFilter selects a subset of the history. Empty fields match everything.
type HistoryFilter struct {
	ServiceProvider string
	MediaType       MediaType
	ServiceType     string
}

// IsEmpty reports whether the filter selects the whole history
func (f HistoryFilter) IsEmpty() bool {
	return f == HistoryFilter{}
}

// HistoryFilters holds the distinct values available for filtering
type HistoryFilters struct {
	ServiceProviders []string    `json:"service_providers"`
	MediaTypes       []MediaType `json:"media_types"`
	ServiceTypes     []string    `json:"service_types"`
}
