package infrastructure

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yourusername/shareconnect-go/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const historyOrder = "timestamp DESC, id DESC"

// SQLiteStore implements SettingsRepository and HistoryRepository using SQLite
type SQLiteStore struct {
	db *gorm.DB
}

// NewSQLiteStore opens (creating if needed) the database at dbPath
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&domain.Setting{}, &domain.HistoryItem{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteStore) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ============================================================================
// SettingsRepository implementation
// ============================================================================

// GetSetting returns the value stored under key
func (r *SQLiteStore) GetSetting(key string) (string, bool, error) {
	var setting domain.Setting
	err := r.db.Where("`key` = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return setting.Value, true, nil
}

// PutSettings upserts all values in one transaction
func (r *SQLiteStore) PutSettings(values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			setting := domain.Setting{Key: key, Value: value}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&setting).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// ============================================================================
// HistoryRepository implementation
// ============================================================================

// Insert stores a new history item. Any id on the item is discarded so the
// database assigns a fresh one.
func (r *SQLiteStore) Insert(item *domain.HistoryItem) error {
	item.ID = 0
	return r.db.Create(item).Error
}

// FindByID finds a history item by ID
// Returns nil if not found
func (r *SQLiteStore) FindByID(id uint) (*domain.HistoryItem, error) {
	var item domain.HistoryItem
	err := r.db.First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// ListAll returns every history item, most recent first
func (r *SQLiteStore) ListAll() ([]*domain.HistoryItem, error) {
	return r.list(r.db)
}

// ListByServiceProvider returns the items of one content provider
func (r *SQLiteStore) ListByServiceProvider(provider string) ([]*domain.HistoryItem, error) {
	return r.ListMatching(domain.HistoryFilter{ServiceProvider: provider})
}

// ListByMediaType returns the items of one media type
func (r *SQLiteStore) ListByMediaType(mediaType domain.MediaType) ([]*domain.HistoryItem, error) {
	return r.ListMatching(domain.HistoryFilter{MediaType: mediaType})
}

// ListByServiceType returns the items sent to one back-end type
func (r *SQLiteStore) ListByServiceType(serviceType string) ([]*domain.HistoryItem, error) {
	return r.ListMatching(domain.HistoryFilter{ServiceType: serviceType})
}

// ListByServiceProviderAndType returns the items matching provider and media type
func (r *SQLiteStore) ListByServiceProviderAndType(provider string, mediaType domain.MediaType) ([]*domain.HistoryItem, error) {
	return r.ListMatching(domain.HistoryFilter{ServiceProvider: provider, MediaType: mediaType})
}

// ListMatching returns the items matching every non-empty field of filter
func (r *SQLiteStore) ListMatching(filter domain.HistoryFilter) ([]*domain.HistoryItem, error) {
	return r.list(applyFilter(r.db, filter))
}

// applyFilter adds one condition per non-empty filter field
func applyFilter(query *gorm.DB, filter domain.HistoryFilter) *gorm.DB {
	if filter.ServiceProvider != "" {
		query = query.Where("service_provider = ?", filter.ServiceProvider)
	}
	if filter.MediaType != "" {
		query = query.Where("media_type = ?", filter.MediaType)
	}
	if filter.ServiceType != "" {
		query = query.Where("service_type = ?", filter.ServiceType)
	}
	return query
}

func (r *SQLiteStore) list(query *gorm.DB) ([]*domain.HistoryItem, error) {
	items := []*domain.HistoryItem{}
	err := query.Order(historyOrder).Find(&items).Error
	return items, err
}

// DistinctServiceProviders returns every provider present in the history
func (r *SQLiteStore) DistinctServiceProviders() ([]string, error) {
	return r.distinct("service_provider")
}

// DistinctMediaTypes returns every media type present in the history
func (r *SQLiteStore) DistinctMediaTypes() ([]domain.MediaType, error) {
	values, err := r.distinct("media_type")
	if err != nil {
		return nil, err
	}
	types := make([]domain.MediaType, len(values))
	for i, v := range values {
		types[i] = domain.MediaType(v)
	}
	return types, nil
}

// DistinctServiceTypes returns every back-end type present in the history
func (r *SQLiteStore) DistinctServiceTypes() ([]string, error) {
	return r.distinct("service_type")
}

func (r *SQLiteStore) distinct(column string) ([]string, error) {
	values := []string{}
	err := r.db.Model(&domain.HistoryItem{}).
		Distinct().
		Order(column + " ASC").
		Pluck(column, &values).Error
	return values, err
}

// Delete deletes a history item by ID
func (r *SQLiteStore) Delete(id uint) error {
	return r.db.Delete(&domain.HistoryItem{}, "id = ?", id).Error
}

// DeleteAll empties the history
func (r *SQLiteStore) DeleteAll() error {
	return r.DeleteMatching(domain.HistoryFilter{})
}

// DeleteByServiceProvider deletes the items of one content provider
func (r *SQLiteStore) DeleteByServiceProvider(provider string) error {
	return r.DeleteMatching(domain.HistoryFilter{ServiceProvider: provider})
}

// DeleteByMediaType deletes the items of one media type
func (r *SQLiteStore) DeleteByMediaType(mediaType domain.MediaType) error {
	return r.DeleteMatching(domain.HistoryFilter{MediaType: mediaType})
}

// DeleteByServiceType deletes the items sent to one back-end type
func (r *SQLiteStore) DeleteByServiceType(serviceType string) error {
	return r.DeleteMatching(domain.HistoryFilter{ServiceType: serviceType})
}

// DeleteMatching deletes the items matching every non-empty field of filter.
// An empty filter empties the history.
func (r *SQLiteStore) DeleteMatching(filter domain.HistoryFilter) error {
	query := r.db
	if filter.IsEmpty() {
		query = query.Session(&gorm.Session{AllowGlobalUpdate: true})
	}
	return applyFilter(query, filter).Delete(&domain.HistoryItem{}).Error
}
