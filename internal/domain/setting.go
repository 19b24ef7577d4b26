package domain

import (
	"time"
)

// Setting is one key-value row of durable application state
type Setting struct {
	Key       string    `json:"key" gorm:"primaryKey"`
	Value     string    `json:"value" gorm:"type:text"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Setting) TableName() string {
	return "settings"
}

// Keys under which the profile store persists its state
const (
	SettingProfiles       = "profiles"
	SettingDefaultProfile = "default_profile"
)
