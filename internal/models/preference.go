// internal/models/preference.go
package models

import (
	"github.com/google/uuid"
)

// Preference keys currently in use.
const (
	PreferenceKeyWishlist = "wishlist"
	PreferenceKeyTheme    = "theme"
)

// UserPreference is a per-user key to JSON-encoded value row. The value is
// stored as the raw JSON text the client last wrote; readers must tolerate
// corrupt payloads and decode them to the empty/default value.
type UserPreference struct {
	BaseModel
	UserID uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_pref_user_key"`
	Key    string    `json:"key" gorm:"size:50;not null;uniqueIndex:idx_pref_user_key"`
	Value  string    `json:"value" gorm:"type:text;not null"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

func (UserPreference) TableName() string {
	return "user_preferences"
}
