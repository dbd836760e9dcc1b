// internal/services/preference_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trendora/storefront-api/internal/config"
	"github.com/trendora/storefront-api/internal/models"
)

// PreferenceService keeps per-user view state (wishlist ids, theme) as
// key→JSON rows. Values round-trip as raw JSON on every mutation; a corrupt
// stored value is never an error, it decodes to the empty/default value.
type PreferenceService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewPreferenceService(db *gorm.DB, cfg *config.Config) *PreferenceService {
	return &PreferenceService{db: db, cfg: cfg}
}

// GetWishlist returns the user's wishlist product ids. Missing or
// unparsable stored JSON yields an empty list.
func (s *PreferenceService) GetWishlist(userID uuid.UUID) ([]string, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	raw, err := s.getValue(userID, models.PreferenceKeyWishlist)
	if err != nil {
		return nil, err
	}
	return decodeWishlist(raw), nil
}

// ToggleWishlist removes the product id if present, appends it otherwise,
// and writes the whole array back.
func (s *PreferenceService) ToggleWishlist(userID uuid.UUID, productID string) ([]string, error) {
	if userID == uuid.Nil {
		return nil, ErrNotAuthenticated
	}

	raw, err := s.getValue(userID, models.PreferenceKeyWishlist)
	if err != nil {
		return nil, err
	}

	next := toggleWishlistID(decodeWishlist(raw), productID)

	if err := s.setValue(userID, models.PreferenceKeyWishlist, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *PreferenceService) ClearWishlist(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrNotAuthenticated
	}
	return s.setValue(userID, models.PreferenceKeyWishlist, []string{})
}

// GetTheme returns the user's stored theme, falling back to the configured
// default for missing or corrupt values.
func (s *PreferenceService) GetTheme(userID uuid.UUID) (models.Theme, error) {
	if userID == uuid.Nil {
		return "", ErrNotAuthenticated
	}

	raw, err := s.getValue(userID, models.PreferenceKeyTheme)
	if err != nil {
		return "", err
	}
	return decodeTheme(raw, s.DefaultTheme()), nil
}

// SetTheme is the sole theme mutation path and writes through immediately.
func (s *PreferenceService) SetTheme(userID uuid.UUID, theme models.Theme) error {
	if userID == uuid.Nil {
		return ErrNotAuthenticated
	}
	if !theme.Valid() {
		return fmt.Errorf("invalid theme %q", theme)
	}
	return s.setValue(userID, models.PreferenceKeyTheme, string(theme))
}

// DefaultTheme is what an unset or unreadable preference resolves to.
func (s *PreferenceService) DefaultTheme() models.Theme {
	theme := models.Theme(s.cfg.Store.DefaultTheme)
	if !theme.Valid() {
		return models.ThemeLight
	}
	return theme
}

// toggleWishlistID removes the id when present, appends it otherwise.
// Relative order of the remaining ids is preserved.
func toggleWishlistID(ids []string, productID string) []string {
	next := make([]string, 0, len(ids)+1)
	removed := false
	for _, id := range ids {
		if id == productID {
			removed = true
			continue
		}
		next = append(next, id)
	}
	if !removed {
		next = append(next, productID)
	}
	return next
}

func decodeWishlist(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil || ids == nil {
		return []string{}
	}
	return ids
}

func decodeTheme(raw string, fallback models.Theme) models.Theme {
	if raw == "" {
		return fallback
	}
	var theme models.Theme
	if err := json.Unmarshal([]byte(raw), &theme); err != nil || !theme.Valid() {
		return fallback
	}
	return theme
}

// getValue returns the raw stored JSON, or "" when no row exists.
func (s *PreferenceService) getValue(userID uuid.UUID, key string) (string, error) {
	var pref models.UserPreference
	if err := s.db.Where("user_id = ? AND key = ?", userID, key).
		First(&pref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read preference %s: %w", key, err)
	}
	return pref.Value, nil
}

func (s *PreferenceService) setValue(userID uuid.UUID, key string, value interface{}) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode preference %s: %w", key, err)
	}

	var pref models.UserPreference
	err = s.db.Where("user_id = ? AND key = ?", userID, key).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		pref = models.UserPreference{
			UserID: userID,
			Key:    key,
			Value:  string(encoded),
		}
		if err := s.db.Create(&pref).Error; err != nil {
			return fmt.Errorf("failed to store preference %s: %w", key, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read preference %s: %w", key, err)
	}

	pref.Value = string(encoded)
	if err := s.db.Save(&pref).Error; err != nil {
		return fmt.Errorf("failed to store preference %s: %w", key, err)
	}
	return nil
}
