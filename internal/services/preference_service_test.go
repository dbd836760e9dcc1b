// internal/services/preference_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trendora/storefront-api/internal/models"
)

func TestToggleWishlistIDAppendsWhenMissing(t *testing.T) {
	result := toggleWishlistID([]string{"p1", "p2"}, "p3")
	assert.Equal(t, []string{"p1", "p2", "p3"}, result)
}

func TestToggleWishlistIDRemovesWhenPresent(t *testing.T) {
	result := toggleWishlistID([]string{"p1", "p2", "p3"}, "p2")
	assert.Equal(t, []string{"p1", "p3"}, result)
}

func TestToggleWishlistIDRoundTrip(t *testing.T) {
	ids := []string{"p1"}
	ids = toggleWishlistID(ids, "p2")
	ids = toggleWishlistID(ids, "p2")
	assert.Equal(t, []string{"p1"}, ids)
}

func TestToggleWishlistIDOnEmptyList(t *testing.T) {
	result := toggleWishlistID([]string{}, "p1")
	assert.Equal(t, []string{"p1"}, result)
}

func TestToggleWishlistIDPreservesOrder(t *testing.T) {
	result := toggleWishlistID([]string{"p5", "p1", "p9", "p3"}, "p1")
	assert.Equal(t, []string{"p5", "p9", "p3"}, result)
}

func TestDecodeWishlist(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"no stored value", "", []string{}},
		{"valid list", `["p1","p2"]`, []string{"p1", "p2"}},
		{"empty list", `[]`, []string{}},
		{"corrupt json", `not json`, []string{}},
		{"truncated json", `["p1",`, []string{}},
		{"json null", `null`, []string{}},
		{"wrong type", `{"p1":true}`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeWishlist(tt.raw)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeTheme(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want models.Theme
	}{
		{"no stored value", "", models.ThemeLight},
		{"valid dark", `"dark"`, models.ThemeDark},
		{"valid light", `"light"`, models.ThemeLight},
		{"unknown theme", `"banana"`, models.ThemeLight},
		{"corrupt json", `dark`, models.ThemeLight},
		{"wrong type", `42`, models.ThemeLight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeTheme(tt.raw, models.ThemeLight)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeThemeHonoursFallback(t *testing.T) {
	assert.Equal(t, models.ThemeDark, decodeTheme("", models.ThemeDark))
	assert.Equal(t, models.ThemeDark, decodeTheme(`"banana"`, models.ThemeDark))
}
