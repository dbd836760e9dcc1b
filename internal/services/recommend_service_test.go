// internal/services/recommend_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trendora/storefront-api/internal/models"
)

func recommendCatalog() []models.Product {
	return []models.Product{
		{Name: "Classic Hoodie", Description: "Warm cotton hoodie", Price: 899, Rating: 4.5},
		{Name: "Premium Hoodie", Description: "Heavyweight fleece hoodie", Price: 1500, Rating: 4.8},
		{Name: "Running Shoes", Description: "Lightweight trainers", Price: 1999, Rating: 4.0, IsFlashSale: true},
		{Name: "Leather Wallet", Description: "Slim bifold wallet", Price: 599, Rating: 3.5},
	}
}

func TestRecommendBudgetCeilingRanksAffordableFirst(t *testing.T) {
	result := Recommend(recommendCatalog(), "hoodie under 1000", 3)

	assert.Empty(t, result.Message)
	assert.NotEmpty(t, result.Products)

	// Both hoodies match the keyword, but only the 899 one fits the budget
	assert.Equal(t, "Classic Hoodie", result.Products[0].Name)
	assert.Equal(t, "Premium Hoodie", result.Products[1].Name)
}

func TestRecommendBudgetUsesEffectivePrice(t *testing.T) {
	discounted := floatPtr(799)
	catalog := []models.Product{
		{Name: "Sale Hoodie", Description: "hoodie", Price: 1500, DiscountPrice: discounted, Rating: 4.5},
		{Name: "Full Price Hoodie", Description: "hoodie", Price: 1200, Rating: 4.5},
	}

	result := Recommend(catalog, "hoodie under 1000", 3)

	assert.Equal(t, "Sale Hoodie", result.Products[0].Name)
}

func TestRecommendReturnsTopThreeByDefault(t *testing.T) {
	catalog := []models.Product{
		{Name: "Shirt One", Description: "shirt"},
		{Name: "Shirt Two", Description: "shirt"},
		{Name: "Shirt Three", Description: "shirt"},
		{Name: "Shirt Four", Description: "shirt"},
	}

	result := Recommend(catalog, "shirt", 0)
	assert.Len(t, result.Products, DefaultRecommendLimit)
}

func TestRecommendFallbackWhenNothingScores(t *testing.T) {
	catalog := []models.Product{
		{Name: "Leather Wallet", Description: "Slim bifold wallet", Price: 599, Rating: 3.5},
		{Name: "Desk Lamp", Description: "Adjustable LED lamp", Price: 1299, Rating: 3.9},
	}

	result := Recommend(catalog, "quantum flux capacitor", 3)

	assert.Empty(t, result.Products)
	assert.Equal(t, RecommendFallbackMessage, result.Message)
}

func TestRecommendBaselineSignalsApplyWithoutKeywordMatch(t *testing.T) {
	// Flash sale and rating boosts keep scoring even when no keyword hits,
	// so a nonsense query over a promoted catalog still returns products.
	result := Recommend(recommendCatalog(), "quantum flux capacitor", 3)

	assert.Empty(t, result.Message)
	assert.NotEmpty(t, result.Products)
}

func TestRecommendEmptyCatalogFallsBack(t *testing.T) {
	result := Recommend(nil, "hoodie", 3)

	assert.Empty(t, result.Products)
	assert.Equal(t, RecommendFallbackMessage, result.Message)
}

func TestRecommendShortTokensAreIgnored(t *testing.T) {
	catalog := []models.Product{
		{Name: "Leather Wallet", Description: "Slim bifold wallet", Price: 599, Rating: 3.5},
	}

	// Tokens of two characters or fewer never count as keywords
	result := Recommend(catalog, "a le", 3)

	assert.Empty(t, result.Products)
	assert.Equal(t, RecommendFallbackMessage, result.Message)
}

func TestRecommendFlashSaleAndRatingBoosts(t *testing.T) {
	catalog := []models.Product{
		{Name: "Plain Shoes", Description: "shoes", Rating: 3.0},
		{Name: "Flash Shoes", Description: "shoes", Rating: 3.0, IsFlashSale: true},
		{Name: "Top Rated Flash Shoes", Description: "shoes", Rating: 4.5, IsFlashSale: true},
	}

	result := Recommend(catalog, "shoes", 3)

	assert.Equal(t, "Top Rated Flash Shoes", result.Products[0].Name)
	assert.Equal(t, "Flash Shoes", result.Products[1].Name)
	assert.Equal(t, "Plain Shoes", result.Products[2].Name)
}

func TestRecommendIsDeterministic(t *testing.T) {
	catalog := recommendCatalog()

	first := Recommend(catalog, "hoodie under 1000", 3)
	for i := 0; i < 10; i++ {
		again := Recommend(catalog, "hoodie under 1000", 3)
		assert.Equal(t, first, again)
	}
}

func TestRecommendTiesKeepCatalogOrder(t *testing.T) {
	catalog := []models.Product{
		{Name: "Mug Alpha", Description: "mug"},
		{Name: "Mug Beta", Description: "mug"},
	}

	result := Recommend(catalog, "mug", 3)

	assert.Equal(t, "Mug Alpha", result.Products[0].Name)
	assert.Equal(t, "Mug Beta", result.Products[1].Name)
}

func TestExtractBudgetCeiling(t *testing.T) {
	ceiling, ok := extractBudgetCeiling("shoes under 2000")
	assert.True(t, ok)
	assert.Equal(t, 2000.0, ceiling)

	_, ok = extractBudgetCeiling("cheap shoes")
	assert.False(t, ok)

	// Only the first match counts
	ceiling, ok = extractBudgetCeiling("under 500 or under 900")
	assert.True(t, ok)
	assert.Equal(t, 500.0, ceiling)
}
