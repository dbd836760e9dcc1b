// internal/services/catalog_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/trendora/storefront-api/internal/models"
)

func testCatalog() []models.Product {
	electronics := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	apparel := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mk := func(name string, categoryID uuid.UUID, price float64, discount *float64, rating float64, age time.Duration) models.Product {
		p := models.Product{
			Name:          name,
			CategoryID:    &categoryID,
			Price:         price,
			DiscountPrice: discount,
			Rating:        rating,
		}
		p.CreatedAt = base.Add(-age)
		return p
	}

	return []models.Product{
		mk("Wireless Headphones", electronics, 2999, nil, 4.5, 72*time.Hour),
		mk("Budget Earbuds", electronics, 499, nil, 3.8, 48*time.Hour),
		mk("Cotton Hoodie", apparel, 1500, floatPtr(899), 4.2, 24*time.Hour),
		mk("Premium Hoodie", apparel, 2500, nil, 4.8, 96*time.Hour),
		mk("Running Shoes", apparel, 1999, nil, 4.0, 12*time.Hour),
	}
}

func TestFilterProductsSearchIsCaseInsensitiveSubstring(t *testing.T) {
	catalog := testCatalog()

	result := FilterProducts(catalog, ProductFilter{Search: "HOODIE"})

	assert.Len(t, result, 2)
	for _, p := range result {
		assert.Contains(t, p.Name, "Hoodie")
	}
}

func TestFilterProductsTrimsSearchWhitespace(t *testing.T) {
	catalog := testCatalog()

	result := FilterProducts(catalog, ProductFilter{Search: "  hoodie  "})
	assert.Len(t, result, 2)
}

func TestFilterProductsFiltersAreConjunctive(t *testing.T) {
	catalog := testCatalog()
	apparel := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	result := FilterProducts(catalog, ProductFilter{
		Search:     "hoodie",
		CategoryID: &apparel,
		PriceMax:   floatPtr(1000),
	})

	// Only the discounted hoodie passes all three filters
	assert.Len(t, result, 1)
	assert.Equal(t, "Cotton Hoodie", result[0].Name)
}

func TestFilterProductsPriceRangeUsesEffectivePrice(t *testing.T) {
	catalog := testCatalog()

	// Cotton Hoodie lists at 1500 but sells at 899
	result := FilterProducts(catalog, ProductFilter{
		PriceMin: floatPtr(800),
		PriceMax: floatPtr(900),
	})

	assert.Len(t, result, 1)
	assert.Equal(t, "Cotton Hoodie", result[0].Name)
}

func TestFilterProductsPriceRangeIsInclusive(t *testing.T) {
	catalog := testCatalog()

	result := FilterProducts(catalog, ProductFilter{
		PriceMin: floatPtr(899),
		PriceMax: floatPtr(899),
	})

	assert.Len(t, result, 1)
}

func TestFilterProductsEmptyFilterReturnsAll(t *testing.T) {
	catalog := testCatalog()

	result := FilterProducts(catalog, ProductFilter{})
	assert.Len(t, result, len(catalog))
}

func TestFilterProductsSortPriceLow(t *testing.T) {
	catalog := testCatalog()

	result := FilterProducts(catalog, ProductFilter{SortBy: SortPriceLow})

	for i := 1; i < len(result); i++ {
		assert.LessOrEqual(t, result[i-1].EffectivePrice(), result[i].EffectivePrice())
	}
}

func TestFilterProductsSortPriceHigh(t *testing.T) {
	catalog := testCatalog()

	result := FilterProducts(catalog, ProductFilter{SortBy: SortPriceHigh})

	for i := 1; i < len(result); i++ {
		assert.GreaterOrEqual(t, result[i-1].EffectivePrice(), result[i].EffectivePrice())
	}
}

func TestFilterProductsSortRating(t *testing.T) {
	catalog := testCatalog()

	result := FilterProducts(catalog, ProductFilter{SortBy: SortRating})

	assert.Equal(t, "Premium Hoodie", result[0].Name)
	for i := 1; i < len(result); i++ {
		assert.GreaterOrEqual(t, result[i-1].Rating, result[i].Rating)
	}
}

func TestFilterProductsDefaultSortNewestFirst(t *testing.T) {
	catalog := testCatalog()

	result := FilterProducts(catalog, ProductFilter{})

	assert.Equal(t, "Running Shoes", result[0].Name)
	for i := 1; i < len(result); i++ {
		assert.False(t, result[i].CreatedAt.After(result[i-1].CreatedAt))
	}
}

func TestFilterProductsStableSortKeepsCatalogOrderOnTies(t *testing.T) {
	tied := []models.Product{
		{Name: "First", Price: 100, Rating: 4.0},
		{Name: "Second", Price: 100, Rating: 4.0},
		{Name: "Third", Price: 100, Rating: 4.0},
	}

	result := FilterProducts(tied, ProductFilter{SortBy: SortPriceLow})

	assert.Equal(t, []string{"First", "Second", "Third"},
		[]string{result[0].Name, result[1].Name, result[2].Name})
}

func TestFilterProductsDoesNotMutateInput(t *testing.T) {
	catalog := testCatalog()
	originalFirst := catalog[0].Name

	FilterProducts(catalog, ProductFilter{SortBy: SortPriceLow})

	assert.Equal(t, originalFirst, catalog[0].Name)
}

func TestFilterProductsIsIdempotent(t *testing.T) {
	catalog := testCatalog()
	filter := ProductFilter{Search: "hoodie", SortBy: SortPriceLow}

	first := FilterProducts(catalog, filter)
	second := FilterProducts(catalog, filter)

	assert.Equal(t, first, second)
}
