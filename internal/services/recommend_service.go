// internal/services/recommend_service.go
package services

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/trendora/storefront-api/internal/models"
)

const (
	DefaultRecommendLimit = 3

	// Shown when nothing in the catalog scores above zero.
	RecommendFallbackMessage = "I couldn't find a good match for that. Try a product name, a category, or a budget like \"shoes under 2000\"."
)

// Scoring weights for the keyword matcher.
const (
	scoreKeywordMatch = 2
	scoreFlashSale    = 1
	scoreHighRating   = 1
	scoreWithinBudget = 1
	scoreOverBudget   = -1
	highRatingFloor   = 4.0
	minKeywordLength  = 2 // tokens must be longer than this
)

var budgetPattern = regexp.MustCompile(`under\s+(\d+)`)

// RecommendResult is a ranked product list, or a fallback message when the
// query matched nothing.
type RecommendResult struct {
	Products []models.Product `json:"products"`
	Message  string           `json:"message,omitempty"`
}

type scoredProduct struct {
	product models.Product
	score   int
}

// Recommend ranks products against a free-text query. The heuristic is
// deterministic and stateless: same catalog and query always produce the
// same ranking. Ties keep catalog order.
func Recommend(products []models.Product, query string, limit int) RecommendResult {
	if limit <= 0 {
		limit = DefaultRecommendLimit
	}

	lowered := strings.ToLower(query)
	ceiling, hasCeiling := extractBudgetCeiling(lowered)
	keywords := extractKeywords(lowered)

	scored := make([]scoredProduct, 0, len(products))
	for _, p := range products {
		haystack := strings.ToLower(p.Name + " " + p.Description + " " + p.ShortDescription)

		score := 0
		for _, word := range keywords {
			if strings.Contains(haystack, word) {
				score += scoreKeywordMatch
			}
		}
		if p.IsFlashSale {
			score += scoreFlashSale
		}
		if p.Rating >= highRatingFloor {
			score += scoreHighRating
		}
		if hasCeiling {
			if p.EffectivePrice() <= ceiling {
				score += scoreWithinBudget
			} else {
				score += scoreOverBudget
			}
		}

		if score > 0 {
			scored = append(scored, scoredProduct{product: p, score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) == 0 {
		return RecommendResult{Products: []models.Product{}, Message: RecommendFallbackMessage}
	}

	if len(scored) > limit {
		scored = scored[:limit]
	}

	result := RecommendResult{Products: make([]models.Product, 0, len(scored))}
	for _, sp := range scored {
		result.Products = append(result.Products, sp.product)
	}
	return result
}

// extractBudgetCeiling pulls a budget upper bound out of phrases like
// "hoodie under 1000". Only the first match counts.
func extractBudgetCeiling(query string) (float64, bool) {
	match := budgetPattern.FindStringSubmatch(query)
	if match == nil {
		return 0, false
	}
	ceiling, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return float64(ceiling), true
}

func extractKeywords(query string) []string {
	fields := strings.Fields(query)
	keywords := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > minKeywordLength {
			keywords = append(keywords, f)
		}
	}
	return keywords
}

// RecommendService answers the storefront chat widget over the live catalog.
type RecommendService struct {
	db *gorm.DB
}

func NewRecommendService(db *gorm.DB) *RecommendService {
	return &RecommendService{db: db}
}

func (s *RecommendService) RecommendForQuery(query string, limit int) (RecommendResult, error) {
	var products []models.Product
	if err := s.db.Where("status = ?", models.ProductStatusActive).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return RecommendResult{}, err
	}
	return Recommend(products, query, limit), nil
}
