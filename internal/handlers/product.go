// internal/handlers/product.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/trendora/storefront-api/internal/i18n"
	"github.com/trendora/storefront-api/internal/services"
	"github.com/trendora/storefront-api/internal/utils"
)

type ProductHandler struct {
	catalogService   *services.CatalogService
	recommendService *services.RecommendService
	reviewService    *services.ReviewService
}

func NewProductHandler(catalogService *services.CatalogService, recommendService *services.RecommendService, reviewService *services.ReviewService) *ProductHandler {
	return &ProductHandler{
		catalogService:   catalogService,
		recommendService: recommendService,
		reviewService:    reviewService,
	}
}

// GET /products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	filter := services.ProductFilter{
		Search: c.Query("search"),
		SortBy: c.Query("sort"),
	}

	if categoryStr := c.Query("category_id"); categoryStr != "" {
		if categoryID, err := uuid.Parse(categoryStr); err == nil {
			filter.CategoryID = &categoryID
		}
	}
	if minStr := c.Query("price_min"); minStr != "" {
		if min, err := strconv.ParseFloat(minStr, 64); err == nil {
			filter.PriceMin = &min
		}
	}
	if maxStr := c.Query("price_max"); maxStr != "" {
		if max, err := strconv.ParseFloat(maxStr, 64); err == nil {
			filter.PriceMax = &max
		}
	}

	products, err := h.catalogService.ListProducts(filter)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "product ID"), nil)
		return
	}

	product, err := h.catalogService.GetProduct(productID)
	if err != nil {
		utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyProductNotFound))
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
	})
}

// GET /products/flash-sale
func (h *ProductHandler) GetFlashSaleProducts(c *gin.Context) {
	limit := 10
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 50 {
			limit = parsed
		}
	}

	products, err := h.catalogService.GetFlashSaleProducts(limit)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"products": products,
	})
}

// GET /categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.GetCategories()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"categories": categories,
	})
}

// POST /products/recommend
func (h *ProductHandler) Recommend(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req struct {
		Query string `json:"query" validate:"required,min=1,max=500"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	result, err := h.recommendService.RecommendForQuery(req.Query, services.DefaultRecommendLimit)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, result)
}

// GET /products/:id/reviews
func (h *ProductHandler) GetProductReviews(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "product ID"), nil)
		return
	}

	params := utils.GetPaginationParams(c)
	reviews, total, err := h.reviewService.GetProductReviews(productID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(reviews, total, params)
	utils.PaginatedResponse(c, result)
}
