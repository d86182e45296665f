package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbayedev/partstore-api/internal/application/service"
	"github.com/mbayedev/partstore-api/internal/domain/repository"
	"github.com/mbayedev/partstore-api/internal/presentation/http/dto/response"
)

// ArticleHandler handles article and category HTTP requests
type ArticleHandler struct {
	articleService *service.ArticleService
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(articleService *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// List handles listing articles (page-based or cursor-based)
func (h *ArticleHandler) List(c *gin.Context) {
	if c.Query("cursor") != "" || c.Query("limit") != "" {
		h.listWithCursor(c)
		return
	}

	params := &repository.ArticleFilterParams{
		Pagination: parsePagination(c),
		Search:     c.Query("search"),
		CategoryID: parseUUIDQuery(c, "category_id"),
		LowStock:   c.Query("low_stock") == "true",
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	result, err := h.articleService.ListArticles(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Articles retrieved successfully", result)
}

func (h *ArticleHandler) listWithCursor(c *gin.Context) {
	params := &repository.ArticleCursorFilterParams{
		Cursor:     parseCursor(c),
		Search:     c.Query("search"),
		CategoryID: parseUUIDQuery(c, "category_id"),
		LowStock:   c.Query("low_stock") == "true",
	}

	result, err := h.articleService.ListArticlesWithCursor(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Articles retrieved successfully", result)
}

// Create handles creating an article
func (h *ArticleHandler) Create(c *gin.Context) {
	var req struct {
		Name          string          `json:"name" binding:"required"`
		Barcode       string          `json:"barcode"`
		Reference     *string         `json:"reference"`
		CategoryID    *uuid.UUID      `json:"category_id"`
		BuyingPrice   decimal.Decimal `json:"buying_price"`
		SellingPrice  decimal.Decimal `json:"selling_price" binding:"required"`
		Quantity      int64           `json:"quantity"`
		AlertQuantity int64           `json:"alert_quantity"`
		Unit          *string         `json:"unit"`
		Notes         *string         `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	article, err := h.articleService.CreateArticle(c.Request.Context(), &service.CreateArticleInput{
		Name:          req.Name,
		Barcode:       req.Barcode,
		Reference:     req.Reference,
		CategoryID:    req.CategoryID,
		BuyingPrice:   req.BuyingPrice,
		SellingPrice:  req.SellingPrice,
		Quantity:      req.Quantity,
		AlertQuantity: req.AlertQuantity,
		Unit:          req.Unit,
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Article created successfully", article)
}

// Get handles getting a single article
func (h *ArticleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid article ID")
		return
	}

	article, err := h.articleService.GetArticle(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Article retrieved successfully", article)
}

// GetByBarcode handles the POS barcode lookup
func (h *ArticleHandler) GetByBarcode(c *gin.Context) {
	barcode := c.Param("barcode")
	if barcode == "" {
		response.BadRequest(c, "Barcode is required")
		return
	}

	article, err := h.articleService.GetArticleByBarcode(c.Request.Context(), barcode)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Article retrieved successfully", article)
}

// Update handles updating an article
func (h *ArticleHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid article ID")
		return
	}

	var req struct {
		Name          *string          `json:"name"`
		Reference     *string          `json:"reference"`
		CategoryID    *uuid.UUID       `json:"category_id"`
		BuyingPrice   *decimal.Decimal `json:"buying_price"`
		SellingPrice  *decimal.Decimal `json:"selling_price"`
		AlertQuantity *int64           `json:"alert_quantity"`
		Unit          *string          `json:"unit"`
		Notes         *string          `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	article, err := h.articleService.UpdateArticle(c.Request.Context(), id, &service.UpdateArticleInput{
		Name:          req.Name,
		Reference:     req.Reference,
		CategoryID:    req.CategoryID,
		BuyingPrice:   req.BuyingPrice,
		SellingPrice:  req.SellingPrice,
		AlertQuantity: req.AlertQuantity,
		Unit:          req.Unit,
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Article updated successfully", article)
}

// UploadImage handles uploading an article photo
func (h *ArticleHandler) UploadImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid article ID")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "An image file is required")
		return
	}

	article, err := h.articleService.UploadArticleImage(c.Request.Context(), id, file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Image uploaded successfully", article)
}

// Delete handles deleting an article
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid article ID")
		return
	}

	if err := h.articleService.DeleteArticle(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Article deleted successfully", nil)
}

// LowStock handles listing articles at or below their alert level
func (h *ArticleHandler) LowStock(c *gin.Context) {
	articles, err := h.articleService.GetLowStockArticles(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock articles retrieved successfully", articles)
}

// ListCategories handles listing categories
func (h *ArticleHandler) ListCategories(c *gin.Context) {
	result, err := h.articleService.ListCategories(c.Request.Context(), parsePagination(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Categories retrieved successfully", result)
}

// CreateCategory handles creating a category
func (h *ArticleHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.articleService.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Category created successfully", category)
}

// UpdateCategory handles renaming a category
func (h *ArticleHandler) UpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	category, err := h.articleService.UpdateCategory(c.Request.Context(), id, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category updated successfully", category)
}

// DeleteCategory handles deleting a category
func (h *ArticleHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.articleService.DeleteCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category deleted successfully", nil)
}
