package service

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	"github.com/mbayedev/partstore-api/internal/domain/repository"
	"github.com/mbayedev/partstore-api/pkg/apperror"
	"github.com/mbayedev/partstore-api/pkg/pagination"
	"github.com/mbayedev/partstore-api/pkg/storage"
	"github.com/mbayedev/partstore-api/pkg/utils"
)

// ArticleService handles article and category operations
type ArticleService struct {
	articleRepo  repository.ArticleRepository
	categoryRepo repository.CategoryRepository
	images       *storage.ImageStore
}

// NewArticleService creates a new article service
func NewArticleService(articleRepo repository.ArticleRepository, categoryRepo repository.CategoryRepository, images *storage.ImageStore) *ArticleService {
	return &ArticleService{
		articleRepo:  articleRepo,
		categoryRepo: categoryRepo,
		images:       images,
	}
}

// CreateArticleInput represents the create article input
type CreateArticleInput struct {
	Name          string
	Barcode       string
	Reference     *string
	CategoryID    *uuid.UUID
	BuyingPrice   decimal.Decimal
	SellingPrice  decimal.Decimal
	Quantity      int64
	AlertQuantity int64
	Unit          *string
	Notes         *string
}

// CreateArticle creates a new article. A missing barcode is generated.
func (s *ArticleService) CreateArticle(ctx context.Context, input *CreateArticleInput) (*entity.Article, error) {
	if input.SellingPrice.IsNegative() || input.BuyingPrice.IsNegative() {
		return nil, apperror.NewUnprocessableError("Prices cannot be negative")
	}
	if input.Quantity < 0 {
		return nil, apperror.NewUnprocessableError("Quantity cannot be negative")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}

	barcode := input.Barcode
	if barcode == "" {
		barcode = utils.GenerateBarcode()
	} else {
		existing, err := s.articleRepo.GetByBarcode(ctx, barcode)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("An article with this barcode already exists")
		}
	}

	article := &entity.Article{
		Name:          input.Name,
		Barcode:       barcode,
		Reference:     input.Reference,
		CategoryID:    input.CategoryID,
		BuyingPrice:   input.BuyingPrice,
		SellingPrice:  input.SellingPrice,
		Quantity:      input.Quantity,
		AlertQuantity: input.AlertQuantity,
		Unit:          input.Unit,
		Notes:         input.Notes,
	}

	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

// GetArticle retrieves an article by ID
func (s *ArticleService) GetArticle(ctx context.Context, id uuid.UUID) (*entity.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, apperror.NewNotFoundError("Article")
	}
	return article, nil
}

// GetArticleByBarcode retrieves an article by barcode, for POS scanning
func (s *ArticleService) GetArticleByBarcode(ctx context.Context, barcode string) (*entity.Article, error) {
	article, err := s.articleRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, apperror.NewNotFoundError("Article")
	}
	return article, nil
}

// UpdateArticleInput represents the update article input
type UpdateArticleInput struct {
	Name          *string
	Reference     *string
	CategoryID    *uuid.UUID
	BuyingPrice   *decimal.Decimal
	SellingPrice  *decimal.Decimal
	AlertQuantity *int64
	Unit          *string
	Notes         *string
}

// UpdateArticle updates an article's mutable fields. Stock quantity moves
// only through sales, cancellations and receptions.
func (s *ArticleService) UpdateArticle(ctx context.Context, id uuid.UUID, input *UpdateArticleInput) (*entity.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, apperror.NewNotFoundError("Article")
	}

	if input.Name != nil {
		article.Name = *input.Name
	}
	if input.Reference != nil {
		article.Reference = input.Reference
	}
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
		article.CategoryID = input.CategoryID
	}
	if input.BuyingPrice != nil {
		if input.BuyingPrice.IsNegative() {
			return nil, apperror.NewUnprocessableError("Prices cannot be negative")
		}
		article.BuyingPrice = *input.BuyingPrice
	}
	if input.SellingPrice != nil {
		if input.SellingPrice.IsNegative() {
			return nil, apperror.NewUnprocessableError("Prices cannot be negative")
		}
		article.SellingPrice = *input.SellingPrice
	}
	if input.AlertQuantity != nil {
		article.AlertQuantity = *input.AlertQuantity
	}
	if input.Unit != nil {
		article.Unit = input.Unit
	}
	if input.Notes != nil {
		article.Notes = input.Notes
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

// UploadArticleImage stores the article photo and its thumbnail
func (s *ArticleService) UploadArticleImage(ctx context.Context, id uuid.UUID, file *multipart.FileHeader) (*entity.Article, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, apperror.NewNotFoundError("Article")
	}

	imageURL, thumbURL, err := s.images.SaveArticleImage(article.ID, file)
	if err != nil {
		return nil, apperror.NewUnprocessableError(err.Error())
	}

	article.Image = &imageURL
	if thumbURL != "" {
		article.Thumbnail = &thumbURL
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

// DeleteArticle soft deletes an article and removes its stored images
func (s *ArticleService) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if article == nil {
		return apperror.NewNotFoundError("Article")
	}

	s.images.DeleteArticleImage(article.ID)
	return s.articleRepo.Delete(ctx, id)
}

// ListArticles lists articles with filtering
func (s *ArticleService) ListArticles(ctx context.Context, params *repository.ArticleFilterParams) (*pagination.PaginatedResult[entity.Article], error) {
	articles, total, err := s.articleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(articles, pag), nil
}

// ListArticlesWithCursor lists articles with cursor-based pagination
func (s *ArticleService) ListArticlesWithCursor(ctx context.Context, params *repository.ArticleCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Article], error) {
	articles, err := s.articleRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(articles, params.Cursor.Limit,
		func(a entity.Article) string { return a.ID.String() },
		func(a entity.Article) time.Time { return a.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// GetLowStockArticles returns articles at or below their alert level
func (s *ArticleService) GetLowStockArticles(ctx context.Context) ([]entity.Article, error) {
	return s.articleRepo.GetLowStock(ctx)
}

// CreateCategory creates a new category
func (s *ArticleService) CreateCategory(ctx context.Context, name string) (*entity.Category, error) {
	existing, err := s.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A category with this name already exists")
	}

	category := &entity.Category{Name: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateCategory renames a category
func (s *ArticleService) UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	category.Name = name
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory soft deletes a category
func (s *ArticleService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}
	return s.categoryRepo.Delete(ctx, id)
}

// ListCategories lists categories
func (s *ArticleService) ListCategories(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Category], error) {
	categories, total, err := s.categoryRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(categories, pag), nil
}
