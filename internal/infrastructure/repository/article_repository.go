package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	domainRepo "github.com/mbayedev/partstore-api/internal/domain/repository"
	"github.com/mbayedev/partstore-api/pkg/pagination"
)

type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *gorm.DB) domainRepo.ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(ctx context.Context, article *entity.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

func (r *articleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Article, error) {
	var article entity.Article
	err := r.db.WithContext(ctx).
		Preload("Category").
		First(&article, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &article, err
}

// GetByIDs retrieves multiple articles by their IDs in a single query
func (r *articleRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Article, error) {
	if len(ids) == 0 {
		return []entity.Article{}, nil
	}
	var articles []entity.Article
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&articles).Error
	return articles, err
}

func (r *articleRepository) GetByBarcode(ctx context.Context, barcode string) (*entity.Article, error) {
	var article entity.Article
	err := r.db.WithContext(ctx).First(&article, "barcode = ?", barcode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &article, err
}

func (r *articleRepository) Update(ctx context.Context, article *entity.Article) error {
	return r.db.WithContext(ctx).Save(article).Error
}

func (r *articleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Article{}, "id = ?", id).Error
}

func (r *articleRepository) List(ctx context.Context, params *domainRepo.ArticleFilterParams) ([]entity.Article, int64, error) {
	var articles []entity.Article
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Article{})

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR barcode ILIKE ? OR reference ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}

	if params.LowStock {
		query = query.Where("alert_quantity > 0 AND quantity <= alert_quantity")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder != "" && (params.SortOrder == "ASC" || params.SortOrder == "asc") {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Category").
		Order(sortBy + " " + sortOrder).
		Find(&articles).Error

	return articles, total, err
}

// ListWithCursor returns articles using cursor-based pagination
func (r *articleRepository) ListWithCursor(ctx context.Context, params *domainRepo.ArticleCursorFilterParams) ([]entity.Article, error) {
	var articles []entity.Article

	params.Cursor.Validate()
	query := r.db.WithContext(ctx).Model(&entity.Article{})

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR barcode ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}

	if params.LowStock {
		query = query.Where("alert_quantity > 0 AND quantity <= alert_quantity")
	}

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Cursor.Direction == pagination.CursorDirectionNext {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	// Fetch limit+1 to detect hasMore
	err = query.Limit(params.Cursor.Limit + 1).
		Preload("Category").
		Order("created_at ASC, id ASC").
		Find(&articles).Error

	return articles, err
}

func (r *articleRepository) GetLowStock(ctx context.Context) ([]entity.Article, error) {
	var articles []entity.Article
	err := r.db.WithContext(ctx).
		Where("alert_quantity > 0 AND quantity <= alert_quantity").
		Preload("Category").
		Find(&articles).Error
	return articles, err
}

// AtomicDecrementBatch atomically decrements stock for multiple articles in a single transaction.
// If any article has insufficient stock, the entire transaction is rolled back.
func (r *articleRepository) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int64) ([]uuid.UUID, error) {
	if len(decrements) == 0 {
		return nil, nil
	}

	var failedIDs []uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, amount := range decrements {
			result := tx.Model(&entity.Article{}).
				Where("id = ? AND quantity >= ?", id, amount).
				Update("quantity", gorm.Expr("quantity - ?", amount))

			if result.Error != nil {
				return result.Error
			}

			if result.RowsAffected == 0 {
				failedIDs = append(failedIDs, id)
			}
		}

		// Any failed article rolls back the whole batch
		if len(failedIDs) > 0 {
			return gorm.ErrInvalidTransaction
		}

		return nil
	})

	// Rolled back on insufficient stock: report the IDs without the transaction error
	if err == gorm.ErrInvalidTransaction && len(failedIDs) > 0 {
		return failedIDs, nil
	}

	return failedIDs, err
}

// AtomicIncrementBatch atomically increments stock for multiple articles (cancellations, receptions).
func (r *articleRepository) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int64) error {
	if len(increments) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, amount := range increments {
			if err := tx.Model(&entity.Article{}).
				Where("id = ?", id).
				Update("quantity", gorm.Expr("quantity + ?", amount)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateBuyingPriceBatch refreshes buying prices after a purchase order reception.
func (r *articleRepository) UpdateBuyingPriceBatch(ctx context.Context, prices map[uuid.UUID]decimal.Decimal) error {
	if len(prices) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, price := range prices {
			if err := tx.Model(&entity.Article{}).
				Where("id = ?", id).
				Update("buying_price", price).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) domainRepo.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).First(&category, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Category{}, "id = ?", id).Error
}

func (r *categoryRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Category, int64, error) {
	var categories []entity.Category
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Category{})

	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&categories).Error

	return categories, total, err
}
