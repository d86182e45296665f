package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	domainRepo "github.com/mbayedev/partstore-api/internal/domain/repository"
	"github.com/mbayedev/partstore-api/pkg/pagination"
)

type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *gorm.DB) domainRepo.TicketRepository {
	return &ticketRepository{db: db}
}

// Create persists the ticket header, items and tax snapshots in one transaction.
func (r *ticketRepository) Create(ctx context.Context, ticket *entity.Ticket, taxes []entity.DocumentTax) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ticket).Error; err != nil {
			return err
		}
		for i := range taxes {
			taxes[i].DocumentID = ticket.ID
			if err := tx.Create(&taxes[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ticketRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := r.db.WithContext(ctx).
		Preload("Client").Preload("Items").Preload("Items.Article").
		First(&ticket, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ticket, err
}

func (r *ticketRepository) GetByReference(ctx context.Context, reference string) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := r.db.WithContext(ctx).
		Preload("Client").Preload("Items").
		First(&ticket, "reference = ?", reference).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ticket, err
}

func (r *ticketRepository) Update(ctx context.Context, ticket *entity.Ticket) error {
	return r.db.WithContext(ctx).Save(ticket).Error
}

func (r *ticketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Ticket{}, "id = ?", id).Error
}

func (r *ticketRepository) List(ctx context.Context, params *domainRepo.TicketFilterParams) ([]entity.Ticket, int64, error) {
	var tickets []entity.Ticket
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Ticket{})

	if params.Search != "" {
		query = query.Where("reference ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.ClientID != nil {
		query = query.Where("client_id = ?", *params.ClientID)
	}

	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

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
		Preload("Client").Preload("Items").
		Order(sortBy + " " + sortOrder).
		Find(&tickets).Error

	return tickets, total, err
}

// ListWithCursor returns tickets using cursor-based pagination
func (r *ticketRepository) ListWithCursor(ctx context.Context, params *domainRepo.TicketCursorFilterParams) ([]entity.Ticket, error) {
	var tickets []entity.Ticket

	params.Cursor.Validate()
	query := r.db.WithContext(ctx).Model(&entity.Ticket{})

	if params.Search != "" {
		query = query.Where("reference ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.ClientID != nil {
		query = query.Where("client_id = ?", *params.ClientID)
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
		Preload("Client").Preload("Items").
		Order("created_at ASC, id ASC").
		Find(&tickets).Error

	return tickets, err
}
