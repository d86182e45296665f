package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	"github.com/mbayedev/partstore-api/internal/domain/repository"
	"github.com/mbayedev/partstore-api/pkg/apperror"
	"github.com/mbayedev/partstore-api/pkg/pagination"
	"github.com/mbayedev/partstore-api/pkg/utils"
)

// ClientService handles client operations
type ClientService struct {
	clientRepo  repository.ClientRepository
	phoneRegion string
}

// NewClientService creates a new client service
func NewClientService(clientRepo repository.ClientRepository, phoneRegion string) *ClientService {
	return &ClientService{
		clientRepo:  clientRepo,
		phoneRegion: phoneRegion,
	}
}

// ClientInput represents the create/update client input
type ClientInput struct {
	Name      string
	Phone     *string
	Email     *string
	Address   *string
	TaxNumber *string
	Notes     *string
}

// CreateClient creates a new client. Phone numbers are normalized to E.164.
func (s *ClientService) CreateClient(ctx context.Context, input *ClientInput) (*entity.Client, error) {
	phone := s.normalizePhone(input.Phone)

	if phone != nil {
		existing, err := s.clientRepo.GetByPhone(ctx, *phone)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("A client with this phone number already exists")
		}
	}

	client := &entity.Client{
		Name:      input.Name,
		Phone:     phone,
		Email:     input.Email,
		Address:   input.Address,
		TaxNumber: input.TaxNumber,
		Notes:     input.Notes,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// GetClient retrieves a client by ID
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// UpdateClient updates a client
func (s *ClientService) UpdateClient(ctx context.Context, id uuid.UUID, input *ClientInput) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}

	if input.Name != "" {
		client.Name = input.Name
	}
	if input.Phone != nil {
		client.Phone = s.normalizePhone(input.Phone)
	}
	if input.Email != nil {
		client.Email = input.Email
	}
	if input.Address != nil {
		client.Address = input.Address
	}
	if input.TaxNumber != nil {
		client.TaxNumber = input.TaxNumber
	}
	if input.Notes != nil {
		client.Notes = input.Notes
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// DeleteClient soft deletes a client
func (s *ClientService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if client == nil {
		return apperror.NewNotFoundError("Client")
	}
	return s.clientRepo.Delete(ctx, id)
}

// ListClients lists clients with search
func (s *ClientService) ListClients(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Client], error) {
	clients, total, err := s.clientRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(clients, pag), nil
}

func (s *ClientService) normalizePhone(phone *string) *string {
	if phone == nil || *phone == "" {
		return nil
	}
	normalized := utils.NormalizePhone(*phone, s.phoneRegion)
	return &normalized
}
