package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	"github.com/mbayedev/partstore-api/internal/domain/enum"
	"github.com/mbayedev/partstore-api/internal/domain/pricing"
	"github.com/mbayedev/partstore-api/internal/domain/repository"
	"github.com/mbayedev/partstore-api/pkg/apperror"
	"github.com/mbayedev/partstore-api/pkg/pagination"
	"github.com/mbayedev/partstore-api/pkg/utils"
)

// PurchaseOrderService handles supplier orders. Stock and article buying
// prices only move at reception.
type PurchaseOrderService struct {
	orderRepo    repository.PurchaseOrderRepository
	articleRepo  repository.ArticleRepository
	taxRepo      repository.TaxRepository
	supplierRepo repository.SupplierRepository
	sequenceRepo repository.SequenceRepository
}

// NewPurchaseOrderService creates a new purchase order service
func NewPurchaseOrderService(
	orderRepo repository.PurchaseOrderRepository,
	articleRepo repository.ArticleRepository,
	taxRepo repository.TaxRepository,
	supplierRepo repository.SupplierRepository,
	sequenceRepo repository.SequenceRepository,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo:    orderRepo,
		articleRepo:  articleRepo,
		taxRepo:      taxRepo,
		supplierRepo: supplierRepo,
		sequenceRepo: sequenceRepo,
	}
}

// PurchaseOrderLineInput represents one ordered line. A nil UnitCost
// falls back to the article's current buying price.
type PurchaseOrderLineInput struct {
	ArticleID uuid.UUID
	Quantity  int64
	UnitCost  *decimal.Decimal
}

// PurchaseOrderInput represents the create/update purchase order input
type PurchaseOrderInput struct {
	UserID     uuid.UUID
	SupplierID uuid.UUID
	Items      []PurchaseOrderLineInput
	TaxIDs     []uuid.UUID
	OrderDate  *time.Time
	Notes      *string
}

type pricedPurchaseOrder struct {
	Items    []entity.PurchaseOrderItem
	SubTotal decimal.Decimal
	TaxTotal decimal.Decimal
	Total    decimal.Decimal
	TaxLines []pricing.TaxLine
}

// CreatePurchaseOrder prices and stores a draft supplier order
func (s *PurchaseOrderService) CreatePurchaseOrder(ctx context.Context, input *PurchaseOrderInput) (*entity.PurchaseOrder, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	priced, err := s.priceOrder(ctx, input.Items, input.TaxIDs)
	if err != nil {
		return nil, err
	}

	seq, err := s.sequenceRepo.Next(ctx, entity.SequencePurchaseOrder)
	if err != nil {
		return nil, err
	}

	orderDate := time.Now()
	if input.OrderDate != nil {
		orderDate = *input.OrderDate
	}

	order := &entity.PurchaseOrder{
		Reference:       utils.FormatSequence("PO", seq),
		SupplierID:      input.SupplierID,
		UserID:          input.UserID,
		Status:          enum.PurchaseOrderStatusDraft,
		PaymentProgress: enum.PaymentProgressPending,
		SubTotal:        priced.SubTotal,
		TaxTotal:        priced.TaxTotal,
		Total:           priced.Total,
		Paid:            decimal.Zero,
		Due:             priced.Total,
		OrderDate:       orderDate,
		Notes:           input.Notes,
		Items:           priced.Items,
	}

	if err := s.orderRepo.Create(ctx, order, s.taxSnapshots(priced)); err != nil {
		return nil, err
	}

	return s.GetPurchaseOrder(ctx, order.ID)
}

// GetPurchaseOrder retrieves a purchase order with its lines and tax snapshots
func (s *PurchaseOrderService) GetPurchaseOrder(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}

	taxes, err := s.taxRepo.ListDocumentTaxes(ctx, enum.DocumentKindPurchaseOrder, order.ID)
	if err != nil {
		return nil, err
	}
	order.Taxes = taxes

	return order, nil
}

// ListPurchaseOrders lists purchase orders with filtering
func (s *PurchaseOrderService) ListPurchaseOrders(ctx context.Context, params *repository.PurchaseOrderFilterParams) (*pagination.PaginatedResult[entity.PurchaseOrder], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// UpdatePurchaseOrder reprices a draft order with new lines
func (s *PurchaseOrderService) UpdatePurchaseOrder(ctx context.Context, id uuid.UUID, input *PurchaseOrderInput) (*entity.PurchaseOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}

	if order.Status != enum.PurchaseOrderStatusDraft {
		return nil, apperror.ErrInvalidTransition
	}

	priced, err := s.priceOrder(ctx, input.Items, input.TaxIDs)
	if err != nil {
		return nil, err
	}

	order.SubTotal = priced.SubTotal
	order.TaxTotal = priced.TaxTotal
	order.Total = priced.Total
	order.Due = priced.Total.Sub(order.Paid)
	order.Items = priced.Items
	for i := range order.Items {
		order.Items[i].PurchaseOrderID = order.ID
	}
	if input.OrderDate != nil {
		order.OrderDate = *input.OrderDate
	}
	if input.Notes != nil {
		order.Notes = input.Notes
	}

	if err := s.orderRepo.ReplaceItems(ctx, order, s.taxSnapshots(priced)); err != nil {
		return nil, err
	}

	return s.GetPurchaseOrder(ctx, order.ID)
}

// ValidatePurchaseOrder confirms a draft order with the supplier
func (s *PurchaseOrderService) ValidatePurchaseOrder(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	return s.transition(ctx, id, enum.PurchaseOrderStatusValidated, nil)
}

// ReceivePurchaseOrder marks a validated order as received: stock is
// incremented and article buying prices are refreshed from the order's
// unit costs.
func (s *PurchaseOrderService) ReceivePurchaseOrder(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	return s.transition(ctx, id, enum.PurchaseOrderStatusReceived, func(ctx context.Context, order *entity.PurchaseOrder) error {
		increments := make(map[uuid.UUID]int64, len(order.Items))
		buyingPrices := make(map[uuid.UUID]decimal.Decimal, len(order.Items))
		for _, item := range order.Items {
			increments[item.ArticleID] += item.Quantity
			buyingPrices[item.ArticleID] = item.UnitCost
		}

		if err := s.articleRepo.AtomicIncrementBatch(ctx, increments); err != nil {
			return err
		}
		if err := s.articleRepo.UpdateBuyingPriceBatch(ctx, buyingPrices); err != nil {
			return err
		}

		now := time.Now()
		order.ReceivedAt = &now
		return nil
	})
}

// CancelPurchaseOrder cancels a draft or validated order
func (s *PurchaseOrderService) CancelPurchaseOrder(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	return s.transition(ctx, id, enum.PurchaseOrderStatusCancelled, nil)
}

func (s *PurchaseOrderService) transition(ctx context.Context, id uuid.UUID, status enum.PurchaseOrderStatus, apply func(context.Context, *entity.PurchaseOrder) error) (*entity.PurchaseOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Purchase order")
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, apperror.ErrInvalidTransition
	}

	if apply != nil {
		if err := apply(ctx, order); err != nil {
			return nil, err
		}
	}

	order.Status = status
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// priceOrder resolves articles and computes the order amounts. Purchase
// lines carry no discounts; taxes follow the same snapshot rules as
// sales documents.
func (s *PurchaseOrderService) priceOrder(ctx context.Context, items []PurchaseOrderLineInput, taxIDs []uuid.UUID) (*pricedPurchaseOrder, error) {
	if len(items) == 0 {
		return nil, apperror.ErrEmptyCart
	}

	articleIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		if item.Quantity <= 0 {
			return nil, apperror.NewUnprocessableError("Quantity must be positive")
		}
		articleIDs[i] = item.ArticleID
	}

	articles, err := s.articleRepo.GetByIDs(ctx, articleIDs)
	if err != nil {
		return nil, err
	}
	articleMap := make(map[uuid.UUID]*entity.Article, len(articles))
	for i := range articles {
		articleMap[articles[i].ID] = &articles[i]
	}

	priced := &pricedPurchaseOrder{
		SubTotal: decimal.Zero,
		TaxTotal: decimal.Zero,
	}

	for _, item := range items {
		article, exists := articleMap[item.ArticleID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Article %s", item.ArticleID))
		}

		unitCost := article.BuyingPrice
		if item.UnitCost != nil {
			if item.UnitCost.IsNegative() {
				return nil, apperror.NewUnprocessableError("Unit cost cannot be negative")
			}
			unitCost = *item.UnitCost
		}

		lineTotal := unitCost.Mul(decimal.NewFromInt(item.Quantity))
		priced.SubTotal = priced.SubTotal.Add(lineTotal)

		priced.Items = append(priced.Items, entity.PurchaseOrderItem{
			ArticleID:   item.ArticleID,
			ArticleName: article.Name,
			UnitCost:    unitCost,
			Quantity:    item.Quantity,
			Total:       lineTotal,
		})
	}

	if len(taxIDs) > 0 {
		taxes, err := s.taxRepo.GetByIDs(ctx, taxIDs)
		if err != nil {
			return nil, err
		}
		if len(taxes) != len(uniqueIDs(taxIDs)) {
			return nil, apperror.NewNotFoundError("Tax")
		}

		pricingTaxes := make([]pricing.Tax, 0, len(taxes))
		for _, t := range taxes {
			if !t.IsActive {
				return nil, apperror.NewUnprocessableError(fmt.Sprintf("Tax %q is inactive", t.Name))
			}
			pricingTaxes = append(pricingTaxes, pricing.Tax{
				ID:   t.ID.String(),
				Name: t.Name,
				Type: t.Type,
				Rate: t.Rate,
			})
		}

		taxLines, err := pricing.TaxLines(priced.SubTotal, pricingTaxes)
		if err != nil {
			return nil, apperror.NewUnprocessableError(err.Error())
		}
		priced.TaxLines = taxLines
		priced.TaxTotal = pricing.TaxTotal(taxLines)
	}

	// The grand total is the sum of the rounded components, so the stored
	// amounts always add up.
	priced.SubTotal = pricing.Round(priced.SubTotal)
	priced.TaxTotal = pricing.Round(priced.TaxTotal)
	priced.Total = priced.SubTotal.Add(priced.TaxTotal)

	return priced, nil
}

func (s *PurchaseOrderService) taxSnapshots(priced *pricedPurchaseOrder) []entity.DocumentTax {
	snapshots := make([]entity.DocumentTax, 0, len(priced.TaxLines))
	for _, tl := range priced.TaxLines {
		var taxID *uuid.UUID
		if parsed, err := uuid.Parse(tl.TaxID); err == nil {
			id := parsed
			taxID = &id
		}
		snapshots = append(snapshots, entity.DocumentTax{
			DocumentKind: enum.DocumentKindPurchaseOrder,
			TaxID:        taxID,
			Name:         tl.Name,
			Type:         tl.Type,
			Rate:         tl.Rate,
			Amount:       tl.Amount,
		})
	}
	return snapshots
}
