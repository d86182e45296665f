package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mbayedev/partstore-api/internal/domain/entity"
	"github.com/mbayedev/partstore-api/internal/domain/enum"
	"github.com/mbayedev/partstore-api/internal/domain/pricing"
	"github.com/mbayedev/partstore-api/internal/domain/repository"
	"github.com/mbayedev/partstore-api/pkg/apperror"
)

// LineItemInput represents one requested document line. A nil UnitPrice
// falls back to the article's current selling price.
type LineItemInput struct {
	ArticleID     uuid.UUID
	Quantity      int64
	UnitPrice     *decimal.Decimal
	DiscountType  enum.DiscountType
	DiscountValue decimal.Decimal
}

type pricedLine struct {
	Article       *entity.Article
	UnitPrice     decimal.Decimal
	Quantity      int64
	DiscountType  enum.DiscountType
	DiscountValue decimal.Decimal
	Total         decimal.Decimal
}

type pricedDocument struct {
	Lines         []pricedLine
	SubTotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	TaxTotal      decimal.Decimal
	Total         decimal.Decimal
	TaxLines      []pricing.TaxLine
	ArticleMap    map[uuid.UUID]*entity.Article
}

// priceDocument resolves articles, applies discounts and taxes and returns
// the computed document amounts. Header amounts are rounded half-up to
// whole currency units; they are computed once here and frozen on the
// stored document.
func priceDocument(ctx context.Context, articleRepo repository.ArticleRepository, taxRepo repository.TaxRepository, items []LineItemInput, taxIDs []uuid.UUID) (*pricedDocument, error) {
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

	articles, err := articleRepo.GetByIDs(ctx, articleIDs)
	if err != nil {
		return nil, err
	}

	articleMap := make(map[uuid.UUID]*entity.Article, len(articles))
	for i := range articles {
		articleMap[articles[i].ID] = &articles[i]
	}

	doc := &pricedDocument{
		SubTotal:      decimal.Zero,
		DiscountTotal: decimal.Zero,
		TaxTotal:      decimal.Zero,
		Total:         decimal.Zero,
		ArticleMap:    articleMap,
	}

	lines := make([]pricing.Line, 0, len(items))
	for _, item := range items {
		article, exists := articleMap[item.ArticleID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Article %s", item.ArticleID))
		}

		unitPrice := article.SellingPrice
		if item.UnitPrice != nil {
			unitPrice = *item.UnitPrice
		}

		discountType := item.DiscountType
		if discountType == "" {
			discountType = enum.DiscountTypePercentage
		}
		if !discountType.IsValid() {
			return nil, apperror.NewUnprocessableError(fmt.Sprintf("Unknown discount type %q", discountType))
		}

		line := pricing.Line{
			UnitPrice:     unitPrice,
			Quantity:      item.Quantity,
			DiscountType:  discountType,
			DiscountValue: item.DiscountValue,
		}
		lines = append(lines, line)

		doc.Lines = append(doc.Lines, pricedLine{
			Article:       article,
			UnitPrice:     unitPrice,
			Quantity:      item.Quantity,
			DiscountType:  discountType,
			DiscountValue: item.DiscountValue,
			Total:         line.Total(),
		})
	}

	doc.SubTotal = pricing.Subtotal(lines)
	doc.DiscountTotal = pricing.DiscountTotal(lines)

	if len(taxIDs) > 0 {
		taxes, err := taxRepo.GetByIDs(ctx, taxIDs)
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

		taxLines, err := pricing.TaxLines(doc.SubTotal, pricingTaxes)
		if err != nil {
			return nil, apperror.NewUnprocessableError(err.Error())
		}
		doc.TaxLines = taxLines
		doc.TaxTotal = pricing.TaxTotal(taxLines)
	}

	// The grand total is the sum of the rounded components, so the stored
	// amounts always add up.
	doc.SubTotal = pricing.Round(doc.SubTotal)
	doc.DiscountTotal = pricing.Round(doc.DiscountTotal)
	doc.TaxTotal = pricing.Round(doc.TaxTotal)
	doc.Total = doc.SubTotal.Add(doc.TaxTotal)

	return doc, nil
}

// documentTaxSnapshots converts computed tax lines into stored snapshots.
func (d *pricedDocument) documentTaxSnapshots(kind enum.DocumentKind) []entity.DocumentTax {
	snapshots := make([]entity.DocumentTax, 0, len(d.TaxLines))
	for _, tl := range d.TaxLines {
		var taxID *uuid.UUID
		if parsed, err := uuid.Parse(tl.TaxID); err == nil {
			id := parsed
			taxID = &id
		}
		snapshots = append(snapshots, entity.DocumentTax{
			DocumentKind: kind,
			TaxID:        taxID,
			Name:         tl.Name,
			Type:         tl.Type,
			Rate:         tl.Rate,
			Amount:       tl.Amount,
		})
	}
	return snapshots
}

// stockDecrements builds the per-article quantity map for stock movement.
func (d *pricedDocument) stockDecrements() map[uuid.UUID]int64 {
	decrements := make(map[uuid.UUID]int64, len(d.Lines))
	for _, line := range d.Lines {
		decrements[line.Article.ID] += line.Quantity
	}
	return decrements
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// insufficientStockError builds the client-facing error naming the
// articles that could not be decremented.
func insufficientStockError(failedIDs []uuid.UUID, articleMap map[uuid.UUID]*entity.Article) error {
	var failedNames []string
	for _, id := range failedIDs {
		if article, exists := articleMap[id]; exists {
			failedNames = append(failedNames, article.Name)
		}
	}
	return apperror.NewUnprocessableError(fmt.Sprintf("Insufficient stock for: %v", failedNames))
}
