package service

import (
	"bytes"
	"context"
	"math"
	"sort"

	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxLineQuantity: предел количества в строке (колонка quantity типа integer).
const MaxLineQuantity = math.MaxInt32

type LineRequest struct {
	VariantID uuid.UUID
	Quantity  int
}

// ValidatedLine: строка заказа после проверки, с ценой на момент проверки.
type ValidatedLine struct {
	VariantID   uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	Price       decimal.Decimal
}

func (l ValidatedLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// NormalizeLines объединяет повторяющиеся варианты и сортирует строки по id варианта.
func NormalizeLines(in []LineRequest) ([]LineRequest, error) {
	if len(in) == 0 {
		return nil, invalidf("at least one item is required")
	}
	merged := make(map[uuid.UUID]int, len(in))
	for _, l := range in {
		if l.VariantID == uuid.Nil {
			return nil, invalidf("variant id is required")
		}
		if l.Quantity <= 0 {
			return nil, invalidf("quantity for variant %s must be > 0", l.VariantID)
		}
		if l.Quantity > MaxLineQuantity-merged[l.VariantID] {
			return nil, invalidf("quantity for variant %s exceeds %d", l.VariantID, MaxLineQuantity)
		}
		merged[l.VariantID] += l.Quantity
	}
	out := make([]LineRequest, 0, len(merged))
	for id, q := range merged {
		out = append(out, LineRequest{VariantID: id, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool { return bytes.Compare(out[i].VariantID[:], out[j].VariantID[:]) < 0 })
	return out, nil
}

type StockValidator struct {
	variants repository.VariantRepo
}

func NewStockValidator(variants repository.VariantRepo) *StockValidator {
	return &StockValidator{variants: variants}
}

// Validate проверяет все строки за один запрос и собирает все проблемы сразу.
// Отсутствующие варианты важнее нехватки остатка.
func (v *StockValidator) Validate(ctx context.Context, lines []LineRequest) ([]ValidatedLine, error) {
	if len(lines) == 0 {
		return nil, invalidf("at least one item is required")
	}

	ids := make([]uuid.UUID, len(lines))
	for i, l := range lines {
		ids[i] = l.VariantID
	}

	rows, err := v.variants.BatchGetStock(ctx, ids)
	if err != nil {
		return nil, &LookupError{Op: "variants", Err: err}
	}
	byID := make(map[uuid.UUID]repository.StockRow, len(rows))
	for _, r := range rows {
		byID[r.VariantID] = r
	}

	var (
		missing   []uuid.UUID
		shortfall []StockShortfall
		out       = make([]ValidatedLine, 0, len(lines))
	)
	for _, l := range lines {
		row, ok := byID[l.VariantID]
		if !ok || !row.Active {
			missing = append(missing, l.VariantID)
			continue
		}
		if row.Stock < l.Quantity {
			shortfall = append(shortfall, StockShortfall{
				VariantID:   l.VariantID,
				ProductName: row.ProductName,
				Requested:   l.Quantity,
				Available:   row.Stock,
			})
			continue
		}
		out = append(out, ValidatedLine{
			VariantID:   l.VariantID,
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Quantity:    l.Quantity,
			Price:       row.Price,
		})
	}

	if len(missing) > 0 {
		return nil, &ProductNotFoundError{VariantIDs: missing}
	}
	if len(shortfall) > 0 {
		return nil, &InsufficientStockError{Lines: shortfall}
	}
	return out, nil
}
