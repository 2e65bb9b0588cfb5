package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidInput    = errors.New("invalid input")

	ErrLookup            = errors.New("lookup failed")
	ErrWrite             = errors.New("write failed")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrStockConflict     = errors.New("stock conflict")

	ErrOrderNotFound    = errors.New("order not found")
	ErrVariantNotFound  = errors.New("variant not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrPartnerNotFound  = errors.New("partner not found")
	ErrSlugTaken        = errors.New("slug already taken")
	ErrInvalidStatus    = errors.New("invalid order status")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrProductHasOrders = errors.New("product has orders; deactivate it instead")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// LookupError: ошибка чтения из хранилища; клиенту можно повторить запрос.
type LookupError struct {
	Op  string
	Err error
}

func (e *LookupError) Error() string   { return fmt.Sprintf("lookup %s: %v", e.Op, e.Err) }
func (e *LookupError) Unwrap() []error { return []error{ErrLookup, e.Err} }

// WriteError: ошибка записи на любом шаге оформления или администрирования.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string   { return fmt.Sprintf("write %s: %v", e.Op, e.Err) }
func (e *WriteError) Unwrap() []error { return []error{ErrWrite, e.Err} }

// ProductNotFoundError: все запрошенные варианты, которых нет или которые нельзя купить.
type ProductNotFoundError struct {
	VariantIDs []uuid.UUID
}

func (e *ProductNotFoundError) Error() string {
	ids := make([]string, len(e.VariantIDs))
	for i, id := range e.VariantIDs {
		ids[i] = id.String()
	}
	return "products not found: " + strings.Join(ids, ", ")
}

func (e *ProductNotFoundError) Is(target error) bool { return target == ErrProductNotFound }

type StockShortfall struct {
	VariantID   uuid.UUID
	ProductName string
	Requested   int
	Available   int
}

func (s StockShortfall) Missing() int { return s.Requested - s.Available }

// InsufficientStockError: все строки, где запрошено больше, чем есть на складе.
type InsufficientStockError struct {
	Lines []StockShortfall
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, len(e.Lines))
	for i, l := range e.Lines {
		parts[i] = fmt.Sprintf("%s (%s): requested %d, available %d", l.ProductName, l.VariantID, l.Requested, l.Available)
	}
	return "insufficient stock: " + strings.Join(parts, "; ")
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// StockConflictError: остаток изменился между проверкой и списанием.
type StockConflictError struct {
	VariantID uuid.UUID
	Requested int
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("stock conflict for variant %s: %d units no longer available", e.VariantID, e.Requested)
}

func (e *StockConflictError) Is(target error) bool { return target == ErrStockConflict }
