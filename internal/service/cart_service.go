package service

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/cart"
	"storefront/internal/models"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CartService interface {
	GetCart(ctx context.Context) (*cart.Cart, error)
	AddItem(ctx context.Context, variantID uuid.UUID, qty int) (*cart.Cart, error)
	SetItemQuantity(ctx context.Context, variantID uuid.UUID, qty int) (*cart.Cart, error)
	RemoveItem(ctx context.Context, variantID uuid.UUID) (*cart.Cart, error)
	ClearCart(ctx context.Context) error
	Checkout(ctx context.Context, shipping ShippingInfo) (*PlacedOrder, error)
}

type cartService struct {
	repo     *repository.Repository
	store    *cart.Store
	checkout CheckoutService
	log      *zap.Logger
}

func NewCartService(repo *repository.Repository, store *cart.Store, checkout CheckoutService, log *zap.Logger) CartService {
	if log == nil {
		log = zap.NewNop()
	}
	return &cartService{repo: repo, store: store, checkout: checkout, log: log}
}

func ownerKey(id Identity) string { return id.UserID.String() }

func (s *cartService) GetCart(ctx context.Context) (*cart.Cart, error) {
	id, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.store.Get(ctx, ownerKey(id))
	if err != nil {
		return nil, &LookupError{Op: "cart", Err: err}
	}
	return c, nil
}

// stockFor возвращает строку остатка для покупаемого варианта.
func (s *cartService) stockFor(ctx context.Context, variantID uuid.UUID) (*repository.StockRow, error) {
	rows, err := s.repo.Variants.BatchGetStock(ctx, []uuid.UUID{variantID})
	if err != nil {
		return nil, &LookupError{Op: "variants", Err: err}
	}
	if len(rows) == 0 || !rows[0].Active {
		return nil, &ProductNotFoundError{VariantIDs: []uuid.UUID{variantID}}
	}
	return &rows[0], nil
}

func checkStock(row *repository.StockRow, want int) error {
	if want > row.Stock {
		return &InsufficientStockError{Lines: []StockShortfall{{
			VariantID:   row.VariantID,
			ProductName: row.ProductName,
			Requested:   want,
			Available:   row.Stock,
		}}}
	}
	return nil
}

func (s *cartService) AddItem(ctx context.Context, variantID uuid.UUID, qty int) (*cart.Cart, error) {
	id, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if qty <= 0 || qty > MaxLineQuantity {
		return nil, invalidf("quantity must be between 1 and %d", MaxLineQuantity)
	}

	row, err := s.stockFor(ctx, variantID)
	if err != nil {
		return nil, err
	}
	product, err := s.repo.Products.GetByID(ctx, row.ProductID)
	if err != nil {
		return nil, &LookupError{Op: "product", Err: err}
	}
	if product == nil {
		return nil, &ProductNotFoundError{VariantIDs: []uuid.UUID{variantID}}
	}

	c, err := s.store.Update(ctx, ownerKey(id), func(c *cart.Cart) error {
		if c.Quantity(variantID) > MaxLineQuantity-qty {
			return invalidf("quantity for variant %s exceeds %d", variantID, MaxLineQuantity)
		}
		if err := checkStock(row, c.Quantity(variantID)+qty); err != nil {
			return err
		}
		c.Add(cart.Line{
			VariantID:    variantID,
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductSlug:  product.Slug,
			VariantLabel: variantLabel(product.Variants, variantID),
			Image:        product.Images.First(""),
			Price:        row.Price,
			Quantity:     qty,
		})
		return nil
	})
	return c, s.storeErr(err)
}

func (s *cartService) SetItemQuantity(ctx context.Context, variantID uuid.UUID, qty int) (*cart.Cart, error) {
	id, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if qty < 0 || qty > MaxLineQuantity {
		return nil, invalidf("quantity must be between 0 and %d", MaxLineQuantity)
	}

	var row *repository.StockRow
	if qty > 0 {
		if row, err = s.stockFor(ctx, variantID); err != nil {
			return nil, err
		}
		if err := checkStock(row, qty); err != nil {
			return nil, err
		}
	}

	c, err := s.store.Update(ctx, ownerKey(id), func(c *cart.Cart) error {
		if !c.SetQuantity(variantID, qty) {
			return ErrVariantNotFound
		}
		return nil
	})
	return c, s.storeErr(err)
}

func (s *cartService) RemoveItem(ctx context.Context, variantID uuid.UUID) (*cart.Cart, error) {
	id, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.store.Update(ctx, ownerKey(id), func(c *cart.Cart) error {
		c.Remove(variantID)
		return nil
	})
	return c, s.storeErr(err)
}

func (s *cartService) ClearCart(ctx context.Context) error {
	id, err := requireAuth(ctx)
	if err != nil {
		return err
	}
	if err := s.store.Clear(ctx, ownerKey(id)); err != nil {
		return &WriteError{Op: "cart", Err: err}
	}
	return nil
}

// Checkout оформляет заказ по строкам корзины и очищает её после успеха.
func (s *cartService) Checkout(ctx context.Context, shipping ShippingInfo) (*PlacedOrder, error) {
	c, err := s.GetCart(ctx)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	items := make([]LineRequest, 0, len(c.Lines))
	for _, l := range c.Lines {
		items = append(items, LineRequest{VariantID: l.VariantID, Quantity: l.Quantity})
	}

	placed, err := s.checkout.PlaceOrder(ctx, PlaceOrderInput{Shipping: shipping, Items: items})
	if err != nil {
		return nil, err
	}

	if err := s.store.Clear(ctx, c.OwnerID); err != nil {
		s.log.Warn("clear cart after checkout failed", zap.String("owner", c.OwnerID), zap.Error(err))
	}
	return placed, nil
}

// storeErr оставляет доменные ошибки как есть, а сбои хранилища оборачивает в WriteError.
func (s *cartService) storeErr(err error) error {
	if err == nil {
		return nil
	}
	var (
		insufficient *InsufficientStockError
		notFound     *ProductNotFoundError
	)
	switch {
	case errors.As(err, &insufficient), errors.As(err, &notFound), errors.Is(err, ErrVariantNotFound), errors.Is(err, ErrInvalidInput):
		return err
	}
	return &WriteError{Op: "cart", Err: err}
}

func variantLabel(variants []models.Variant, id uuid.UUID) string {
	for _, v := range variants {
		if v.ID != id {
			continue
		}
		var parts []string
		for _, p := range []*string{v.ColorName, v.Storage, v.Finish} {
			if p != nil && strings.TrimSpace(*p) != "" {
				parts = append(parts, strings.TrimSpace(*p))
			}
		}
		return strings.Join(parts, " / ")
	}
	return ""
}
