package service

import (
	"context"
	"errors"
	"time"

	"storefront/internal/models"
	"storefront/internal/payments"
	"storefront/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type checkoutService struct {
	repo     *repository.Repository
	events   EventBus
	payments PaymentProvider
	cache    CatalogCache
	cfg      CheckoutConfig
	log      *zap.Logger
	now      func() time.Time
}

// NewCheckoutService: events, payments и cache могут быть nil.
func NewCheckoutService(repo *repository.Repository, events EventBus, pay PaymentProvider, cache CatalogCache, cfg CheckoutConfig, log *zap.Logger) CheckoutService {
	if log == nil {
		log = zap.NewNop()
	}
	if pay == nil {
		pay = payments.Disabled{}
	}
	return &checkoutService{
		repo:     repo,
		events:   events,
		payments: pay,
		cache:    cache,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// PlaceOrder: покупатель, проверка остатков, адрес, заказ, позиции и списание остатков
// выполняются в одной транзакции. Любая ошибка откатывает всё.
func (s *checkoutService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*PlacedOrder, error) {
	if _, err := requireAuth(ctx); err != nil {
		return nil, err
	}

	lines, err := NormalizeLines(in.Items)
	if err != nil {
		return nil, err
	}
	if err := in.Shipping.validate(); err != nil {
		return nil, err
	}

	var (
		now       = s.now().UTC()
		order     *models.Order
		customer  *models.Customer
		address   *models.Address
		items     []models.OrderItem
		validated []ValidatedLine
	)

	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		var err error
		customer, err = NewCustomerResolver(tx.Customers).Resolve(ctx, ContactHint{
			FullName: in.Shipping.FullName,
			Phone:    in.Shipping.Phone,
		})
		if err != nil {
			return err
		}

		validated, err = NewStockValidator(tx.Variants).Validate(ctx, lines)
		if err != nil {
			return err
		}

		address = &models.Address{
			CustomerID:   customer.ID,
			AddressLine1: in.Shipping.AddressLine1,
			AddressLine2: optional(in.Shipping.AddressLine2),
			City:         in.Shipping.City,
			State:        in.Shipping.State,
			PostalCode:   optional(in.Shipping.PostalCode),
			Country:      in.Shipping.Country,
			CreatedAt:    now,
		}
		if err := tx.Addresses.Create(ctx, address); err != nil {
			return &WriteError{Op: "address", Err: err}
		}

		total := decimal.Zero
		for _, l := range validated {
			total = total.Add(l.Subtotal())
		}

		order = &models.Order{
			CustomerID:  customer.ID,
			AddressID:   address.ID,
			TotalAmount: total,
			Status:      models.OrderStatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Orders.Create(ctx, order); err != nil {
			return &WriteError{Op: "order", Err: err}
		}

		items = make([]models.OrderItem, 0, len(validated))
		for _, l := range validated {
			items = append(items, models.OrderItem{
				OrderID:   order.ID,
				VariantID: l.VariantID,
				Quantity:  l.Quantity,
				Price:     l.Price,
				CreatedAt: now,
			})
		}
		if err := tx.OrderItems.BulkCreate(ctx, items); err != nil {
			return &WriteError{Op: "order items", Err: err}
		}

		// строки уже отсортированы по id варианта: одинаковый порядок блокировок
		for _, l := range validated {
			ok, err := tx.Variants.TryDecrement(ctx, l.VariantID, l.Quantity)
			if err != nil {
				return &WriteError{Op: "stock", Err: err}
			}
			if !ok {
				return &StockConflictError{VariantID: l.VariantID, Requested: l.Quantity}
			}
		}
		return nil
	})
	if err != nil {
		s.log.Warn("order placement failed", zap.Error(err))
		return nil, err
	}

	order.Customer = customer
	order.Address = address
	order.Items = items

	s.log.Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("customer_id", customer.ID.String()),
		zap.String("total", order.TotalAmount.StringFixed(2)),
		zap.Int("lines", len(items)),
	)

	s.afterCommit(ctx, order, validated)

	placed := &PlacedOrder{Order: order}
	placed.PaymentURL = s.startPayment(ctx, order, validated)
	return placed, nil
}

func (s *checkoutService) afterCommit(ctx context.Context, order *models.Order, lines []ValidatedLine) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn("catalog cache invalidation failed", zap.Error(err))
		}
	}

	if s.events == nil {
		return
	}
	evItems := make([]OrderItemEvent, 0, len(lines))
	for _, l := range lines {
		evItems = append(evItems, OrderItemEvent{
			VariantID:   l.VariantID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			Price:       l.Price,
		})
	}
	if err := s.events.PublishOrderPlaced(ctx, OrderPlacedEvent{
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		Email:       order.Customer.Email,
		FullName:    order.Customer.FullName,
		Items:       evItems,
		TotalAmount: order.TotalAmount,
		Status:      string(order.Status),
		CreatedAt:   order.CreatedAt,
	}); err != nil {
		s.log.Warn("publish order placed failed", zap.String("order_id", order.ID.String()), zap.Error(err))
	}
}

// startPayment передаёт заказ платёжному сервису. Ошибка не влияет на заказ:
// он остаётся в статусе pending, а ссылка на оплату пустая.
func (s *checkoutService) startPayment(ctx context.Context, order *models.Order, lines []ValidatedLine) string {
	items := make([]payments.CheckoutLineItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, payments.CheckoutLineItem{
			Name:      l.ProductName,
			Quantity:  int64(l.Quantity),
			UnitPrice: l.Price,
			SKU:       l.VariantID.String(),
		})
	}

	sess, err := s.payments.CreateCheckoutSession(ctx, payments.CheckoutSessionRequest{
		OrderID:        order.ID.String(),
		Currency:       s.cfg.Currency,
		CustomerEmail:  order.Customer.Email,
		SuccessURL:     s.cfg.SuccessURL,
		CancelURL:      s.cfg.CancelURL,
		Locale:         s.cfg.Locale,
		IdempotencyKey: "order-" + order.ID.String(),
		Items:          items,
	})
	if errors.Is(err, payments.ErrProviderDisabled) {
		s.log.Debug("payments disabled: order left without payment link", zap.String("order_id", order.ID.String()))
		return ""
	}
	if err != nil {
		s.log.Warn("payment handoff failed", zap.String("order_id", order.ID.String()), zap.Error(err))
		return ""
	}

	if err := s.repo.Orders.SetPaymentReference(ctx, order.ID, sess.ID); err != nil {
		s.log.Warn("store payment reference failed", zap.String("order_id", order.ID.String()), zap.Error(err))
	} else {
		ref := sess.ID
		order.PaymentReference = &ref
	}
	return sess.RedirectURL
}
