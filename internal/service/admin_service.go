package service

import (
	"context"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type adminService struct {
	repo   *repository.Repository
	events EventBus
	cache  CatalogCache
	log    *zap.Logger
	now    func() time.Time
}

func NewAdminService(repo *repository.Repository, events EventBus, cache CatalogCache, log *zap.Logger) AdminService {
	if log == nil {
		log = zap.NewNop()
	}
	return &adminService{repo: repo, events: events, cache: cache, log: log, now: time.Now}
}

func (s *adminService) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func (in VariantInput) validate() error {
	if in.Price.IsNegative() {
		return invalidf("variant price must be >= 0")
	}
	if in.Stock < 0 {
		return invalidf("variant stock must be >= 0")
	}
	return nil
}

func (in VariantInput) model(productID uuid.UUID) *models.Variant {
	return &models.Variant{
		ProductID: productID,
		Color:     in.Color,
		ColorName: in.ColorName,
		Storage:   in.Storage,
		Finish:    in.Finish,
		Price:     in.Price,
		Stock:     in.Stock,
		IsActive:  boolOr(in.IsActive, true),
	}
}

// uniqueSlug проверяет занятость slug; exceptID исключает сам обновляемый объект.
func uniqueSlug(ctx context.Context, exists func(context.Context, string, *uuid.UUID) (bool, error), raw, fallback string, exceptID *uuid.UUID) (string, error) {
	slug := Slugify(raw)
	if slug == "" {
		slug = Slugify(fallback)
	}
	if slug == "" {
		return "", invalidf("slug cannot be empty")
	}
	taken, err := exists(ctx, slug, exceptID)
	if err != nil {
		return "", &LookupError{Op: "slug", Err: err}
	}
	if taken {
		return "", ErrSlugTaken
	}
	return slug, nil
}

func (s *adminService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Brand = strings.TrimSpace(in.Brand)
	if in.Name == "" || in.Brand == "" {
		return nil, invalidf("name and brand are required")
	}
	for _, v := range in.Variants {
		if err := v.validate(); err != nil {
			return nil, err
		}
	}

	var id uuid.UUID
	err := s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		if in.CategoryID != nil {
			cat, err := tx.Categories.GetByID(ctx, *in.CategoryID)
			if err != nil {
				return &LookupError{Op: "category", Err: err}
			}
			if cat == nil {
				return ErrCategoryNotFound
			}
		}
		slug, err := uniqueSlug(ctx, tx.Products.SlugExists, in.Slug, in.Name, nil)
		if err != nil {
			return err
		}

		p := &models.Product{
			Name:        in.Name,
			Brand:       in.Brand,
			Slug:        slug,
			Description: in.Description,
			Features:    models.StringList(in.Features),
			Images:      models.StringList(in.Images),
			CategoryID:  in.CategoryID,
			IsActive:    boolOr(in.IsActive, true),
		}
		if err := tx.Products.Create(ctx, p); err != nil {
			return &WriteError{Op: "product", Err: err}
		}
		for _, vi := range in.Variants {
			if err := tx.Variants.Create(ctx, vi.model(p.ID)); err != nil {
				return &WriteError{Op: "variant", Err: err}
			}
		}
		id = p.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCatalog(ctx)
	s.log.Info("product created", zap.String("product_id", id.String()))
	return s.product(ctx, id)
}

func (s *adminService) product(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.repo.Products.GetByID(ctx, id)
	if err != nil {
		return nil, &LookupError{Op: "product", Err: err}
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *adminService) UpdateProduct(ctx context.Context, id uuid.UUID, patch ProductPatch) (*models.Product, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if _, err := s.product(ctx, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, invalidf("name cannot be empty")
		}
		fields["name"] = name
	}
	if patch.Brand != nil {
		brand := strings.TrimSpace(*patch.Brand)
		if brand == "" {
			return nil, invalidf("brand cannot be empty")
		}
		fields["brand"] = brand
	}
	if patch.Slug != nil {
		slug, err := uniqueSlug(ctx, s.repo.Products.SlugExists, *patch.Slug, "", &id)
		if err != nil {
			return nil, err
		}
		fields["slug"] = slug
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Features != nil {
		fields["features"] = models.StringList(*patch.Features)
	}
	if patch.Images != nil {
		fields["images"] = models.StringList(*patch.Images)
	}
	if patch.CategoryID != nil {
		if *patch.CategoryID == uuid.Nil {
			fields["category_id"] = nil
		} else {
			cat, err := s.repo.Categories.GetByID(ctx, *patch.CategoryID)
			if err != nil {
				return nil, &LookupError{Op: "category", Err: err}
			}
			if cat == nil {
				return nil, ErrCategoryNotFound
			}
			fields["category_id"] = *patch.CategoryID
		}
	}
	if patch.IsActive != nil {
		fields["is_active"] = *patch.IsActive
	}

	if err := s.repo.Products.UpdateFields(ctx, id, fields); err != nil {
		return nil, &WriteError{Op: "product", Err: err}
	}
	s.invalidateCatalog(ctx)
	return s.product(ctx, id)
}

// DeleteProduct отказывает, если товар уже встречается в заказах:
// позиции заказов ссылаются на варианты с ON DELETE RESTRICT.
func (s *adminService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	used, err := s.repo.OrderItems.ExistsForProduct(ctx, id)
	if err != nil {
		return &LookupError{Op: "order items", Err: err}
	}
	if used {
		return ErrProductHasOrders
	}
	ok, err := s.repo.Products.Delete(ctx, id)
	if err != nil {
		return &WriteError{Op: "product", Err: err}
	}
	if !ok {
		return ErrProductNotFound
	}
	s.invalidateCatalog(ctx)
	s.log.Info("product deleted", zap.String("product_id", id.String()))
	return nil
}

func (s *adminService) AddVariant(ctx context.Context, productID uuid.UUID, in VariantInput) (*models.Variant, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.product(ctx, productID); err != nil {
		return nil, err
	}
	v := in.model(productID)
	if err := s.repo.Variants.Create(ctx, v); err != nil {
		return nil, &WriteError{Op: "variant", Err: err}
	}
	s.invalidateCatalog(ctx)
	return v, nil
}

func (s *adminService) UpdateVariant(ctx context.Context, id uuid.UUID, patch VariantPatch) (*models.Variant, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if patch.Color != nil {
		fields["color"] = *patch.Color
	}
	if patch.ColorName != nil {
		fields["color_name"] = *patch.ColorName
	}
	if patch.Storage != nil {
		fields["storage"] = *patch.Storage
	}
	if patch.Finish != nil {
		fields["finish"] = *patch.Finish
	}
	if patch.Price != nil {
		if patch.Price.IsNegative() {
			return nil, invalidf("variant price must be >= 0")
		}
		fields["price"] = *patch.Price
	}
	if patch.Stock != nil {
		if *patch.Stock < 0 {
			return nil, invalidf("variant stock must be >= 0")
		}
		fields["stock"] = *patch.Stock
	}
	if patch.IsActive != nil {
		fields["is_active"] = *patch.IsActive
	}

	v, err := s.repo.Variants.GetByID(ctx, id)
	if err != nil {
		return nil, &LookupError{Op: "variant", Err: err}
	}
	if v == nil {
		return nil, ErrVariantNotFound
	}
	if err := s.repo.Variants.UpdateFields(ctx, id, fields); err != nil {
		return nil, &WriteError{Op: "variant", Err: err}
	}
	s.invalidateCatalog(ctx)

	if v, err = s.repo.Variants.GetByID(ctx, id); err != nil {
		return nil, &LookupError{Op: "variant", Err: err}
	}
	return v, nil
}

func (s *adminService) category(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, err := s.repo.Categories.GetByID(ctx, id)
	if err != nil {
		return nil, &LookupError{Op: "category", Err: err}
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

func (s *adminService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, invalidf("name is required")
	}
	slug, err := uniqueSlug(ctx, s.repo.Categories.SlugExists, in.Slug, in.Name, nil)
	if err != nil {
		return nil, err
	}
	c := &models.Category{Name: in.Name, Slug: slug, Image: in.Image}
	if err := s.repo.Categories.Create(ctx, c); err != nil {
		return nil, &WriteError{Op: "category", Err: err}
	}
	s.invalidateCatalog(ctx)
	return c, nil
}

func (s *adminService) UpdateCategory(ctx context.Context, id uuid.UUID, patch CategoryPatch) (*models.Category, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if _, err := s.category(ctx, id); err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, invalidf("name cannot be empty")
		}
		fields["name"] = name
	}
	if patch.Slug != nil {
		slug, err := uniqueSlug(ctx, s.repo.Categories.SlugExists, *patch.Slug, "", &id)
		if err != nil {
			return nil, err
		}
		fields["slug"] = slug
	}
	if patch.Image != nil {
		fields["image"] = *patch.Image
	}
	if err := s.repo.Categories.UpdateFields(ctx, id, fields); err != nil {
		return nil, &WriteError{Op: "category", Err: err}
	}
	s.invalidateCatalog(ctx)
	return s.category(ctx, id)
}

// DeleteCategory: товары категории остаются, category_id обнуляется внешним ключом.
func (s *adminService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	ok, err := s.repo.Categories.Delete(ctx, id)
	if err != nil {
		return &WriteError{Op: "category", Err: err}
	}
	if !ok {
		return ErrCategoryNotFound
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *adminService) ListPartners(ctx context.Context) ([]models.Partner, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	list, err := s.repo.Partners.List(ctx, false)
	if err != nil {
		return nil, &LookupError{Op: "partners", Err: err}
	}
	return list, nil
}

func (s *adminService) partner(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	p, err := s.repo.Partners.GetByID(ctx, id)
	if err != nil {
		return nil, &LookupError{Op: "partner", Err: err}
	}
	if p == nil {
		return nil, ErrPartnerNotFound
	}
	return p, nil
}

func (s *adminService) CreatePartner(ctx context.Context, in PartnerInput) (*models.Partner, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, invalidf("name is required")
	}
	p := &models.Partner{Name: in.Name, Logo: in.Logo, Website: in.Website, IsActive: boolOr(in.IsActive, true)}
	if err := s.repo.Partners.Create(ctx, p); err != nil {
		return nil, &WriteError{Op: "partner", Err: err}
	}
	return p, nil
}

func (s *adminService) UpdatePartner(ctx context.Context, id uuid.UUID, patch PartnerPatch) (*models.Partner, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if _, err := s.partner(ctx, id); err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, invalidf("name cannot be empty")
		}
		fields["name"] = name
	}
	if patch.Logo != nil {
		fields["logo"] = *patch.Logo
	}
	if patch.Website != nil {
		fields["website"] = *patch.Website
	}
	if patch.IsActive != nil {
		fields["is_active"] = *patch.IsActive
	}
	if err := s.repo.Partners.UpdateFields(ctx, id, fields); err != nil {
		return nil, &WriteError{Op: "partner", Err: err}
	}
	return s.partner(ctx, id)
}

func (s *adminService) DeletePartner(ctx context.Context, id uuid.UUID) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	ok, err := s.repo.Partners.Delete(ctx, id)
	if err != nil {
		return &WriteError{Op: "partner", Err: err}
	}
	if !ok {
		return ErrPartnerNotFound
	}
	return nil
}

func (s *adminService) ListOrders(ctx context.Context, q AdminOrderQuery) (*OrderPage, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if q.Status != nil && !q.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	limit, offset := clampPage(q.Limit, q.Offset)
	orders, total, err := s.repo.Orders.List(ctx, repository.OrderListFilter{
		Status: q.Status,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, &LookupError{Op: "orders", Err: err}
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return &OrderPage{Items: orders, Total: total, Limit: limit, Offset: offset}, nil
}

func (s *adminService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.order(ctx, id)
}

func (s *adminService) order(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	ord, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, &LookupError{Op: "order", Err: err}
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

// UpdateOrderStatus допускает любой переход между четырьмя статусами.
// Повторная установка того же статуса ничего не пишет и не публикует событие.
func (s *adminService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	ord, err := s.order(ctx, id)
	if err != nil {
		return nil, err
	}
	from := ord.Status
	if from == status {
		return ord, nil
	}

	ok, err := s.repo.Orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, &WriteError{Op: "order status", Err: err}
	}
	if !ok {
		return nil, ErrOrderNotFound
	}
	ord.Status = status
	ord.UpdatedAt = s.now().UTC()

	s.log.Info("order status changed",
		zap.String("order_id", id.String()),
		zap.String("from", string(from)),
		zap.String("to", string(status)),
	)

	if s.events != nil {
		ev := OrderStatusChangedEvent{
			OrderID:    ord.ID,
			CustomerID: ord.CustomerID,
			From:       from,
			To:         status,
			ChangedAt:  ord.UpdatedAt,
		}
		if ord.Customer != nil {
			ev.Email = ord.Customer.Email
			ev.FullName = ord.Customer.FullName
		}
		if err := s.events.PublishOrderStatusChanged(ctx, ev); err != nil {
			s.log.Warn("publish order status changed failed", zap.String("order_id", id.String()), zap.Error(err))
		}
	}
	return ord, nil
}
