package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type catalogService struct {
	repo        *repository.Repository
	cache       CatalogCache
	placeholder string
	pageSize    int
	log         *zap.Logger
}

func NewCatalogService(repo *repository.Repository, cache CatalogCache, placeholder string, defaultPageSize int, log *zap.Logger) CatalogService {
	if defaultPageSize <= 0 || defaultPageSize > MaxPageSize {
		defaultPageSize = DefaultPageSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &catalogService{
		repo:        repo,
		cache:       cache,
		placeholder: placeholder,
		pageSize:    defaultPageSize,
		log:         log,
	}
}

// PriceRange считает min/max по положительным ценам вариантов.
// Без положительных цен оба значения равны нулю.
func PriceRange(variants []models.Variant) (minPrice, maxPrice decimal.Decimal, multiple bool) {
	found := false
	for _, v := range variants {
		if !v.Price.IsPositive() {
			continue
		}
		if !found {
			minPrice, maxPrice, found = v.Price, v.Price, true
			continue
		}
		if v.Price.LessThan(minPrice) {
			minPrice = v.Price
		}
		if v.Price.GreaterThan(maxPrice) {
			maxPrice = v.Price
		}
	}
	if !found {
		return decimal.Zero, decimal.Zero, false
	}
	return minPrice, maxPrice, !minPrice.Equal(maxPrice)
}

func (s *catalogService) summarize(p models.Product) ProductSummary {
	active := make([]models.Variant, 0, len(p.Variants))
	for _, v := range p.Variants {
		if v.IsActive {
			active = append(active, v)
		}
	}
	minPrice, maxPrice, multiple := PriceRange(active)

	out := ProductSummary{
		ID:                p.ID,
		Name:              p.Name,
		Brand:             p.Brand,
		Slug:              p.Slug,
		Description:       p.Description,
		Features:          append([]string{}, p.Features...),
		Images:            append([]string{}, p.Images...),
		MinPrice:          minPrice,
		MaxPrice:          maxPrice,
		HasMultiplePrices: multiple,
		DisplayImage:      p.Images.First(s.placeholder),
		CreatedAt:         p.CreatedAt,
		Variants:          make([]VariantView, 0, len(active)),
	}
	if p.Category != nil {
		out.Category = &CategorySummary{ID: p.Category.ID, Name: p.Category.Name, Slug: p.Category.Slug}
	}
	for _, v := range active {
		out.Variants = append(out.Variants, VariantView{
			ID:        v.ID,
			Color:     v.Color,
			ColorName: v.ColorName,
			Storage:   v.Storage,
			Finish:    v.Finish,
			Price:     v.Price,
			Stock:     v.Stock,
		})
	}
	return out
}

func (s *catalogService) normalize(q CatalogQuery) CatalogQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = s.pageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}

	brands := make([]string, 0, len(q.Brands))
	seen := map[string]bool{}
	for _, b := range q.Brands {
		b = strings.TrimSpace(b)
		if b == "" || seen[b] {
			continue
		}
		seen[b] = true
		brands = append(brands, b)
	}
	sort.Strings(brands)
	q.Brands = brands

	cats := make([]uuid.UUID, 0, len(q.CategoryIDs))
	seenCat := map[uuid.UUID]bool{}
	for _, c := range q.CategoryIDs {
		if c == uuid.Nil || seenCat[c] {
			continue
		}
		seenCat[c] = true
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return bytes.Compare(cats[i][:], cats[j][:]) < 0 })
	q.CategoryIDs = cats
	q.Search = strings.ToLower(strings.Join(strings.Fields(q.Search), " "))
	return q
}

// CatalogCacheKey строит ключ кэша из нормализованного запроса.
func CatalogCacheKey(q CatalogQuery) string {
	cats := make([]string, len(q.CategoryIDs))
	for i, c := range q.CategoryIDs {
		cats[i] = c.String()
	}
	return fmt.Sprintf("p=%d:s=%d:b=%s:c=%s:q=%s", q.Page, q.PageSize, strings.Join(q.Brands, ","), strings.Join(cats, ","), q.Search)
}

func (s *catalogService) ListProducts(ctx context.Context, q CatalogQuery) (*CatalogPage, error) {
	q = s.normalize(q)
	key := CatalogCacheKey(q)

	if s.cache != nil {
		page, ok, err := s.cache.GetPage(ctx, key)
		if err != nil {
			s.log.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			return page, nil
		}
	}

	active := true
	list, total, err := s.repo.Products.List(ctx, repository.ProductListFilter{
		Brands:      q.Brands,
		CategoryIDs: q.CategoryIDs,
		Query:       q.Search,
		OnlyActive:  &active,
		Limit:       q.PageSize,
		Offset:      (q.Page - 1) * q.PageSize,
	})
	if err != nil {
		return nil, &LookupError{Op: "products", Err: err}
	}

	page := &CatalogPage{
		Items:      make([]ProductSummary, 0, len(list)),
		Page:       q.Page,
		PageSize:   q.PageSize,
		Total:      total,
		TotalPages: int((total + int64(q.PageSize) - 1) / int64(q.PageSize)),
	}
	for _, p := range list {
		page.Items = append(page.Items, s.summarize(p))
	}

	if s.cache != nil {
		if err := s.cache.SetPage(ctx, key, page); err != nil {
			s.log.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return page, nil
}

func (s *catalogService) GetProduct(ctx context.Context, slug string) (*ProductSummary, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrProductNotFound
	}
	p, err := s.repo.Products.GetBySlug(ctx, slug)
	if err != nil {
		return nil, &LookupError{Op: "product", Err: err}
	}
	if p == nil || !p.IsActive {
		return nil, ErrProductNotFound
	}
	out := s.summarize(*p)
	return &out, nil
}

func (s *catalogService) ListBrands(ctx context.Context) ([]string, error) {
	brands, err := s.repo.Products.Brands(ctx)
	if err != nil {
		return nil, &LookupError{Op: "brands", Err: err}
	}
	return brands, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]CategorySummary, error) {
	list, err := s.repo.Categories.List(ctx)
	if err != nil {
		return nil, &LookupError{Op: "categories", Err: err}
	}
	out := make([]CategorySummary, 0, len(list))
	for _, c := range list {
		out = append(out, CategorySummary{ID: c.ID, Name: c.Name, Slug: c.Slug})
	}
	return out, nil
}

func (s *catalogService) ListPartners(ctx context.Context) ([]PartnerView, error) {
	list, err := s.repo.Partners.List(ctx, true)
	if err != nil {
		return nil, &LookupError{Op: "partners", Err: err}
	}
	out := make([]PartnerView, 0, len(list))
	for _, p := range list {
		out = append(out, PartnerView{ID: p.ID, Name: p.Name, Logo: p.Logo, Website: p.Website})
	}
	return out, nil
}
