package handlers

import (
	"net/http"
	"strings"

	"storefront/internal/dto"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	catalog service.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(catalog service.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: log}
}

// multiQuery принимает и повторяющиеся параметры, и значения через запятую.
func multiQuery(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// ListProducts godoc
// @Summary Каталог товаров
// @Description Активные товары, новые первыми. Фильтры по брендам, категориям и строке поиска.
// @Tags catalog
// @Produce json
// @Param page query int false "Номер страницы (с 1)"
// @Param page_size query int false "Размер страницы (по умолчанию 12, максимум 100)"
// @Param brand query []string false "Бренды" collectionFormat(multi)
// @Param category query []string false "ID категорий" collectionFormat(multi)
// @Param q query string false "Поиск по названию и бренду"
// @Success 200 {object} service.CatalogPage
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 503 {object} dto.LookupFailedErrorResponse
// @Router /api/v1/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	q := service.CatalogQuery{
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "page_size", 0),
		Brands:   multiQuery(c, "brand"),
		Search:   c.Query("q"),
	}
	for _, raw := range multiQuery(c, "category") {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid category id", []dto.FieldError{{Field: "category", Message: raw, Tag: "uuid"}}))
			return
		}
		q.CategoryIDs = append(q.CategoryIDs, id)
	}

	page, err := h.catalog.ListProducts(c.Request.Context(), q)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetProduct godoc
// @Summary Товар по slug
// @Tags catalog
// @Produce json
// @Param slug path string true "Slug товара"
// @Success 200 {object} service.ProductSummary
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 503 {object} dto.LookupFailedErrorResponse
// @Router /api/v1/products/{slug} [get]
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	p, err := h.catalog.GetProduct(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListBrands godoc
// @Summary Список брендов
// @Tags catalog
// @Produce json
// @Success 200 {array} string
// @Failure 503 {object} dto.LookupFailedErrorResponse
// @Router /api/v1/brands [get]
func (h *CatalogHandler) ListBrands(c *gin.Context) {
	brands, err := h.catalog.ListBrands(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, brands)
}

// ListCategories godoc
// @Summary Список категорий
// @Tags catalog
// @Produce json
// @Success 200 {array} service.CategorySummary
// @Failure 503 {object} dto.LookupFailedErrorResponse
// @Router /api/v1/categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	cats, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

// ListPartners godoc
// @Summary Активные партнёры
// @Tags catalog
// @Produce json
// @Success 200 {array} service.PartnerView
// @Failure 503 {object} dto.LookupFailedErrorResponse
// @Router /api/v1/partners [get]
func (h *CatalogHandler) ListPartners(c *gin.Context) {
	partners, err := h.catalog.ListPartners(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, partners)
}
