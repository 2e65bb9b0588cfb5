package handlers

import (
	"net/http"

	"storefront/internal/dto"
	"storefront/internal/models"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminHandler struct {
	admin service.AdminService
	log   *zap.Logger
}

func NewAdminHandler(admin service.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, log: log}
}

func variantInput(r dto.VariantRequest) service.VariantInput {
	return service.VariantInput{
		Color:     r.Color,
		ColorName: r.ColorName,
		Storage:   r.Storage,
		Finish:    r.Finish,
		Price:     r.Price,
		Stock:     r.Stock,
		IsActive:  r.IsActive,
	}
}

// CreateProduct godoc
// @Summary Создать товар с вариантами
// @Description Slug генерируется из названия, если не задан.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body dto.CreateProductRequest true "Товар"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 403 {object} dto.ForbiddenErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse "Slug занят"
// @Router /api/v1/admin/products [post]
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	in := service.ProductInput{
		Name:        req.Name,
		Brand:       req.Brand,
		Slug:        req.Slug,
		Description: req.Description,
		Features:    req.Features,
		Images:      req.Images,
		IsActive:    req.IsActive,
	}
	if req.CategoryID != nil {
		id, ok := uuidField(c, "category_id", *req.CategoryID)
		if !ok {
			return
		}
		in.CategoryID = &id
	}
	for _, v := range req.Variants {
		in.Variants = append(in.Variants, variantInput(v))
	}

	p, err := h.admin.CreateProduct(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromProduct(p))
}

// UpdateProduct godoc
// @Summary Изменить товар
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID товара"
// @Param product body dto.UpdateProductRequest true "Изменяемые поля"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse
// @Router /api/v1/admin/products/{id} [put]
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	patch := service.ProductPatch{
		Name:        req.Name,
		Brand:       req.Brand,
		Slug:        req.Slug,
		Description: req.Description,
		Features:    req.Features,
		Images:      req.Images,
		IsActive:    req.IsActive,
	}
	if req.CategoryID != nil {
		cat := uuid.Nil
		if *req.CategoryID != "" {
			parsed, err := uuid.Parse(*req.CategoryID)
			if err != nil {
				badRequest(c, h.log, err)
				return
			}
			cat = parsed
		}
		patch.CategoryID = &cat
	}

	p, err := h.admin.UpdateProduct(c.Request.Context(), id, patch)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromProduct(p))
}

// DeleteProduct godoc
// @Summary Удалить товар
// @Description Товар, встречающийся в заказах, удалить нельзя; его можно деактивировать.
// @Tags admin
// @Security BearerAuth
// @Param id path string true "ID товара"
// @Success 204
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse
// @Router /api/v1/admin/products/{id} [delete]
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.admin.DeleteProduct(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddVariant godoc
// @Summary Добавить вариант товару
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID товара"
// @Param variant body dto.VariantRequest true "Вариант"
// @Success 201 {object} dto.VariantResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/v1/admin/products/{id}/variants [post]
func (h *AdminHandler) AddVariant(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	v, err := h.admin.AddVariant(c.Request.Context(), id, variantInput(req))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromVariant(v))
}

// UpdateVariant godoc
// @Summary Изменить вариант (цена, остаток, активность)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID варианта"
// @Param variant body dto.UpdateVariantRequest true "Изменяемые поля"
// @Success 200 {object} dto.VariantResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/v1/admin/variants/{id} [put]
func (h *AdminHandler) UpdateVariant(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateVariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	v, err := h.admin.UpdateVariant(c.Request.Context(), id, service.VariantPatch{
		Color:     req.Color,
		ColorName: req.ColorName,
		Storage:   req.Storage,
		Finish:    req.Finish,
		Price:     req.Price,
		Stock:     req.Stock,
		IsActive:  req.IsActive,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromVariant(v))
}

// CreateCategory godoc
// @Summary Создать категорию
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param category body dto.CategoryRequest true "Категория"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse
// @Router /api/v1/admin/categories [post]
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	cat, err := h.admin.CreateCategory(c.Request.Context(), service.CategoryInput{Name: req.Name, Slug: req.Slug, Image: req.Image})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromCategory(cat))
}

// UpdateCategory godoc
// @Summary Изменить категорию
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID категории"
// @Param category body dto.UpdateCategoryRequest true "Изменяемые поля"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 409 {object} dto.ConflictErrorResponse
// @Router /api/v1/admin/categories/{id} [put]
func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	cat, err := h.admin.UpdateCategory(c.Request.Context(), id, service.CategoryPatch{Name: req.Name, Slug: req.Slug, Image: req.Image})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromCategory(cat))
}

// DeleteCategory godoc
// @Summary Удалить категорию
// @Description Товары категории остаются без категории.
// @Tags admin
// @Security BearerAuth
// @Param id path string true "ID категории"
// @Success 204
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/v1/admin/categories/{id} [delete]
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.admin.DeleteCategory(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListPartners godoc
// @Summary Все партнёры, включая неактивных
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.PartnerResponse
// @Router /api/v1/admin/partners [get]
func (h *AdminHandler) ListPartners(c *gin.Context) {
	list, err := h.admin.ListPartners(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	out := make([]dto.PartnerResponse, 0, len(list))
	for i := range list {
		out = append(out, dto.FromPartner(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

// CreatePartner godoc
// @Summary Создать партнёра
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param partner body dto.PartnerRequest true "Партнёр"
// @Success 201 {object} dto.PartnerResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /api/v1/admin/partners [post]
func (h *AdminHandler) CreatePartner(c *gin.Context) {
	var req dto.PartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	p, err := h.admin.CreatePartner(c.Request.Context(), service.PartnerInput{
		Name: req.Name, Logo: req.Logo, Website: req.Website, IsActive: req.IsActive,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromPartner(p))
}

// UpdatePartner godoc
// @Summary Изменить партнёра
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID партнёра"
// @Param partner body dto.UpdatePartnerRequest true "Изменяемые поля"
// @Success 200 {object} dto.PartnerResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/v1/admin/partners/{id} [put]
func (h *AdminHandler) UpdatePartner(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	p, err := h.admin.UpdatePartner(c.Request.Context(), id, service.PartnerPatch{
		Name: req.Name, Logo: req.Logo, Website: req.Website, IsActive: req.IsActive,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromPartner(p))
}

// DeletePartner godoc
// @Summary Удалить партнёра
// @Tags admin
// @Security BearerAuth
// @Param id path string true "ID партнёра"
// @Success 204
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/v1/admin/partners/{id} [delete]
func (h *AdminHandler) DeletePartner(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.admin.DeletePartner(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListOrders godoc
// @Summary Все заказы
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Фильтр по статусу" Enums(pending, paid, shipped, delivered)
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} dto.OrderListResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /api/v1/admin/orders [get]
func (h *AdminHandler) ListOrders(c *gin.Context) {
	q := service.AdminOrderQuery{Limit: intQuery(c, "limit", 20), Offset: intQuery(c, "offset", 0)}
	if s := c.Query("status"); s != "" {
		st := models.OrderStatus(s)
		q.Status = &st
	}
	page, err := h.admin.ListOrders(c.Request.Context(), q)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderListResponse{Items: dto.FromOrders(page.Items), Total: page.Total, Limit: page.Limit, Offset: page.Offset})
}

// GetOrder godoc
// @Summary Заказ с позициями, адресом и покупателем
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заказа"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/v1/admin/orders/{id} [get]
func (h *AdminHandler) GetOrder(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	ord, err := h.admin.GetOrder(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromOrder(ord))
}

// UpdateOrderStatus godoc
// @Summary Сменить статус заказа
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заказа"
// @Param status body dto.UpdateOrderStatusRequest true "Новый статус"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/v1/admin/orders/{id}/status [patch]
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	ord, err := h.admin.UpdateOrderStatus(c.Request.Context(), id, models.OrderStatus(req.Status))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromOrder(ord))
}
