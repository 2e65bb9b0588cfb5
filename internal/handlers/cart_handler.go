package handlers

import (
	"net/http"

	"storefront/internal/dto"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CartHandler struct {
	carts service.CartService
	log   *zap.Logger
}

func NewCartHandler(carts service.CartService, log *zap.Logger) *CartHandler {
	return &CartHandler{carts: carts, log: log}
}

func shippingInfo(r dto.ShippingRequest) service.ShippingInfo {
	return service.ShippingInfo{
		FullName:     r.FullName,
		Phone:        r.Phone,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		City:         r.City,
		State:        r.State,
		PostalCode:   r.PostalCode,
		Country:      r.Country,
	}
}

// GetCart godoc
// @Summary Корзина текущего пользователя
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CartResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 503 {object} dto.LookupFailedErrorResponse
// @Router /api/v1/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	ct, err := h.carts.GetCart(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromCart(ct))
}

// AddItem godoc
// @Summary Добавить вариант в корзину
// @Description Количество суммируется с уже лежащим в корзине и не может превысить остаток.
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body dto.AddCartItemRequest true "Вариант и количество"
// @Success 200 {object} dto.CartResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.ProductNotFoundErrorResponse
// @Failure 409 {object} dto.InsufficientStockErrorResponse
// @Router /api/v1/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	variantID, ok := uuidField(c, "variant_id", req.VariantID)
	if !ok {
		return
	}
	ct, err := h.carts.AddItem(c.Request.Context(), variantID, req.Quantity)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromCart(ct))
}

// UpdateItem godoc
// @Summary Изменить количество варианта в корзине
// @Description quantity = 0 удаляет строку.
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param variantId path string true "ID варианта"
// @Param item body dto.UpdateCartItemRequest true "Новое количество"
// @Success 200 {object} dto.CartResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Failure 409 {object} dto.InsufficientStockErrorResponse
// @Router /api/v1/cart/items/{variantId} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	id, ok := uuidParam(c, "variantId")
	if !ok {
		return
	}
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	ct, err := h.carts.SetItemQuantity(c.Request.Context(), id, *req.Quantity)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromCart(ct))
}

// RemoveItem godoc
// @Summary Удалить вариант из корзины
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param variantId path string true "ID варианта"
// @Success 200 {object} dto.CartResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /api/v1/cart/items/{variantId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, ok := uuidParam(c, "variantId")
	if !ok {
		return
	}
	ct, err := h.carts.RemoveItem(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromCart(ct))
}

// ClearCart godoc
// @Summary Очистить корзину
// @Tags cart
// @Security BearerAuth
// @Success 204
// @Router /api/v1/cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.carts.ClearCart(c.Request.Context()); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Checkout godoc
// @Summary Оформить заказ из корзины
// @Description Создаёт заказ по строкам корзины одной транзакцией и очищает корзину.
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param checkout body dto.CheckoutCartRequest true "Адрес доставки"
// @Success 201 {object} dto.PlaceOrderResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.ProductNotFoundErrorResponse
// @Failure 409 {object} dto.InsufficientStockErrorResponse
// @Failure 503 {object} dto.LookupFailedErrorResponse
// @Router /api/v1/cart/checkout [post]
func (h *CartHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	placed, err := h.carts.Checkout(c.Request.Context(), shippingInfo(req.Shipping))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.PlaceOrderResponse{Order: dto.FromOrder(placed.Order), PaymentURL: placed.PaymentURL})
}
