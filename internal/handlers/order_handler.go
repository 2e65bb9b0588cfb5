package handlers

import (
	"net/http"

	"storefront/internal/dto"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	checkout service.CheckoutService
	orders   service.OrderService
	log      *zap.Logger
}

func NewOrderHandler(checkout service.CheckoutService, orders service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{checkout: checkout, orders: orders, log: log}
}

// PlaceOrder godoc
// @Summary Оформить заказ
// @Description Проверяет остатки, пишет адрес, заказ и позиции и списывает остатки одной транзакцией.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param order body dto.PlaceOrderRequest true "Адрес доставки и позиции"
// @Success 201 {object} dto.PlaceOrderResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Failure 404 {object} dto.ProductNotFoundErrorResponse
// @Failure 409 {object} dto.InsufficientStockErrorResponse
// @Failure 503 {object} dto.LookupFailedErrorResponse
// @Failure 500 {object} dto.InternalErrorResponse
// @Router /api/v1/orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, err)
		return
	}
	items := make([]service.LineRequest, 0, len(req.Items))
	for _, it := range req.Items {
		id, ok := uuidField(c, "variant_id", it.VariantID)
		if !ok {
			return
		}
		items = append(items, service.LineRequest{VariantID: id, Quantity: it.Quantity})
	}

	placed, err := h.checkout.PlaceOrder(c.Request.Context(), service.PlaceOrderInput{
		Shipping: shippingInfo(req.Shipping),
		Items:    items,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dto.PlaceOrderResponse{Order: dto.FromOrder(placed.Order), PaymentURL: placed.PaymentURL})
}

// ListMyOrders godoc
// @Summary Мои заказы
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} dto.OrderListResponse
// @Failure 401 {object} dto.UnauthorizedErrorResponse
// @Router /api/v1/orders [get]
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	page, err := h.orders.ListMyOrders(c.Request.Context(), intQuery(c, "limit", 20), intQuery(c, "offset", 0))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.OrderListResponse{Items: dto.FromOrders(page.Items), Total: page.Total, Limit: page.Limit, Offset: page.Offset})
}

// GetMyOrder godoc
// @Summary Мой заказ
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заказа"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/v1/orders/{id} [get]
func (h *OrderHandler) GetMyOrder(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	ord, err := h.orders.GetMyOrder(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromOrder(ord))
}
