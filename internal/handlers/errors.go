package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/dto"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// writeError переводит ошибки сервисного слоя в HTTP-ответ.
// Клиентские ошибки логируются как Warn, серверные как Error.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	var (
		notFound     *service.ProductNotFoundError
		insufficient *service.InsufficientStockError
		conflict     *service.StockConflictError
	)
	path := zap.String("path", c.FullPath())

	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError("authentication required"))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.NewForbiddenError("admin role required"))

	case errors.As(err, &notFound):
		log.Warn("products not found", path, zap.Error(err))
		ids := make([]string, len(notFound.VariantIDs))
		for i, id := range notFound.VariantIDs {
			ids[i] = id.String()
		}
		c.JSON(http.StatusNotFound, dto.NewProductNotFoundError(ids))
	case errors.As(err, &insufficient):
		log.Warn("insufficient stock", path, zap.Error(err))
		lines := make([]dto.StockShortfall, len(insufficient.Lines))
		for i, l := range insufficient.Lines {
			lines[i] = dto.StockShortfall{
				VariantID:   l.VariantID.String(),
				ProductName: l.ProductName,
				Requested:   l.Requested,
				Available:   l.Available,
			}
		}
		c.JSON(http.StatusConflict, dto.NewInsufficientStockError(lines))
	case errors.As(err, &conflict):
		log.Warn("stock conflict", path, zap.Error(err))
		c.JSON(http.StatusConflict, dto.NewStockConflictError(conflict.VariantID.String(), conflict.Requested))

	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrInvalidStatus):
		log.Warn("validation failed", path, zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.NewValidationError(err.Error(), nil))
	case errors.Is(err, service.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, dto.NewValidationError("cart is empty", nil))

	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("product not found"))
	case errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("order not found"))
	case errors.Is(err, service.ErrVariantNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("variant not found"))
	case errors.Is(err, service.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("category not found"))
	case errors.Is(err, service.ErrPartnerNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("partner not found"))

	case errors.Is(err, service.ErrSlugTaken):
		c.JSON(http.StatusConflict, dto.NewConflictError("slug already in use"))
	case errors.Is(err, service.ErrProductHasOrders):
		c.JSON(http.StatusConflict, dto.NewConflictError("product is referenced by orders"))

	case errors.Is(err, service.ErrLookup):
		log.Error("lookup failed", path, zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, dto.NewLookupFailedError(""))
	default:
		log.Error("request failed", path, zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
	}
}

func badRequest(c *gin.Context, log *zap.Logger, err error) {
	log.Warn("invalid request", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", []dto.FieldError{}))
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid "+name, []dto.FieldError{{Field: name, Message: "must be a uuid", Tag: "uuid"}}))
		return uuid.Nil, false
	}
	return id, true
}

// uuidField разбирает id из тела запроса; при ошибке сразу отвечает 400.
func uuidField(c *gin.Context, field, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid "+field, []dto.FieldError{{Field: field, Message: "must be a uuid", Tag: "uuid"}}))
		return uuid.Nil, false
	}
	return id, true
}

func intQuery(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}
