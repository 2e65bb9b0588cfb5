package dto

// BaseError универсальный корневой формат ошибки
// Code: машинно-ориентированный код (snake_case)
// Message: краткое человеко-читаемое описание
// Details: дополнительная строка (пояснение / fragment)
// Fields: для валидационных ошибок (имя поля + текст)
type BaseError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details string       `json:"details,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError отдельная ошибка по конкретному полю
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

// Предопределённые обёртки для swagger @Failure; по JSON совместимы с BaseError.

// ValidationErrorResponse 400
// Code: "validation_error"
type ValidationErrorResponse BaseError

// ConflictErrorResponse 409
// Code: "conflict"
type ConflictErrorResponse BaseError

// UnauthorizedErrorResponse 401
// Code: "unauthorized"
type UnauthorizedErrorResponse BaseError

// ForbiddenErrorResponse 403
// Code: "forbidden"
type ForbiddenErrorResponse BaseError

// NotFoundErrorResponse 404
// Code: "not_found"
type NotFoundErrorResponse BaseError

// LookupFailedErrorResponse 503
// Пример: база недоступна при чтении; запрос можно повторить
// Code: "lookup_failed"
type LookupFailedErrorResponse BaseError

// InternalErrorResponse 500
// Code: "internal_error"
type InternalErrorResponse BaseError

// ProductNotFoundErrorResponse 404
// Перечисляет все неизвестные или неактивные варианты запроса.
type ProductNotFoundErrorResponse struct {
	BaseError
	VariantIDs []string `json:"variant_ids"`
}

type StockShortfall struct {
	VariantID   string `json:"variant_id"`
	ProductName string `json:"product_name"`
	Requested   int    `json:"requested"`
	Available   int    `json:"available"`
}

// InsufficientStockErrorResponse 409
// Перечисляет все строки, где заказано больше остатка.
type InsufficientStockErrorResponse struct {
	BaseError
	Lines []StockShortfall `json:"lines"`
}

// StockConflictErrorResponse 409
// Остаток изменился между проверкой и списанием; запрос можно повторить.
type StockConflictErrorResponse struct {
	BaseError
	VariantID string `json:"variant_id"`
	Requested int    `json:"requested"`
}

func NewValidationError(msg string, fields []FieldError) ValidationErrorResponse {
	return ValidationErrorResponse(BaseError{Code: "validation_error", Message: msg, Fields: fields})
}
func NewConflictError(msg string) ConflictErrorResponse {
	return ConflictErrorResponse(BaseError{Code: "conflict", Message: msg})
}
func NewUnauthorizedError(msg string) UnauthorizedErrorResponse {
	return UnauthorizedErrorResponse(BaseError{Code: "unauthorized", Message: msg})
}
func NewForbiddenError(msg string) ForbiddenErrorResponse {
	return ForbiddenErrorResponse(BaseError{Code: "forbidden", Message: msg})
}
func NewNotFoundError(msg string) NotFoundErrorResponse {
	return NotFoundErrorResponse(BaseError{Code: "not_found", Message: msg})
}
func NewLookupFailedError(details string) LookupFailedErrorResponse {
	return LookupFailedErrorResponse(BaseError{Code: "lookup_failed", Message: "temporarily unavailable, retry later", Details: details})
}
func NewInternalError(details string) InternalErrorResponse {
	return InternalErrorResponse(BaseError{Code: "internal_error", Message: "internal server error", Details: details})
}
func NewProductNotFoundError(ids []string) ProductNotFoundErrorResponse {
	return ProductNotFoundErrorResponse{
		BaseError:  BaseError{Code: "product_not_found", Message: "some products are not available"},
		VariantIDs: ids,
	}
}
func NewInsufficientStockError(lines []StockShortfall) InsufficientStockErrorResponse {
	return InsufficientStockErrorResponse{
		BaseError: BaseError{Code: "insufficient_stock", Message: "not enough stock"},
		Lines:     lines,
	}
}
func NewStockConflictError(variantID string, requested int) StockConflictErrorResponse {
	return StockConflictErrorResponse{
		BaseError: BaseError{Code: "stock_conflict", Message: "stock changed during checkout, retry"},
		VariantID: variantID,
		Requested: requested,
	}
}
