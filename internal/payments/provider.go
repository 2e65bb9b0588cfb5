package payments

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
)

var ErrProviderDisabled = errors.New("payments: provider disabled")

type CheckoutLineItem struct {
	Name      string
	Quantity  int64
	UnitPrice decimal.Decimal
	SKU       string
}

type CheckoutSessionRequest struct {
	OrderID        string
	Currency       string
	CustomerEmail  string
	SuccessURL     string
	CancelURL      string
	Locale         string
	Metadata       map[string]string
	IdempotencyKey string
	Items          []CheckoutLineItem
}

type CheckoutSession struct {
	ID          string
	Provider    string
	RedirectURL string
}

type Provider interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (CheckoutSession, error)
}

// Disabled используется, когда платёжный провайдер не настроен.
type Disabled struct{}

func (Disabled) CreateCheckoutSession(context.Context, CheckoutSessionRequest) (CheckoutSession, error) {
	return CheckoutSession{}, ErrProviderDisabled
}

// ToMinorUnits переводит сумму в минимальные единицы валюты (центы), округляя до целого.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// NormalizeLocale приводит тег языка к базовому коду ("es-AR" -> "es").
// Неизвестные теги дают пустую строку: провайдер выберет язык сам.
func NormalizeLocale(tag string) string {
	tag = strings.TrimSpace(strings.ReplaceAll(tag, "_", "-"))
	if tag == "" {
		return ""
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return ""
	}
	base, conf := parsed.Base()
	if conf == language.No {
		return ""
	}
	return base.String()
}
