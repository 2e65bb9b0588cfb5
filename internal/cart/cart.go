// Package cart: корзина как обычное значение; загрузка и сохранение явно
// через реализацию Persistence.
package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Line struct {
	VariantID    uuid.UUID       `json:"variant_id"`
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductSlug  string          `json:"product_slug"`
	VariantLabel string          `json:"variant_label,omitempty"`
	Image        string          `json:"image,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Cart struct {
	OwnerID   string    `json:"owner_id"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

func New(ownerID string) *Cart {
	return &Cart{OwnerID: ownerID, Lines: []Line{}}
}

func (c *Cart) index(variantID uuid.UUID) int {
	for i, l := range c.Lines {
		if l.VariantID == variantID {
			return i
		}
	}
	return -1
}

// Add добавляет строку; для уже лежащего в корзине варианта складывает количество
// и обновляет описание и цену.
func (c *Cart) Add(l Line) {
	if l.Quantity <= 0 {
		return
	}
	if i := c.index(l.VariantID); i >= 0 {
		l.Quantity += c.Lines[i].Quantity
		c.Lines[i] = l
		return
	}
	c.Lines = append(c.Lines, l)
}

// SetQuantity заменяет количество; qty <= 0 удаляет строку.
func (c *Cart) SetQuantity(variantID uuid.UUID, qty int) bool {
	i := c.index(variantID)
	if i < 0 {
		return false
	}
	if qty <= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		return true
	}
	c.Lines[i].Quantity = qty
	return true
}

func (c *Cart) Remove(variantID uuid.UUID) bool {
	return c.SetQuantity(variantID, 0)
}

func (c *Cart) Clear() { c.Lines = []Line{} }

func (c *Cart) Quantity(variantID uuid.UUID) int {
	if i := c.index(variantID); i >= 0 {
		return c.Lines[i].Quantity
	}
	return 0
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Count: общее количество единиц товара.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool { return len(c.Lines) == 0 }
