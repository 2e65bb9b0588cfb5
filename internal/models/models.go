package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

type Customer struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_customers_user_id"`
	Email    string    `gorm:"type:text;not null"`
	FullName string    `gorm:"type:text;not null"`
	Phone    *string   `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (Customer) TableName() string { return "customers" }

// Address неизменяем после создания; каждый заказ пишет новую строку.
type Address struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	AddressLine1 string    `gorm:"type:text;not null"`
	AddressLine2 *string   `gorm:"type:text"`
	City         string    `gorm:"type:text;not null"`
	State        string    `gorm:"type:text;not null"`
	PostalCode   *string   `gorm:"type:text"`
	Country      string    `gorm:"type:text;not null"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (Address) TableName() string { return "addresses" }

type Category struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name  string    `gorm:"type:text;not null"`
	Slug  string    `gorm:"type:text;not null;uniqueIndex:ux_categories_slug"`
	Image *string   `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Category) TableName() string { return "categories" }

type Product struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string     `gorm:"type:text;not null"`
	Brand       string     `gorm:"type:text;not null;index"`
	Slug        string     `gorm:"type:text;not null;uniqueIndex:ux_products_slug"`
	Features    StringList `gorm:"type:jsonb;not null;default:'[]'"`
	Description string     `gorm:"type:text"`
	Images      StringList `gorm:"type:jsonb;not null;default:'[]'"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index"`
	IsActive    bool       `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Variants []Variant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (Product) TableName() string { return "products" }

type Variant struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Color     *string         `gorm:"type:text"`
	ColorName *string         `gorm:"type:text"`
	Storage   *string         `gorm:"type:text"`
	Finish    *string         `gorm:"type:text"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Stock     int             `gorm:"type:int;not null;default:0"` // CHECK stock >= 0 в миграции
	IsActive  bool            `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Variant) TableName() string { return "variants" }

type Order struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	AddressID        uuid.UUID       `gorm:"type:uuid;not null"`
	TotalAmount      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Status           OrderStatus     `gorm:"type:text;not null;default:'pending';index"`
	PaymentReference *string         `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Customer *Customer   `gorm:"foreignKey:CustomerID"`
	Address  *Address    `gorm:"foreignKey:AddressID"`
	Items    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

// OrderItem.Price: снимок цены варианта на момент заказа.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:ux_order_items_order_variant"`
	VariantID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:ux_order_items_order_variant"`
	Quantity  int             `gorm:"type:int;not null"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (OrderItem) TableName() string { return "order_items" }

type Partner struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name     string    `gorm:"type:text;not null"`
	Logo     *string   `gorm:"type:text"`
	Website  *string   `gorm:"type:text"`
	IsActive bool      `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null;default:now();index"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

func (Partner) TableName() string { return "partners" }
