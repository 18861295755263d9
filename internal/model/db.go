package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           string `gorm:"primaryKey;size:64;not null"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	DisplayName  string `gorm:"size:128"`
	PhotoURL     string `gorm:"size:512"`
	PasswordHash string `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Product is a sellable service plan, priced per month.
type Product struct {
	ID          string          `gorm:"primaryKey;size:64;not null"` // product sku
	Name        string          `gorm:"size:128;not null"`
	Description string          `gorm:"size:512"`
	Category    string          `gorm:"size:32;index;not null"` // CLOUD, AI, NETWORK
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SortOrder   int             `gorm:"not null;default:0"`
}

// CartItem is one product in a visitor's cart. A product appears at most once per owner.
type CartItem struct {
	ID          uint            `gorm:"primaryKey" json:"-"`
	OwnerID     string          `gorm:"size:64;uniqueIndex:idx_cart_owner_product;not null" json:"-"`
	ProductID   string          `gorm:"size:64;uniqueIndex:idx_cart_owner_product;not null" json:"id"`
	Name        string          `gorm:"size:128;not null" json:"name"`
	Description string          `gorm:"size:512" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
}

func NewCartItem(p *Product) CartItem {
	return CartItem{
		ProductID:   p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
	}
}
