package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryBook      Category = "Book"
	CategoryUniform   Category = "Uniform"
	CategorySupplies  Category = "Supplies"
	CategoryEquipment Category = "Equipment"
	CategoryOther     Category = "Other"
)

var Categories = []Category{CategoryBook, CategoryUniform, CategorySupplies, CategoryEquipment, CategoryOther}

// ParseCategory is case-insensitive and reports false for unknown values.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, true
		}
	}
	return "", false
}

type StockStatus string

const (
	StatusOutOfStock StockStatus = "out of stock"
	StatusLowStock   StockStatus = "low stock"
	StatusInStock    StockStatus = "in stock"
)

// LowStockCeiling is the largest quantity still reported as low stock.
const LowStockCeiling = 10

// DeriveStatus is the single source of a product's stock status.
func DeriveStatus(quantity int) StockStatus {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity <= LowStockCeiling:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

type Product struct {
	ID       int64           `json:"productId"`
	Name     string          `json:"productName"`
	Category Category        `json:"productCategory"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    *string         `json:"image,omitempty"`
	// StoredStatus is whatever the server last persisted; read Status() instead.
	StoredStatus string `json:"status,omitempty"`
}

func (p Product) Status() StockStatus {
	return DeriveStatus(p.Quantity)
}

func (p Product) IsUniform() bool {
	return p.Category == CategoryUniform
}

func (p Product) InStock() bool {
	return p.Quantity > 0
}

// Drifted reports a stored status that no longer matches the quantity.
func (p Product) Drifted() bool {
	return !strings.EqualFold(strings.TrimSpace(p.StoredStatus), string(p.Status()))
}

// ProductName resolves a display name from a product list, for rows whose product is gone.
func ProductName(products []Product, id int64) string {
	for _, p := range products {
		if p.ID == id {
			return p.Name
		}
	}
	return UnknownProductName
}

const UnknownProductName = "Unknown Product"
