package dto

import (
	"github.com/fekuna/bao-console/internal/model"
	"github.com/shopspring/decimal"
)

type CategoryFilters struct {
	// IncludeEmpty also lists categories with no products.
	IncludeEmpty bool
}

// CategorySummary is the stock position of one product category.
type CategorySummary struct {
	Category   model.Category
	Products   int
	Units      int
	LowStock   int
	OutOfStock int
	StockValue decimal.Decimal
}
