package dto

import "github.com/fekuna/bao-console/internal/model"

type ProductFilters struct {
	Search   string // name, category
	Category string // "all" or empty disables
	InStock  bool
}

type DriftRow struct {
	Product model.Product
	Stored  string
	Derived model.StockStatus
	Fixed   bool
}
