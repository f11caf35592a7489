package dto

import "github.com/fekuna/bao-console/internal/model"

type UniformFilters struct {
	Search string // product name, size, type, gender
	Type   string // "all" or empty disables
}

type UniformProductResult struct {
	Product  *model.Product
	Variants []model.UniformVariant
}
