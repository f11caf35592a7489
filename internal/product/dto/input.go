package dto

import (
	"github.com/fekuna/bao-console/internal/model"
	"github.com/shopspring/decimal"
)

type CreateProductInput struct {
	Name     string `validate:"required"`
	Category string `validate:"required"`
	Price    decimal.Decimal
	Quantity int `validate:"gte=0"`
	Image    *string
}

// UpdateProductInput carries the edited form; nil fields were not touched.
type UpdateProductInput struct {
	ID       int64
	Name     *string
	Category *string
	Price    *decimal.Decimal
	Quantity *int
	Image    *string
}

// ProductBody is the create request. Status is required by the server and always
// derived from Quantity.
type ProductBody struct {
	Name     string            `json:"productName"`
	Category model.Category    `json:"productCategory"`
	Price    decimal.Decimal   `json:"price"`
	Status   model.StockStatus `json:"status"`
	Quantity int               `json:"quantity"`
	Image    *string           `json:"image,omitempty"`
}

type ProductPatch struct {
	Name     *string            `json:"productName,omitempty"`
	Category *model.Category    `json:"productCategory,omitempty"`
	Price    *decimal.Decimal   `json:"price,omitempty"`
	Status   *model.StockStatus `json:"status,omitempty"`
	Quantity *int               `json:"quantity,omitempty"`
	Image    *string            `json:"image,omitempty"`
}

func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Category == nil && p.Price == nil && p.Status == nil && p.Quantity == nil && p.Image == nil
}
