package dto

import (
	"github.com/fekuna/bao-console/internal/model"
	productDTO "github.com/fekuna/bao-console/internal/product/dto"
)

type CreateVariantInput struct {
	ProductID int64
	Size      string `validate:"required"`
	Gender    string `validate:"required"`
	Type      string `validate:"required"`
	Piece     string
	Buyer     string
	Quantity  *int
}

type VariantSpec struct {
	Size   string
	Gender string
	Type   string
	Piece  string
}

// CreateUniformProductInput is the combined form; Product.Category is forced to Uniform.
type CreateUniformProductInput struct {
	Product  productDTO.CreateProductInput
	Variants []VariantSpec
}

type VariantBody struct {
	ProductID int64             `json:"productId"`
	Size      model.Size        `json:"sizeType"`
	Gender    model.Gender      `json:"gender"`
	Type      model.UniformType `json:"type"`
	Piece     model.Piece       `json:"piece,omitempty"`
	Buyer     string            `json:"buyer,omitempty"`
	Quantity  *int              `json:"quantity,omitempty"`
}
