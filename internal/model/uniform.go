package model

import "strings"

type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

// Sizes is ordered smallest first.
var Sizes = []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL}

func ParseSize(s string) (Size, bool) {
	return parseEnum(Sizes, s)
}

// Rank orders sizes XS..XXL; unknown sizes sort last.
func (s Size) Rank() int {
	for i, v := range Sizes {
		if v == s {
			return i
		}
	}
	return len(Sizes)
}

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderUnisex Gender = "Unisex"
)

var Genders = []Gender{GenderMale, GenderFemale, GenderUnisex}

func ParseGender(s string) (Gender, bool) {
	return parseEnum(Genders, s)
}

type UniformType string

const (
	UniformStandard UniformType = "Standard Uniform"
	UniformPE       UniformType = "PE Uniform"
	UniformNSTP     UniformType = "NSTP Uniform"
)

var UniformTypes = []UniformType{UniformStandard, UniformPE, UniformNSTP}

// ParseUniformType also accepts the short forms "Standard", "PE" and "NSTP".
func ParseUniformType(s string) (UniformType, bool) {
	if t, ok := parseEnum(UniformTypes, s); ok {
		return t, true
	}
	return parseEnum(UniformTypes, strings.TrimSpace(s)+" Uniform")
}

type Piece string

const (
	PieceShirt Piece = "Shirt"
	PiecePants Piece = "Pants"
	PiecePolo  Piece = "Polo"
	PieceSkirt Piece = "Skirt"
)

var Pieces = []Piece{PieceShirt, PiecePants, PiecePolo, PieceSkirt}

func ParsePiece(s string) (Piece, bool) {
	return parseEnum(Pieces, s)
}

// UniformVariant is one size/gender/type row of a Uniform product. Quantity is shown
// when the server sends it but stock is tracked on the parent product.
type UniformVariant struct {
	ID        int64       `json:"uniformId"`
	ProductID int64       `json:"productId"`
	Size      Size        `json:"sizeType"`
	Gender    Gender      `json:"gender"`
	Type      UniformType `json:"type"`
	Piece     Piece       `json:"piece,omitempty"`
	Buyer     string      `json:"buyer,omitempty"`
	Quantity  *int        `json:"quantity,omitempty"`
	Product   *Product    `json:"product,omitempty"`
}

func parseEnum[T ~string](values []T, s string) (T, bool) {
	s = strings.TrimSpace(s)
	for _, v := range values {
		if strings.EqualFold(string(v), s) {
			return v, true
		}
	}
	var zero T
	return zero, false
}
