package dto

import (
	"github.com/fekuna/bao-console/internal/model"
	"github.com/shopspring/decimal"
)

type OrderFilters struct {
	Search string // order id, product name, status
	Status string // "all" or empty disables
}

type OrderBody struct {
	ProductID   int64             `json:"productId"`
	DateToClaim model.Timestamp   `json:"dateToClaim"`
	Status      model.OrderStatus `json:"status"`
	Amount      decimal.Decimal   `json:"amount"`
}

type OrderPatch struct {
	DateClaimed *model.Timestamp   `json:"dateClaimed,omitempty"`
	Status      *model.OrderStatus `json:"status,omitempty"`
}

func (p OrderPatch) Empty() bool {
	return p.DateClaimed == nil && p.Status == nil
}
