package dto

import "time"

// CreateOrderInput is a reservation request. Amount is computed from the product price.
type CreateOrderInput struct {
	ProductID   int64
	Quantity    int `validate:"gte=1"`
	DateToClaim time.Time
	Status      string // defaults to pending
}

type UpdateOrderInput struct {
	ID          int64
	Status      *string
	DateClaimed *time.Time
}
