package model

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderReady      OrderStatus = "ready"
	OrderClaimed    OrderStatus = "claimed"
	OrderCancelled  OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{OrderPending, OrderProcessing, OrderReady, OrderClaimed, OrderCancelled}

// ParseOrderStatus is case-insensitive ("Claimed" and "claimed" are the same status).
func ParseOrderStatus(s string) (OrderStatus, bool) {
	return parseEnum(OrderStatuses, s)
}

// UnmarshalJSON keeps unknown statuses verbatim but folds known ones to canonical case.
func (s *OrderStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if st, ok := ParseOrderStatus(raw); ok {
		*s = st
		return nil
	}
	*s = OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	return nil
}

type Order struct {
	ID          int64           `json:"orderId"`
	ProductID   int64           `json:"productId"`
	DateToClaim Timestamp       `json:"dateToClaim"`
	DateClaimed *Timestamp      `json:"dateClaimed,omitempty"`
	Status      OrderStatus     `json:"status"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   *Timestamp      `json:"createdAt,omitempty"`
	Product     *Product        `json:"product,omitempty"`
	Student     *Student        `json:"student,omitempty"`
}

// ProductName prefers the embedded product, then the given list, then UnknownProductName.
func (o Order) ProductName(products []Product) string {
	if o.Product != nil && o.Product.Name != "" {
		return o.Product.Name
	}
	return ProductName(products, o.ProductID)
}

// OrderAmount is price × quantity, fixed at creation.
func OrderAmount(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}
