package dto

import (
	"time"

	"github.com/fekuna/bao-console/internal/model"
)

type LowStockFilters struct {
	// Threshold lists quantities strictly below it; 0 means the low stock status.
	Threshold   int
	IncludeZero bool
}

// Movement records one stock adjustment.
type Movement struct {
	Product        model.Product
	QuantityBefore int
	QuantityAfter  int
	Reason         string
	At             time.Time
}

func (m Movement) Change() int {
	return m.QuantityAfter - m.QuantityBefore
}

func (m Movement) StatusChanged() bool {
	return model.DeriveStatus(m.QuantityBefore) != model.DeriveStatus(m.QuantityAfter)
}
