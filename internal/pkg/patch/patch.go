// Package patch builds partial-update bodies: a field is sent only when it changed.
package patch

import (
	"strings"

	"github.com/shopspring/decimal"
)

// String returns the trimmed next value when it differs from cur, nil otherwise.
func String(cur string, next *string) *string {
	if next == nil {
		return nil
	}
	v := strings.TrimSpace(*next)
	if v == cur {
		return nil
	}
	return &v
}

func Int(cur int, next *int) *int {
	if next == nil || *next == cur {
		return nil
	}
	v := *next
	return &v
}

func Decimal(cur decimal.Decimal, next *decimal.Decimal) *decimal.Decimal {
	if next == nil || next.Equal(cur) {
		return nil
	}
	v := *next
	return &v
}
