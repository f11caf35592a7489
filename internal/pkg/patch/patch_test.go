package patch

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	same := " Ana "
	other := "Bea"
	assert.Nil(t, String("Ana", nil))
	assert.Nil(t, String("Ana", &same))
	assert.Equal(t, "Bea", *String("Ana", &other))
}

func TestInt(t *testing.T) {
	five, six := 5, 6
	assert.Nil(t, Int(5, &five))
	assert.Equal(t, 6, *Int(5, &six))
}

func TestDecimal(t *testing.T) {
	a := decimal.RequireFromString("10.00")
	b := decimal.RequireFromString("12.5")
	assert.Nil(t, Decimal(decimal.RequireFromString("10"), &a))
	assert.True(t, b.Equal(*Decimal(a, &b)))
}
