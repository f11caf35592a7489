package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveStatus(t *testing.T) {
	assert.Equal(t, StatusOutOfStock, DeriveStatus(0))
	assert.Equal(t, StatusOutOfStock, DeriveStatus(-3))
	for q := 1; q <= 10; q++ {
		assert.Equal(t, StatusLowStock, DeriveStatus(q), "quantity %d", q)
	}
	for _, q := range []int{11, 12, 50, 10000} {
		assert.Equal(t, StatusInStock, DeriveStatus(q), "quantity %d", q)
	}
}

func TestProductStatusIgnoresStoredValue(t *testing.T) {
	p := Product{Quantity: 0, StoredStatus: "Available"}
	assert.Equal(t, StatusOutOfStock, p.Status())
	assert.True(t, p.Drifted())

	p = Product{Quantity: 4, StoredStatus: "Low Stock"}
	assert.False(t, p.Drifted())
}

func TestParseEnums(t *testing.T) {
	c, ok := ParseCategory("uniform")
	assert.True(t, ok)
	assert.Equal(t, CategoryUniform, c)
	_, ok = ParseCategory("Food")
	assert.False(t, ok)

	ut, ok := ParseUniformType("PE")
	assert.True(t, ok)
	assert.Equal(t, UniformPE, ut)
	ut, ok = ParseUniformType("standard uniform")
	assert.True(t, ok)
	assert.Equal(t, UniformStandard, ut)

	s, ok := ParseSize("xxl")
	assert.True(t, ok)
	assert.Equal(t, SizeXXL, s)
	assert.Less(t, SizeXS.Rank(), SizeXXL.Rank())
	assert.Equal(t, len(Sizes), Size("4XL").Rank())
}

func TestOrderDecodeFromBackend(t *testing.T) {
	payload := `{
		"orderId": 7,
		"productId": 3,
		"dateToClaim": "2025-06-02T00:00:00",
		"dateClaimed": null,
		"status": "Claimed",
		"amount": "1250.50",
		"createdAt": "2025-06-01T09:15:00",
		"product": {"productId": 3, "productName": "PE Shirt", "productCategory": "Uniform", "price": 625.25, "status": "Available", "quantity": 12}
	}`

	var o Order
	require.NoError(t, json.Unmarshal([]byte(payload), &o))

	assert.Equal(t, OrderClaimed, o.Status)
	assert.True(t, decimal.RequireFromString("1250.5").Equal(o.Amount))
	assert.Nil(t, o.DateClaimed)
	require.NotNil(t, o.CreatedAt)
	assert.Equal(t, time.June, o.CreatedAt.Month())
	assert.Equal(t, 9, o.CreatedAt.Hour())
	assert.Equal(t, "PE Shirt", o.ProductName(nil))
	assert.Equal(t, StatusInStock, o.Product.Status())
}

func TestOrderProductNameFallback(t *testing.T) {
	products := []Product{{ID: 1, Name: "Calculus"}}

	assert.Equal(t, "Calculus", Order{ProductID: 1}.ProductName(products))
	assert.Equal(t, UnknownProductName, Order{ProductID: 99}.ProductName(products))
	assert.Equal(t, "Unknown Product", Order{ProductID: 99}.ProductName(nil))
}

func TestTimestampWireFormat(t *testing.T) {
	ts := NewTimestamp(time.Date(2025, 6, 2, 8, 30, 0, 0, time.Local))
	b, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-02T08:30:00"`, string(b))

	var zero Timestamp
	b, err = json.Marshal(zero)
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	_, err = ParseTimestamp("not a date")
	assert.Error(t, err)
}

func TestOrderAmount(t *testing.T) {
	amount := OrderAmount(decimal.RequireFromString("199.99"), 3)
	assert.Equal(t, "599.97", amount.StringFixed(2))
}

func TestUserDisplayName(t *testing.T) {
	u := &User{Email: "student1@example.com", Role: RoleStudent}
	assert.Equal(t, "student1@example.com", u.DisplayName())
	u.EntityData = &EntityData{FirstName: "Ana", LastName: "Cruz"}
	assert.Equal(t, "Ana Cruz", u.DisplayName())
	assert.False(t, u.IsAdmin())
}
