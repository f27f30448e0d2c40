package services

import (
	"testing"

	"shopora-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestItemsTotal(t *testing.T) {
	items := []models.OrderItem{
		{UnitPrice: 19.99, Quantity: 2},
		{UnitPrice: 4.50, Quantity: 1},
	}
	assert.Equal(t, 44.48, ItemsTotal(items))
	assert.Equal(t, 0.0, ItemsTotal(nil))
}

func TestShippingFor(t *testing.T) {
	assert.Equal(t, ShippingFee, ShippingFor(10.0))
	assert.Equal(t, ShippingFee, ShippingFor(49.99))
	// The threshold itself ships free.
	assert.Equal(t, 0.0, ShippingFor(FreeShippingThreshold))
	assert.Equal(t, 0.0, ShippingFor(120.0))
}

func TestPriceOrder(t *testing.T) {
	order := &models.Order{
		Items: []models.OrderItem{{UnitPrice: 15.0, Quantity: 2}},
	}
	PriceOrder(order)
	assert.Equal(t, 30.0, order.ItemsTotal)
	assert.Equal(t, ShippingFee, order.ShippingFee)
	assert.Equal(t, 35.0, order.Total)

	order.Items = []models.OrderItem{{UnitPrice: 25.0, Quantity: 3}}
	PriceOrder(order)
	assert.Equal(t, 75.0, order.ItemsTotal)
	assert.Equal(t, 0.0, order.ShippingFee)
	assert.Equal(t, 75.0, order.Total)
}

func TestAmountInCents(t *testing.T) {
	assert.Equal(t, int64(1999), AmountInCents(19.99))
	assert.Equal(t, int64(5000), AmountInCents(50.0))
	// Float noise rounds to the nearest cent.
	assert.Equal(t, int64(30), AmountInCents(0.1+0.2))
	assert.Equal(t, int64(0), AmountInCents(0))
}
