package services

import (
	"math"

	"shopora-backend/models"
)

// Flat shipping fee, waived above the free-shipping threshold.
const (
	ShippingFee           = 5.0
	FreeShippingThreshold = 50.0
)

// ItemsTotal sums quantity times the snapshotted unit price.
func ItemsTotal(items []models.OrderItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return roundMoney(total)
}

// ShippingFor returns the shipping fee for an items total.
func ShippingFor(itemsTotal float64) float64 {
	if itemsTotal >= FreeShippingThreshold {
		return 0
	}
	return ShippingFee
}

// PriceOrder fills in ItemsTotal, ShippingFee and Total from the line items.
func PriceOrder(order *models.Order) {
	order.ItemsTotal = ItemsTotal(order.Items)
	order.ShippingFee = ShippingFor(order.ItemsTotal)
	order.Total = roundMoney(order.ItemsTotal + order.ShippingFee)
}

// AmountInCents converts a money amount to Stripe's minor units.
func AmountInCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func roundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
