package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGeoPoint(t *testing.T) {
	p := NewGeoPoint(100.5018, 13.7563)
	assert.Equal(t, "Point", p.Type)
	// GeoJSON order is longitude first.
	assert.Equal(t, []float64{100.5018, 13.7563}, p.Coordinates)
}

func TestSellerCanSell(t *testing.T) {
	seller := Seller{Status: SellerStatusApproved}
	assert.True(t, seller.CanSell())

	seller.Suspended = true
	assert.False(t, seller.CanSell())

	assert.False(t, (&Seller{Status: SellerStatusPending}).CanSell())
	assert.False(t, (&Seller{Status: SellerStatusRejected}).CanSell())
}
