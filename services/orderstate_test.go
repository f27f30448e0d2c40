package services

import (
	"testing"

	"shopora-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    string
		to      string
		actor   string
		allowed bool
	}{
		{"webhook marks paid", models.OrderStatusPending, models.OrderStatusPaid, ActorSystem, true},
		{"customer cannot mark paid", models.OrderStatusPending, models.OrderStatusPaid, models.RoleCustomer, false},
		{"customer cancels pending", models.OrderStatusPending, models.OrderStatusCancelled, models.RoleCustomer, true},
		{"expiry job cancels pending", models.OrderStatusPending, models.OrderStatusCancelled, ActorSystem, true},
		{"seller starts fulfilment", models.OrderStatusPaid, models.OrderStatusProcessing, models.RoleSeller, true},
		{"vendor starts fulfilment", models.OrderStatusPaid, models.OrderStatusProcessing, models.RoleVendor, true},
		{"customer cannot start fulfilment", models.OrderStatusPaid, models.OrderStatusProcessing, models.RoleCustomer, false},
		{"seller ships", models.OrderStatusProcessing, models.OrderStatusShipped, models.RoleSeller, true},
		{"customer confirms delivery", models.OrderStatusShipped, models.OrderStatusDelivered, models.RoleCustomer, true},
		{"seller cannot confirm delivery", models.OrderStatusShipped, models.OrderStatusDelivered, models.RoleSeller, false},
		{"admin cancels after payment", models.OrderStatusPaid, models.OrderStatusCancelled, models.RoleAdmin, true},
		{"customer cannot cancel after payment", models.OrderStatusPaid, models.OrderStatusCancelled, models.RoleCustomer, false},
		{"no skipping to shipped", models.OrderStatusPending, models.OrderStatusShipped, models.RoleAdmin, false},
		{"delivered is terminal", models.OrderStatusDelivered, models.OrderStatusCancelled, models.RoleAdmin, false},
		{"cancelled is terminal", models.OrderStatusCancelled, models.OrderStatusPending, models.RoleAdmin, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CanTransition(tc.from, tc.to, tc.actor)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidTransitionsFrom(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{models.OrderStatusPaid, models.OrderStatusCancelled},
		ValidTransitionsFrom(models.OrderStatusPending))
	assert.ElementsMatch(t,
		[]string{models.OrderStatusProcessing, models.OrderStatusCancelled},
		ValidTransitionsFrom(models.OrderStatusPaid))
	assert.Empty(t, ValidTransitionsFrom(models.OrderStatusDelivered))
	assert.Empty(t, ValidTransitionsFrom(models.OrderStatusCancelled))
}
