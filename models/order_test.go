package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestOrderContainsOwner(t *testing.T) {
	ownerA := primitive.NewObjectID()
	ownerB := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	order := Order{Items: []OrderItem{
		{OwnerID: ownerA},
		{OwnerID: ownerB},
	}}

	assert.True(t, order.ContainsOwner(ownerA))
	assert.True(t, order.ContainsOwner(ownerB))
	assert.False(t, order.ContainsOwner(stranger))
	assert.False(t, (&Order{}).ContainsOwner(ownerA))
}
