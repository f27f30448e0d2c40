package models

import (
	"context"
	"testing"

	db "shopora-backend/database"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestCompareAndSetOrderStatus(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("claims the transition while the status still matches", func(mt *mtest.T) {
		db.OrderCollection = mt.Coll
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "n", Value: 1},
			{Key: "nModified", Value: 1},
		})

		err := CompareAndSetOrderStatus(context.Background(), primitive.NewObjectID(), OrderStatusPending, OrderStatusPaid)
		assert.NoError(mt, err)
	})

	mt.Run("reports a lost race when the order already moved on", func(mt *mtest.T) {
		db.OrderCollection = mt.Coll
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "n", Value: 0},
			{Key: "nModified", Value: 0},
		})

		err := CompareAndSetOrderStatus(context.Background(), primitive.NewObjectID(), OrderStatusPending, OrderStatusCancelled)
		assert.ErrorIs(mt, err, mongo.ErrNoDocuments)
	})
}
