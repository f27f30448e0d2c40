package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestProductQueryFilterEmpty(t *testing.T) {
	assert.Equal(t, bson.M{}, ProductQuery{}.Filter())
}

func TestProductQueryFilterKeyword(t *testing.T) {
	filter := ProductQuery{Keyword: "lamp"}.Filter()

	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 3)
	assert.Equal(t, bson.M{"$regex": "lamp", "$options": "i"}, or[0]["name"])
	assert.Equal(t, bson.M{"$regex": "lamp", "$options": "i"}, or[1]["description"])
	assert.Equal(t, bson.M{"$regex": "lamp", "$options": "i"}, or[2]["category"])
}

func TestProductQueryFilterPriceRange(t *testing.T) {
	filter := ProductQuery{MinPrice: 10, MaxPrice: 99.5}.Filter()
	assert.Equal(t, bson.M{"$gte": 10.0, "$lte": 99.5}, filter["price"])

	filter = ProductQuery{MinPrice: 10}.Filter()
	assert.Equal(t, bson.M{"$gte": 10.0}, filter["price"])

	filter = ProductQuery{}.Filter()
	assert.NotContains(t, filter, "price")
}

func TestProductQueryFilterFlags(t *testing.T) {
	filter := ProductQuery{
		Category:     "toys",
		HomeDelivery: true,
		StorePickup:  true,
		InStockOnly:  true,
	}.Filter()

	assert.Equal(t, "toys", filter["category"])
	assert.Equal(t, true, filter["delivery_options.home_delivery"])
	assert.Equal(t, true, filter["delivery_options.store_pickup"])
	assert.Equal(t, bson.M{"$gt": 0}, filter["stock"])
}

func TestProductQueryFindOptionsSort(t *testing.T) {
	opts := ProductQuery{Sort: "price_asc"}.FindOptions()
	assert.Equal(t, bson.D{{Key: "price", Value: 1}}, opts.Sort)

	opts = ProductQuery{Sort: "price_desc"}.FindOptions()
	assert.Equal(t, bson.D{{Key: "price", Value: -1}}, opts.Sort)

	// Anything else sorts newest first.
	opts = ProductQuery{Sort: "bogus"}.FindOptions()
	assert.Equal(t, bson.D{{Key: "created_at", Value: -1}}, opts.Sort)
}

func TestProductQueryFindOptionsPagination(t *testing.T) {
	opts := ProductQuery{Page: 3, PageSize: 10}.FindOptions()
	assert.Equal(t, int64(20), *opts.Skip)
	assert.Equal(t, int64(10), *opts.Limit)

	// Defaults kick in for missing or nonsense values.
	opts = ProductQuery{Page: 0, PageSize: 0}.FindOptions()
	assert.Equal(t, int64(0), *opts.Skip)
	assert.Equal(t, int64(20), *opts.Limit)

	opts = ProductQuery{Page: -2, PageSize: 500}.FindOptions()
	assert.Equal(t, int64(0), *opts.Skip)
	assert.Equal(t, int64(100), *opts.Limit)
}
