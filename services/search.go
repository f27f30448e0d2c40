package services

import (
	"context"
	"time"

	db "shopora-backend/database"
	"shopora-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductQuery holds the public catalog filters.
type ProductQuery struct {
	Keyword      string
	Category     string
	MinPrice     float64
	MaxPrice     float64
	HomeDelivery bool
	StorePickup  bool
	InStockOnly  bool
	Sort         string // "price_asc", "price_desc", "newest"
	Page         int64
	PageSize     int64
}

// Filter builds the Mongo filter for the query. Keyword matches name,
// description and category case-insensitively.
func (q ProductQuery) Filter() bson.M {
	filter := bson.M{}

	if q.Keyword != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": q.Keyword, "$options": "i"}},
			{"description": bson.M{"$regex": q.Keyword, "$options": "i"}},
			{"category": bson.M{"$regex": q.Keyword, "$options": "i"}},
		}
	}
	if q.Category != "" {
		filter["category"] = q.Category
	}

	price := bson.M{}
	if q.MinPrice > 0 {
		price["$gte"] = q.MinPrice
	}
	if q.MaxPrice > 0 {
		price["$lte"] = q.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	if q.HomeDelivery {
		filter["delivery_options.home_delivery"] = true
	}
	if q.StorePickup {
		filter["delivery_options.store_pickup"] = true
	}
	if q.InStockOnly {
		filter["stock"] = bson.M{"$gt": 0}
	}

	return filter
}

// FindOptions builds sort and pagination options. Page numbers start at 1;
// page size is clamped to 100.
func (q ProductQuery) FindOptions() *options.FindOptions {
	opts := options.Find()

	switch q.Sort {
	case "price_asc":
		opts.SetSort(bson.D{{Key: "price", Value: 1}})
	case "price_desc":
		opts.SetSort(bson.D{{Key: "price", Value: -1}})
	default:
		opts.SetSort(bson.D{{Key: "created_at", Value: -1}})
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.PageSize
	if size < 1 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	opts.SetSkip((page - 1) * size)
	opts.SetLimit(size)

	return opts
}

// SearchProducts runs the query and returns the matching page plus the total
// match count for pagination.
func SearchProducts(q ProductQuery) ([]models.Product, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := q.Filter()

	total, err := db.ProductCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	cursor, err := db.ProductCollection.Find(ctx, filter, q.FindOptions())
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}
