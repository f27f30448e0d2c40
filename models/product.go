package models

import (
	"context"
	"time"

	db "shopora-backend/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type DeliveryOptions struct {
	HomeDelivery bool `json:"home_delivery" bson:"home_delivery"`
	StorePickup  bool `json:"store_pickup" bson:"store_pickup"`
}

type Product struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name            string             `json:"name" bson:"name"`
	Description     string             `json:"description" bson:"description"`
	Price           float64            `json:"price" bson:"price"`
	Stock           int                `json:"stock" bson:"stock"`
	Category        string             `json:"category" bson:"category"`
	Images          []Image            `json:"images" bson:"images"`
	DeliveryOptions DeliveryOptions    `json:"delivery_options" bson:"delivery_options"`
	OwnerID         primitive.ObjectID `json:"owner_id" bson:"owner_id"`
	OwnerRole       string             `json:"owner_role" bson:"owner_role"`
	SoldCount       int                `json:"sold_count" bson:"sold_count"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

// AddProduct inserts a new product with a fresh id and timestamps.
func AddProduct(product Product) (Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	_, err := db.ProductCollection.InsertOne(ctx, product)
	if err != nil {
		return Product{}, err
	}
	return product, nil
}

func GetProductByID(id primitive.ObjectID) (Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	return product, err
}

func GetProductsByOwner(ownerID primitive.ObjectID) ([]Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := db.ProductCollection.Find(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// UpdateProductFields applies a partial $set and returns the updated document.
func UpdateProductFields(id primitive.ObjectID, set bson.M) (Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	set["updated_at"] = time.Now()
	result, err := db.ProductCollection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return Product{}, err
	}
	if result.MatchedCount == 0 {
		return Product{}, mongo.ErrNoDocuments
	}
	return GetProductByID(id)
}

func DeleteProduct(id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.ProductCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ReserveStock decrements stock by qty only when enough stock remains.
// Returns mongo.ErrNoDocuments when the product is missing or understocked.
func ReserveStock(ctx context.Context, productID primitive.ObjectID, qty int) error {
	result, err := db.ProductCollection.UpdateOne(ctx,
		bson.M{"_id": productID, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock": -qty, "sold_count": qty}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// RestoreStock returns qty units to stock, e.g. after a cancellation.
func RestoreStock(ctx context.Context, productID primitive.ObjectID, qty int) error {
	_, err := db.ProductCollection.UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{"$inc": bson.M{"stock": qty, "sold_count": -qty}},
	)
	return err
}
