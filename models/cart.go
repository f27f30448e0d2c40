package models

import (
	"context"
	"time"

	db "shopora-backend/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CartItem struct {
	ProductID primitive.ObjectID `json:"product_id" bson:"product_id"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	AddedAt   time.Time          `json:"added_at" bson:"added_at"`
}

// Cart is one document per user, enforced by the unique user_id index.
type Cart struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id"`
	Items     []CartItem         `json:"items" bson:"items"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// GetCartByUser returns the user's cart, creating an empty one on first use.
func GetCartByUser(ctx context.Context, userID primitive.ObjectID) (Cart, error) {
	var cart Cart
	err := db.CartCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		cart = Cart{
			ID:        primitive.NewObjectID(),
			UserID:    userID,
			Items:     []CartItem{},
			UpdatedAt: time.Now(),
		}
		_, err = db.CartCollection.InsertOne(ctx, cart)
	}
	return cart, err
}

// UpsertCartItem sets the quantity for a product, merging with an existing
// line when present.
func UpsertCartItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int, merge bool) (Cart, error) {
	cart, err := GetCartByUser(ctx, userID)
	if err != nil {
		return Cart{}, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			if merge {
				cart.Items[i].Quantity += quantity
			} else {
				cart.Items[i].Quantity = quantity
			}
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, CartItem{
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   time.Now(),
		})
	}

	return saveCartItems(ctx, userID, cart.Items)
}

func RemoveCartItem(ctx context.Context, userID, productID primitive.ObjectID) (Cart, error) {
	cart, err := GetCartByUser(ctx, userID)
	if err != nil {
		return Cart{}, err
	}

	items := make([]CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	return saveCartItems(ctx, userID, items)
}

func ClearCart(ctx context.Context, userID primitive.ObjectID) error {
	_, err := saveCartItems(ctx, userID, []CartItem{})
	return err
}

func saveCartItems(ctx context.Context, userID primitive.ObjectID, items []CartItem) (Cart, error) {
	var cart Cart
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	err := db.CartCollection.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"items": items, "updated_at": time.Now()}},
		opts,
	).Decode(&cart)
	return cart, err
}
