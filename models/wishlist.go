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

// Wishlist is one document per user, enforced by the unique user_id index.
type Wishlist struct {
	ID         primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	UserID     primitive.ObjectID   `json:"user_id" bson:"user_id"`
	ProductIDs []primitive.ObjectID `json:"product_ids" bson:"product_ids"`
	UpdatedAt  time.Time            `json:"updated_at" bson:"updated_at"`
}

func GetWishlistByUser(ctx context.Context, userID primitive.ObjectID) (Wishlist, error) {
	var wishlist Wishlist
	err := db.WishlistCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&wishlist)
	if err == mongo.ErrNoDocuments {
		wishlist = Wishlist{
			ID:         primitive.NewObjectID(),
			UserID:     userID,
			ProductIDs: []primitive.ObjectID{},
			UpdatedAt:  time.Now(),
		}
		_, err = db.WishlistCollection.InsertOne(ctx, wishlist)
	}
	return wishlist, err
}

// AddToWishlist adds productID with $addToSet, so adding twice is a no-op.
func AddToWishlist(ctx context.Context, userID, productID primitive.ObjectID) (Wishlist, error) {
	var wishlist Wishlist
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	err := db.WishlistCollection.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$addToSet": bson.M{"product_ids": productID},
			"$set":      bson.M{"updated_at": time.Now()},
		},
		opts,
	).Decode(&wishlist)
	return wishlist, err
}

func RemoveFromWishlist(ctx context.Context, userID, productID primitive.ObjectID) (Wishlist, error) {
	var wishlist Wishlist
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := db.WishlistCollection.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$pull": bson.M{"product_ids": productID},
			"$set":  bson.M{"updated_at": time.Now()},
		},
		opts,
	).Decode(&wishlist)
	return wishlist, err
}
