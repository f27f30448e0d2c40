package controllers

import (
	"context"
	"net/http"
	"time"

	db "shopora-backend/database"
	"shopora-backend/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetWishlist returns the wishlist resolved to product documents.
func GetWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wishlist, err := models.GetWishlistByUser(ctx, userID)
	if err != nil {
		c.Error(err)
		return
	}

	products := []models.Product{}
	if len(wishlist.ProductIDs) > 0 {
		cursor, err := db.ProductCollection.Find(ctx, bson.M{"_id": bson.M{"$in": wishlist.ProductIDs}})
		if err != nil {
			c.Error(err)
			return
		}
		defer cursor.Close(ctx)
		if err := cursor.All(ctx, &products); err != nil {
			c.Error(err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// AddToWishlist adds a product ref; adding the same product twice is a no-op.
func AddToWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := pathObjectID(c, "productId")
	if !ok {
		return
	}

	if _, err := models.GetProductByID(productID); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else {
			c.Error(err)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wishlist, err := models.AddToWishlist(ctx, userID, productID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, wishlist)
}

// RemoveFromWishlist removes a product ref.
func RemoveFromWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := pathObjectID(c, "productId")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wishlist, err := models.RemoveFromWishlist(ctx, userID, productID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, wishlist)
}
