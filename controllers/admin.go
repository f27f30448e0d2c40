package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	db "shopora-backend/database"
	"shopora-backend/models"
	"shopora-backend/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListUsers returns all users, newest first.
func ListUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := db.UserCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.Error(err)
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// UpdateUserRole changes a user's role.
func UpdateUserRole(c *gin.Context) {
	targetID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	type RoleInput struct {
		Role string `json:"role" binding:"required,oneof=customer seller vendor admin"`
	}
	var input RoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"_id": targetID},
		bson.M{"$set": bson.M{"role": input.Role, "updated_at": time.Now()}},
	)
	if err != nil {
		c.Error(err)
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}

// DeleteUser removes a user account together with their cart and wishlist.
func DeleteUser(c *gin.Context) {
	targetID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := db.UserCollection.DeleteOne(ctx, bson.M{"_id": targetID})
	if err != nil {
		c.Error(err)
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	db.CartCollection.DeleteOne(ctx, bson.M{"user_id": targetID})
	db.WishlistCollection.DeleteOne(ctx, bson.M{"user_id": targetID})

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// ListSellers returns store applications, optionally filtered by status.
func ListSellers(c *gin.Context) {
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := db.SellerCollection.Find(ctx, filter)
	if err != nil {
		c.Error(err)
		return
	}
	defer cursor.Close(ctx)

	var sellers []models.Seller
	if err := cursor.All(ctx, &sellers); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, sellers)
}

// DecideSeller approves or rejects a pending store application. Approval
// also promotes the applicant to the seller role and sends a notification
// email.
func DecideSeller(c *gin.Context) {
	sellerID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	type DecisionInput struct {
		Approve bool `json:"approve"`
	}
	var input DecisionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var seller models.Seller
	if err := db.SellerCollection.FindOne(ctx, bson.M{"_id": sellerID}).Decode(&seller); err != nil {
		c.Error(err)
		return
	}
	if seller.Status != models.SellerStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Application already decided", "status": seller.Status})
		return
	}

	status := models.SellerStatusRejected
	if input.Approve {
		status = models.SellerStatusApproved
	}

	_, err := db.SellerCollection.UpdateOne(ctx,
		bson.M{"_id": sellerID},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		c.Error(err)
		return
	}

	if input.Approve {
		_, err = db.UserCollection.UpdateOne(ctx,
			bson.M{"_id": seller.UserID},
			bson.M{"$set": bson.M{"role": models.RoleSeller, "updated_at": time.Now()}},
		)
		if err != nil {
			c.Error(err)
			return
		}
	}

	var applicant models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"_id": seller.UserID}).Decode(&applicant); err == nil {
		if err := utils.SendSellerDecision(applicant.Email, seller.StoreName, input.Approve); err != nil {
			log.Println("Failed to send seller decision email:", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Application " + status})
}

// SuspendSeller toggles the suspended flag on a store. A suspended store
// keeps its data but cannot sell.
func SuspendSeller(c *gin.Context) {
	sellerID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	type SuspendInput struct {
		Suspended *bool `json:"suspended" binding:"required"`
	}
	var input SuspendInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.SellerCollection.UpdateOne(ctx,
		bson.M{"_id": sellerID},
		bson.M{"$set": bson.M{"suspended": *input.Suspended, "updated_at": time.Now()}},
	)
	if err != nil {
		c.Error(err)
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Store updated", "suspended": *input.Suspended})
}

// ListAllOrders returns every order, optionally filtered by status, newest
// first.
func ListAllOrders(c *gin.Context) {
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := db.OrderCollection.Find(ctx, filter, opts)
	if err != nil {
		c.Error(err)
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// PlatformStats is the admin dashboard: entity counts plus total revenue
// over paid-or-later orders.
func PlatformStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	userCount, err := db.UserCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		c.Error(err)
		return
	}
	productCount, err := db.ProductCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		c.Error(err)
		return
	}
	orderCount, err := db.OrderCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		c.Error(err)
		return
	}
	pendingSellers, err := db.SellerCollection.CountDocuments(ctx, bson.M{"status": models.SellerStatusPending})
	if err != nil {
		c.Error(err)
		return
	}

	cursor, err := db.OrderCollection.Aggregate(ctx, []bson.M{
		{"$match": bson.M{"status": bson.M{"$in": []string{
			models.OrderStatusPaid,
			models.OrderStatusProcessing,
			models.OrderStatusShipped,
			models.OrderStatusDelivered,
		}}}},
		{"$group": bson.M{"_id": nil, "revenue": bson.M{"$sum": "$total"}}},
	})
	if err != nil {
		c.Error(err)
		return
	}
	defer cursor.Close(ctx)

	revenue := 0.0
	var rows []bson.M
	if err := cursor.All(ctx, &rows); err != nil {
		c.Error(err)
		return
	}
	if len(rows) > 0 {
		if v, ok := rows[0]["revenue"].(float64); ok {
			revenue = v
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"users":           userCount,
		"products":        productCount,
		"orders":          orderCount,
		"pending_sellers": pendingSellers,
		"revenue":         revenue,
	})
}
