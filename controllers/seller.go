package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	db "shopora-backend/database"
	"shopora-backend/models"
	"shopora-backend/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApplySeller submits a store application. The store starts "pending" and
// cannot list products until an admin approves it.
func ApplySeller(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var existing models.Seller
	err := db.SellerCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "You already have a store application", "status": existing.Status})
		return
	}
	if err != mongo.ErrNoDocuments {
		c.Error(err)
		return
	}

	storeName := c.PostForm("store_name")
	if storeName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store_name is required"})
		return
	}

	lng, errLng := strconv.ParseFloat(c.PostForm("longitude"), 64)
	lat, errLat := strconv.ParseFloat(c.PostForm("latitude"), 64)
	if errLng != nil || errLat != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coordinates"})
		return
	}
	radius, err := strconv.ParseFloat(c.PostForm("service_radius_km"), 64)
	if err != nil || radius <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service radius"})
		return
	}

	var logo *models.Image
	if c.ContentType() == "multipart/form-data" {
		images, err := uploadImagesFromForm(c, ctx, "logo", "store_logos")
		if err != nil {
			c.Error(err)
			return
		}
		if len(images) > 0 {
			logo = &images[0]
		}
	}

	now := time.Now()
	seller := models.Seller{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		StoreName:       storeName,
		Description:     c.PostForm("description"),
		Logo:            logo,
		Location:        models.NewGeoPoint(lng, lat),
		ServiceRadiusKm: radius,
		Status:          models.SellerStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := db.SellerCollection.InsertOne(ctx, seller); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, seller)
}

// GetMyStore returns the caller's store profile.
func GetMyStore(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var seller models.Seller
	if err := db.SellerCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&seller); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, seller)
}

// UpdateMyStore edits store name, description, coordinates and radius.
// Approval status is untouched; only admins change that.
func UpdateMyStore(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type StoreInput struct {
		StoreName       string   `json:"store_name"`
		Description     string   `json:"description"`
		Longitude       *float64 `json:"longitude"`
		Latitude        *float64 `json:"latitude"`
		ServiceRadiusKm *float64 `json:"service_radius_km"`
	}
	var input StoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if input.StoreName != "" {
		set["store_name"] = input.StoreName
	}
	if input.Description != "" {
		set["description"] = input.Description
	}
	if input.Longitude != nil && input.Latitude != nil {
		set["location"] = models.NewGeoPoint(*input.Longitude, *input.Latitude)
	}
	if input.ServiceRadiusKm != nil {
		if *input.ServiceRadiusKm <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service radius"})
			return
		}
		set["service_radius_km"] = *input.ServiceRadiusKm
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.SellerCollection.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{"$set": set})
	if err != nil {
		c.Error(err)
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Store updated"})
}

// GetSellerOrders lists orders containing the seller's products.
func GetSellerOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orders, err := models.GetOrdersContainingOwner(userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetSellerStats aggregates revenue and sales for the dashboard. Only paid
// and later stages count; pending and cancelled orders are excluded.
func GetSellerStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	productCount, err := db.ProductCollection.CountDocuments(ctx, bson.M{"owner_id": userID})
	if err != nil {
		c.Error(err)
		return
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"items.owner_id": userID,
			"status": bson.M{"$in": []string{
				models.OrderStatusPaid,
				models.OrderStatusProcessing,
				models.OrderStatusShipped,
				models.OrderStatusDelivered,
			}},
		}}},
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$match", Value: bson.M{"items.owner_id": userID}}},
		{{Key: "$group", Value: bson.M{
			"_id":        nil,
			"revenue":    bson.M{"$sum": bson.M{"$multiply": []string{"$items.unit_price", "$items.quantity"}}},
			"units_sold": bson.M{"$sum": "$items.quantity"},
			"orders":     bson.M{"$addToSet": "$_id"},
		}}},
	}

	cursor, err := db.OrderCollection.Aggregate(ctx, pipeline)
	if err != nil {
		c.Error(err)
		return
	}
	defer cursor.Close(ctx)

	stats := gin.H{
		"product_count": productCount,
		"revenue":       0.0,
		"units_sold":    0,
		"order_count":   0,
	}
	var rows []bson.M
	if err := cursor.All(ctx, &rows); err != nil {
		c.Error(err)
		return
	}
	if len(rows) > 0 {
		stats["revenue"] = rows[0]["revenue"]
		stats["units_sold"] = rows[0]["units_sold"]
		if orders, ok := rows[0]["orders"].(bson.A); ok {
			stats["order_count"] = len(orders)
		}
	}

	c.JSON(http.StatusOK, stats)
}

// NearbySellers is the public store locator: approved, non-suspended stores
// whose service radius covers the given point, nearest first.
func NearbySellers(c *gin.Context) {
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	if errLng != nil || errLat != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lng and lat query params are required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// $near sorts by distance; the per-store radius check happens below
	// because maxDistance is a single global bound.
	maxRadiusMeters := 100_000.0
	cursor, err := db.SellerCollection.Find(ctx, bson.M{
		"status":    models.SellerStatusApproved,
		"suspended": false,
		"location": bson.M{
			"$near": bson.M{
				"$geometry":    models.NewGeoPoint(lng, lat),
				"$maxDistance": maxRadiusMeters,
			},
		},
	})
	if err != nil {
		c.Error(err)
		return
	}
	defer cursor.Close(ctx)

	var all []models.Seller
	if err := cursor.All(ctx, &all); err != nil {
		c.Error(err)
		return
	}

	sellers := []models.Seller{}
	for _, s := range all {
		if len(s.Location.Coordinates) == 2 &&
			services.HaversineKm(lat, lng, s.Location.Coordinates[1], s.Location.Coordinates[0]) <= s.ServiceRadiusKm {
			sellers = append(sellers, s)
		}
	}

	c.JSON(http.StatusOK, gin.H{"sellers": sellers})
}
