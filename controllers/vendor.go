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

// GetVendorOrders lists orders containing the vendor's products.
func GetVendorOrders(c *gin.Context) {
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

// GetVendorStats is the vendor dashboard: product count, units sold and
// revenue across paid-or-later orders, plus low-stock products.
func GetVendorStats(c *gin.Context) {
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

	lowStock, err := db.ProductCollection.CountDocuments(ctx, bson.M{
		"owner_id": userID,
		"stock":    bson.M{"$lte": 5},
	})
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
		}}},
	}

	cursor, err := db.OrderCollection.Aggregate(ctx, pipeline)
	if err != nil {
		c.Error(err)
		return
	}
	defer cursor.Close(ctx)

	var rows []bson.M
	if err := cursor.All(ctx, &rows); err != nil {
		c.Error(err)
		return
	}

	stats := gin.H{
		"product_count": productCount,
		"low_stock":     lowStock,
		"revenue":       0.0,
		"units_sold":    0,
	}
	if len(rows) > 0 {
		stats["revenue"] = rows[0]["revenue"]
		stats["units_sold"] = rows[0]["units_sold"]
	}

	c.JSON(http.StatusOK, stats)
}
