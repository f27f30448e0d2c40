package jobs

import (
	"context"
	"log"
	"time"

	db "shopora-backend/database"
	"shopora-backend/models"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// PendingOrderTTL is how long an unpaid order holds its stock reservation.
const PendingOrderTTL = 24 * time.Hour

// Start schedules the background jobs and returns the running cron so the
// caller can stop it on shutdown.
func Start() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@every 1h", ExpirePendingOrders); err != nil {
		log.Fatal("Failed to schedule order expiry job:", err)
	}
	if _, err := c.AddFunc("@every 30m", DeactivateExpiredBanners); err != nil {
		log.Fatal("Failed to schedule banner job:", err)
	}

	c.Start()
	log.Println("Background jobs started")
	return c
}

// ExpirePendingOrders cancels unpaid orders older than PendingOrderTTL and
// restores the stock they reserved.
func ExpirePendingOrders() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-PendingOrderTTL)
	cursor, err := db.OrderCollection.Find(ctx, bson.M{
		"status":     models.OrderStatusPending,
		"created_at": bson.M{"$lt": cutoff},
	})
	if err != nil {
		log.Println("Order expiry job query failed:", err)
		return
	}
	defer cursor.Close(ctx)

	var stale []models.Order
	if err := cursor.All(ctx, &stale); err != nil {
		log.Println("Order expiry job decode failed:", err)
		return
	}

	for _, order := range stale {
		// Cancel first; stock is restored only after the cancel is recorded,
		// otherwise a failed write would restore it again on the next run.
		err := models.CompareAndSetOrderStatus(ctx, order.ID, models.OrderStatusPending, models.OrderStatusCancelled)
		if err == mongo.ErrNoDocuments {
			// Paid or cancelled since the query ran.
			continue
		}
		if err != nil {
			log.Printf("Order expiry: failed to cancel %s: %v", order.ID.Hex(), err)
			continue
		}
		for _, item := range order.Items {
			if err := models.RestoreStock(ctx, item.ProductID, item.Quantity); err != nil {
				log.Printf("Order expiry: failed to restore stock for %s: %v", item.ProductID.Hex(), err)
			}
		}
		log.Println("Expired unpaid order", order.ID.Hex())
	}
}

// DeactivateExpiredBanners clears the active flag on banners whose display
// window has closed.
func DeactivateExpiredBanners() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := db.BannerCollection.UpdateMany(ctx,
		bson.M{"active": true, "ends_at": bson.M{"$lt": time.Now()}},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now()}},
	)
	if err != nil {
		log.Println("Banner job failed:", err)
		return
	}
	if result.ModifiedCount > 0 {
		log.Printf("Deactivated %d expired banners", result.ModifiedCount)
	}
}
