package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	db "shopora-backend/database"
	"shopora-backend/models"
	"shopora-backend/services"
	"shopora-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"github.com/stripe/stripe-go/v81/webhook"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// InitStripe sets the API key for the stripe-go client.
func InitStripe() {
	key := os.Getenv("STRIPE_SECRET_KEY")
	if key == "" {
		log.Fatal("STRIPE_SECRET_KEY not set in .env")
	}
	stripe.Key = key
}

func currency() string {
	if cur := os.Getenv("STRIPE_CURRENCY"); cur != "" {
		return cur
	}
	return string(stripe.CurrencyUSD)
}

// CreatePaymentIntent creates a Stripe PaymentIntent for a pending order the
// caller owns. The amount comes from the stored order total, never the
// request body.
// @Summary Create a Stripe PaymentIntent for an order
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /payments/create-intent [post]
func CreatePaymentIntent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type IntentInput struct {
		OrderID string `json:"order_id" binding:"required"`
	}
	var input IntentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	orderID, ok2 := parseHex(c, input.OrderID, "order ID")
	if !ok2 {
		return
	}

	order, err := models.GetOrderByID(orderID)
	if err != nil {
		c.Error(err)
		return
	}
	if order.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your order"})
		return
	}
	if order.Status != models.OrderStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order is not awaiting payment"})
		return
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(services.AmountInCents(order.Total)),
		Currency: stripe.String(currency()),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Metadata = map[string]string{
		"order_id": order.ID.Hex(),
		"user_id":  userID.Hex(),
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		log.Println("Stripe PaymentIntent failed:", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment provider error"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = db.OrderCollection.UpdateOne(ctx,
		bson.M{"_id": order.ID},
		bson.M{"$set": bson.M{"payment_intent_id": intent.ID, "updated_at": time.Now()}},
	)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client_secret":     intent.ClientSecret,
		"payment_intent_id": intent.ID,
	})
}

// StripeWebhook verifies the event signature and applies payment results.
// Marking an already-paid order paid again is a no-op, so Stripe retries are
// safe.
func StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 65536))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read payload"})
		return
	}

	event, err := webhook.ConstructEvent(payload,
		c.GetHeader("Stripe-Signature"),
		os.Getenv("STRIPE_WEBHOOK_SECRET"),
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed event payload"})
			return
		}
		if err := markOrderPaid(intent.ID); err != nil {
			c.Error(err)
			return
		}
	case "payment_intent.payment_failed":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err == nil {
			log.Println("Payment failed for intent", intent.ID)
		}
	default:
		log.Println("Ignoring Stripe event type", event.Type)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// markOrderPaid transitions the matching pending order to paid and mails the
// buyer. Unknown intent ids and repeat deliveries are ignored.
func markOrderPaid(paymentIntentID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	err := db.OrderCollection.FindOne(ctx, bson.M{"payment_intent_id": paymentIntentID}).Decode(&order)
	if err != nil {
		log.Println("Webhook for unknown payment intent", paymentIntentID)
		return nil
	}
	if order.Status != models.OrderStatusPending {
		return nil
	}

	if err := services.CanTransition(order.Status, models.OrderStatusPaid, services.ActorSystem); err != nil {
		return err
	}
	err = models.CompareAndSetOrderStatus(ctx, order.ID, models.OrderStatusPending, models.OrderStatusPaid)
	if err == mongo.ErrNoDocuments {
		// A concurrent delivery of the same event won the race.
		return nil
	}
	if err != nil {
		return err
	}

	var buyer models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"_id": order.UserID}).Decode(&buyer); err == nil {
		if err := utils.SendOrderConfirmation(buyer.Email, order.ID.Hex(), order.Total); err != nil {
			log.Println("Failed to send order confirmation:", err)
		}
	}
	return nil
}
