package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	db "shopora-backend/database"
	"shopora-backend/models"
	"shopora-backend/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Checkout turns the cart into a pending order. Prices are re-read from the
// product documents and stock is reserved per item; on a failed reservation
// everything already reserved is rolled back.
// @Summary Create an order from the cart
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Router /orders [post]
func Checkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type CheckoutInput struct {
		AddressID string `json:"address_id"`
	}
	var input CheckoutInput
	// Body is optional; without an address id the default address is used.
	c.ShouldBindJSON(&input)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		c.Error(err)
		return
	}

	shipping, ok := pickAddress(user, input.AddressID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No shipping address on file"})
		return
	}

	cart, err := models.GetCartByUser(ctx, userID)
	if err != nil {
		c.Error(err)
		return
	}
	if len(cart.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	var items []models.OrderItem
	var reserved []models.OrderItem
	for _, line := range cart.Items {
		product, err := models.GetProductByID(line.ProductID)
		if err != nil {
			rollbackReservations(ctx, reserved)
			c.JSON(http.StatusBadRequest, gin.H{"error": "A cart item is no longer available"})
			return
		}

		if err := models.ReserveStock(ctx, product.ID, line.Quantity); err != nil {
			rollbackReservations(ctx, reserved)
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusConflict, gin.H{
					"error":   "Not enough stock for " + product.Name,
					"product": product.ID,
				})
			} else {
				c.Error(err)
			}
			return
		}

		imageURL := ""
		if len(product.Images) > 0 {
			imageURL = product.Images[0].URL
		}
		item := models.OrderItem{
			ProductID: product.ID,
			OwnerID:   product.OwnerID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  line.Quantity,
			ImageURL:  imageURL,
		}
		items = append(items, item)
		reserved = append(reserved, item)
	}

	order := models.Order{
		UserID:          userID,
		Items:           items,
		ShippingAddress: shipping,
		Status:          models.OrderStatusPending,
	}
	services.PriceOrder(&order)

	created, err := models.CreateOrder(order)
	if err != nil {
		rollbackReservations(ctx, reserved)
		c.Error(err)
		return
	}

	if err := models.ClearCart(ctx, userID); err != nil {
		log.Println("Failed to clear cart after checkout:", err)
	}

	c.JSON(http.StatusCreated, created)
}

func pickAddress(user models.User, addressID string) (models.Address, bool) {
	if addressID != "" {
		for _, a := range user.Addresses {
			if a.ID.Hex() == addressID {
				return a, true
			}
		}
		return models.Address{}, false
	}
	return user.DefaultAddress()
}

func rollbackReservations(ctx context.Context, reserved []models.OrderItem) {
	for _, item := range reserved {
		if err := models.RestoreStock(ctx, item.ProductID, item.Quantity); err != nil {
			log.Printf("Failed to restore stock for %s: %v", item.ProductID.Hex(), err)
		}
	}
}

// GetUserOrders lists the buyer's orders.
func GetUserOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orders, err := models.GetOrdersByUser(userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder returns one order to its buyer, an involved seller/vendor, or an
// admin.
func GetOrder(c *gin.Context) {
	orderID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	order, err := models.GetOrderByID(orderID)
	if err != nil {
		c.Error(err)
		return
	}

	role := c.GetString("role")
	if order.UserID != userID && role != models.RoleAdmin && !order.ContainsOwner(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your order"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus moves an order through the fulfilment state machine.
// Sellers and vendors may only touch orders containing their products.
func UpdateOrderStatus(c *gin.Context) {
	orderID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type StatusInput struct {
		Status         string `json:"status" binding:"required"`
		TrackingNumber string `json:"tracking_number"`
	}
	var input StatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	order, err := models.GetOrderByID(orderID)
	if err != nil {
		c.Error(err)
		return
	}

	role := c.GetString("role")
	switch role {
	case models.RoleAdmin:
	case models.RoleSeller, models.RoleVendor:
		if !order.ContainsOwner(userID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Order does not contain your products"})
			return
		}
	case models.RoleCustomer:
		if order.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not your order"})
			return
		}
	}

	if err := services.CanTransition(order.Status, input.Status, role); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if input.TrackingNumber != "" {
		_, err = db.OrderCollection.UpdateOne(ctx,
			bson.M{"_id": orderID},
			bson.M{"$set": bson.M{"tracking_number": input.TrackingNumber}},
		)
		if err != nil {
			c.Error(err)
			return
		}
	}

	if err := models.CompareAndSetOrderStatus(ctx, orderID, order.Status, input.Status); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusConflict, gin.H{"error": "Order status changed, reload and retry"})
		} else {
			c.Error(err)
		}
		return
	}

	// Stock goes back only once the cancel is durably recorded.
	if input.Status == models.OrderStatusCancelled {
		rollbackReservations(ctx, order.Items)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order updated", "status": input.Status})
}

// CancelOrder lets the buyer cancel a still-pending order; reserved stock is
// restored.
func CancelOrder(c *gin.Context) {
	orderID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
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
	if err := services.CanTransition(order.Status, models.OrderStatusCancelled, models.RoleCustomer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := models.CompareAndSetOrderStatus(ctx, orderID, order.Status, models.OrderStatusCancelled); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusConflict, gin.H{"error": "Order status changed, reload and retry"})
		} else {
			c.Error(err)
		}
		return
	}
	rollbackReservations(ctx, order.Items)

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled"})
}
