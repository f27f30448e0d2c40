package controllers

import (
	"context"
	"net/http"
	"time"

	db "shopora-backend/database"
	"shopora-backend/models"
	"shopora-backend/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type cartItemDetail struct {
	ProductID primitive.ObjectID `json:"product_id"`
	Name      string             `json:"name"`
	ImageURL  string             `json:"image_url"`
	UnitPrice float64            `json:"unit_price"`
	Quantity  int                `json:"quantity"`
	InStock   bool               `json:"in_stock"`
	AddedAt   time.Time          `json:"added_at"`
}

// GetCart returns the cart with product details and computed totals.
func GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cart, err := models.GetCartByUser(ctx, userID)
	if err != nil {
		c.Error(err)
		return
	}

	details, itemsTotal, err := cartDetails(ctx, cart)
	if err != nil {
		c.Error(err)
		return
	}

	shipping := services.ShippingFor(itemsTotal)
	c.JSON(http.StatusOK, gin.H{
		"items":        details,
		"items_total":  itemsTotal,
		"shipping_fee": shipping,
		"total":        itemsTotal + shipping,
	})
}

// AddToCart adds a product to the cart, merging quantities. The requested
// quantity is checked against the current stock.
func AddToCart(c *gin.Context) {
	upsertCart(c, true)
}

// UpdateCartItem sets the quantity for a product already in the cart.
func UpdateCartItem(c *gin.Context) {
	upsertCart(c, false)
}

func upsertCart(c *gin.Context, merge bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type CartInput struct {
		ProductID string `json:"product_id" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,min=1"`
	}

	var input CartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	productID, err := primitive.ObjectIDFromHex(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := models.GetProductByID(productID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else {
			c.Error(err)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	requested := input.Quantity
	if merge {
		cart, err := models.GetCartByUser(ctx, userID)
		if err != nil {
			c.Error(err)
			return
		}
		for _, item := range cart.Items {
			if item.ProductID == productID {
				requested += item.Quantity
			}
		}
	}
	if requested > product.Stock {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough stock", "available": product.Stock})
		return
	}

	cart, err := models.UpsertCartItem(ctx, userID, productID, input.Quantity, merge)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

// RemoveFromCart deletes one product line from the cart.
func RemoveFromCart(c *gin.Context) {
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

	cart, err := models.RemoveCartItem(ctx, userID, productID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, cart)
}

// ClearCart empties the cart.
func ClearCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := models.ClearCart(ctx, userID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

// cartDetails joins cart lines with their product documents and sums the
// items total at current prices.
func cartDetails(ctx context.Context, cart models.Cart) ([]cartItemDetail, float64, error) {
	if len(cart.Items) == 0 {
		return []cartItemDetail{}, 0, nil
	}

	productIDs := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, item := range cart.Items {
		productIDs = append(productIDs, item.ProductID)
	}

	cursor, err := db.ProductCollection.Find(ctx, bson.M{"_id": bson.M{"$in": productIDs}})
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}

	productMap := make(map[primitive.ObjectID]models.Product, len(products))
	for _, p := range products {
		productMap[p.ID] = p
	}

	details := []cartItemDetail{}
	total := 0.0
	for _, item := range cart.Items {
		p, ok := productMap[item.ProductID]
		if !ok {
			// Product was deleted since it was added; skip the line.
			continue
		}
		imageURL := ""
		if len(p.Images) > 0 {
			imageURL = p.Images[0].URL
		}
		details = append(details, cartItemDetail{
			ProductID: p.ID,
			Name:      p.Name,
			ImageURL:  imageURL,
			UnitPrice: p.Price,
			Quantity:  item.Quantity,
			InStock:   p.Stock >= item.Quantity,
			AddedAt:   item.AddedAt,
		})
		total += p.Price * float64(item.Quantity)
	}
	return details, total, nil
}
