package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	db "shopora-backend/database"
	"shopora-backend/models"
	"shopora-backend/services"
	"shopora-backend/storage"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ListProducts is the public catalog endpoint with filtering, sorting and
// pagination.
// @Summary List products
// @Tags products
// @Produce json
// @Param keyword query string false "search keyword"
// @Param category query string false "category filter"
// @Param page query int false "page number"
// @Router /products [get]
func ListProducts(c *gin.Context) {
	query := services.ProductQuery{
		Keyword:      c.Query("keyword"),
		Category:     c.Query("category"),
		Sort:         c.Query("sort"),
		HomeDelivery: c.Query("home_delivery") == "true",
		StorePickup:  c.Query("store_pickup") == "true",
		InStockOnly:  c.Query("in_stock") == "true",
	}
	query.MinPrice, _ = strconv.ParseFloat(c.Query("min_price"), 64)
	query.MaxPrice, _ = strconv.ParseFloat(c.Query("max_price"), 64)
	query.Page, _ = strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	query.PageSize, _ = strconv.ParseInt(c.DefaultQuery("page_size", "20"), 10, 64)

	products, total, err := services.SearchProducts(query)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    total,
		"page":     query.Page,
	})
}

// GetProduct returns one product with a seller summary when the owner has a
// store profile.
// @Summary Get product detail
// @Tags products
// @Produce json
// @Param id path string true "product id"
// @Router /products/{id} [get]
func GetProduct(c *gin.Context) {
	productID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	product, err := models.GetProductByID(productID)
	if err != nil {
		c.Error(err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	response := gin.H{"product": product}

	var seller models.Seller
	err = db.SellerCollection.FindOne(ctx, bson.M{"user_id": product.OwnerID}).Decode(&seller)
	if err == nil {
		response["seller"] = gin.H{
			"id":         seller.ID,
			"store_name": seller.StoreName,
			"logo":       seller.Logo,
		}
	}

	c.JSON(http.StatusOK, response)
}

// canListProducts checks that the caller may put products on the platform:
// vendors and admins always can, sellers only with an approved store.
func canListProducts(ctx context.Context, c *gin.Context) bool {
	role := c.GetString("role")
	switch role {
	case models.RoleVendor, models.RoleAdmin:
		return true
	case models.RoleSeller:
		userID, ok := currentUserID(c)
		if !ok {
			return false
		}
		var seller models.Seller
		err := db.SellerCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&seller)
		if err != nil || !seller.CanSell() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Store is not approved for selling"})
			return false
		}
		return true
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "Only sellers and vendors can list products"})
		return false
	}
}

// AddProduct creates a product from a multipart form with image files.
func AddProduct(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if !canListProducts(ctx, c) {
		return
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
		return
	}
	stock, err := strconv.Atoi(c.PostForm("stock"))
	if err != nil || stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock"})
		return
	}

	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	images, err := uploadImagesFromForm(c, ctx, "product_image", "products")
	if err != nil {
		c.Error(err)
		return
	}
	if len(images) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image files uploaded"})
		return
	}

	product := models.Product{
		Name:        name,
		Description: c.PostForm("description"),
		Price:       price,
		Stock:       stock,
		Category:    c.PostForm("category"),
		Images:      images,
		DeliveryOptions: models.DeliveryOptions{
			HomeDelivery: c.PostForm("home_delivery") != "false",
			StorePickup:  c.PostForm("store_pickup") == "true",
		},
		OwnerID:   userID,
		OwnerRole: c.GetString("role"),
	}

	created, err := models.AddProduct(product)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ownedProduct loads the product and enforces owner-or-admin access.
func ownedProduct(c *gin.Context) (models.Product, bool) {
	productID, ok := pathObjectID(c, "id")
	if !ok {
		return models.Product{}, false
	}

	product, err := models.GetProductByID(productID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else {
			c.Error(err)
		}
		return models.Product{}, false
	}

	userID, ok := currentUserID(c)
	if !ok {
		return models.Product{}, false
	}
	if product.OwnerID != userID && c.GetString("role") != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your product"})
		return models.Product{}, false
	}
	return product, true
}

// UpdateProduct applies a partial update; new images are appended.
func UpdateProduct(c *gin.Context) {
	product, ok := ownedProduct(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	set := bson.M{}
	if name := c.PostForm("name"); name != "" {
		set["name"] = name
	}
	if description := c.PostForm("description"); description != "" {
		set["description"] = description
	}
	if category := c.PostForm("category"); category != "" {
		set["category"] = category
	}
	if priceStr := c.PostForm("price"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}
		set["price"] = price
	}
	if stockStr := c.PostForm("stock"); stockStr != "" {
		stock, err := strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock"})
			return
		}
		set["stock"] = stock
	}
	if v := c.PostForm("home_delivery"); v != "" {
		set["delivery_options.home_delivery"] = v == "true"
	}
	if v := c.PostForm("store_pickup"); v != "" {
		set["delivery_options.store_pickup"] = v == "true"
	}

	if c.ContentType() == "multipart/form-data" {
		images, err := uploadImagesFromForm(c, ctx, "product_image", "products")
		if err != nil {
			c.Error(err)
			return
		}
		if len(images) > 0 {
			set["images"] = append(product.Images, images...)
		}
	}

	if len(set) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	updated, err := models.UpdateProductFields(product.ID, set)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteProduct removes the product and its Cloudinary assets.
func DeleteProduct(c *gin.Context) {
	product, ok := ownedProduct(c)
	if !ok {
		return
	}

	if err := models.DeleteProduct(product.ID); err != nil {
		c.Error(err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, image := range product.Images {
		storage.DestroyImage(ctx, image.PublicID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// GetMyProducts lists the caller's own products.
func GetMyProducts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	products, err := models.GetProductsByOwner(userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, products)
}
