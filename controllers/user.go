package controllers

import (
	"context"
	"net/http"
	"time"

	db "shopora-backend/database"
	"shopora-backend/models"
	"shopora-backend/storage"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// UpdateProfile updates name and phone number.
func UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type ProfileInput struct {
		Name        string `json:"name" binding:"required"`
		PhoneNumber string `json:"phone_number"`
	}

	var input ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := db.UserCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{
			"name":         input.Name,
			"phone_number": input.PhoneNumber,
			"updated_at":   time.Now(),
		}},
		opts,
	).Decode(&user)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UploadAvatar replaces the profile image. The previous Cloudinary asset is
// destroyed after the new one is stored.
func UploadAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	images, err := uploadImagesFromForm(c, ctx, "avatar", "avatars")
	if err != nil {
		c.Error(err)
		return
	}
	if len(images) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No avatar file uploaded"})
		return
	}

	var old models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&old); err != nil {
		c.Error(err)
		return
	}

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"avatar": images[0], "updated_at": time.Now()}},
	)
	if err != nil {
		c.Error(err)
		return
	}

	if old.Avatar != nil {
		storage.DestroyImage(ctx, old.Avatar.PublicID)
	}

	c.JSON(http.StatusOK, gin.H{"avatar": images[0]})
}

// ChangePassword verifies the current password before setting a new one.
func ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	type PasswordInput struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required,min=8"`
	}

	var input PasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		c.Error(err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}

	hashed, err := hashPassword(input.NewPassword)
	if err != nil {
		c.Error(err)
		return
	}

	// Changing the password revokes every open session.
	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{
			"password":       hashed,
			"refresh_tokens": []models.RefreshToken{},
			"updated_at":     time.Now(),
		}},
	)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}

type addressInput struct {
	FullName    string `json:"full_name" binding:"required"`
	Line        string `json:"line" binding:"required"`
	City        string `json:"city" binding:"required"`
	PostalCode  string `json:"postal_code" binding:"required"`
	Country     string `json:"country" binding:"required"`
	PhoneNumber string `json:"phone_number"`
	IsDefault   bool   `json:"is_default"`
}

// AddAddress appends an address; the first address, or one flagged default,
// becomes the default.
func AddAddress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input addressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		c.Error(err)
		return
	}

	address := models.Address{
		ID:          primitive.NewObjectID(),
		FullName:    input.FullName,
		Line:        input.Line,
		City:        input.City,
		PostalCode:  input.PostalCode,
		Country:     input.Country,
		PhoneNumber: input.PhoneNumber,
		IsDefault:   input.IsDefault || len(user.Addresses) == 0,
	}

	addresses := user.Addresses
	if address.IsDefault {
		for i := range addresses {
			addresses[i].IsDefault = false
		}
	}
	addresses = append(addresses, address)

	if err := saveAddresses(ctx, userID, addresses); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, address)
}

// UpdateAddress edits an existing address in place.
func UpdateAddress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	addressID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var input addressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		c.Error(err)
		return
	}

	found := false
	addresses := user.Addresses
	for i := range addresses {
		if addresses[i].ID == addressID {
			addresses[i] = models.Address{
				ID:          addressID,
				FullName:    input.FullName,
				Line:        input.Line,
				City:        input.City,
				PostalCode:  input.PostalCode,
				Country:     input.Country,
				PhoneNumber: input.PhoneNumber,
				IsDefault:   input.IsDefault,
			}
			found = true
		} else if input.IsDefault {
			addresses[i].IsDefault = false
		}
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	if err := saveAddresses(ctx, userID, addresses); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address updated"})
}

// DeleteAddress removes an address from the book.
func DeleteAddress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	addressID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		c.Error(err)
		return
	}

	addresses, found := models.RemoveAddress(user.Addresses, addressID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
		return
	}

	if err := saveAddresses(ctx, userID, addresses); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}

func saveAddresses(ctx context.Context, userID primitive.ObjectID, addresses []models.Address) error {
	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"addresses": addresses, "updated_at": time.Now()}},
	)
	return err
}
