package controllers

import (
	"context"
	"net/http"

	"shopora-backend/models"
	"shopora-backend/storage"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentUserID reads the authenticated user id set by the auth middleware.
// It writes a 401 and returns ok=false when the id is missing or malformed.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return primitive.NilObjectID, false
	}
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return primitive.NilObjectID, false
	}
	return objID, true
}

// pathObjectID parses a :param as an ObjectID, writing a 400 on failure.
func pathObjectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	objID, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param})
		return primitive.NilObjectID, false
	}
	return objID, true
}

// parseHex parses an ObjectID from a request body field, writing a 400 on
// failure.
func parseHex(c *gin.Context, hex, label string) (primitive.ObjectID, bool) {
	objID, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + label})
		return primitive.NilObjectID, false
	}
	return objID, true
}

// uploadImage is stubbed out in tests.
var uploadImage = storage.UploadImage

// uploadImagesFromForm uploads every file under the given multipart field to
// Cloudinary and returns the stored references. An absent field is not an
// error; a failed upload is.
func uploadImagesFromForm(c *gin.Context, ctx context.Context, field, folder string) ([]models.Image, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}

	var images []models.Image
	for _, fileHeader := range form.File[field] {
		file, err := fileHeader.Open()
		if err != nil {
			return nil, err
		}
		url, publicID, err := uploadImage(ctx, file, folder)
		file.Close()
		if err != nil {
			return nil, err
		}
		images = append(images, models.Image{URL: url, PublicID: publicID})
	}
	return images, nil
}
