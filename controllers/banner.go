package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	db "shopora-backend/database"
	"shopora-backend/models"
	"shopora-backend/storage"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListBanners is the public endpoint: currently visible banners in position
// order.
func ListBanners(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := db.BannerCollection.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		c.Error(err)
		return
	}
	defer cursor.Close(ctx)

	var all []models.Banner
	if err := cursor.All(ctx, &all); err != nil {
		c.Error(err)
		return
	}

	now := time.Now()
	banners := []models.Banner{}
	for _, b := range all {
		if b.VisibleAt(now) {
			banners = append(banners, b)
		}
	}

	c.JSON(http.StatusOK, banners)
}

// ListAllBanners is the admin view including inactive and scheduled banners.
func ListAllBanners(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := db.BannerCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.Error(err)
		return
	}
	defer cursor.Close(ctx)

	var banners []models.Banner
	if err := cursor.All(ctx, &banners); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, banners)
}

// CreateBanner uploads the banner image and stores the record.
func CreateBanner(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	images, err := uploadImagesFromForm(c, ctx, "image", "banners")
	if err != nil {
		c.Error(err)
		return
	}
	if len(images) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No banner image uploaded"})
		return
	}

	position, _ := strconv.Atoi(c.PostForm("position"))

	now := time.Now()
	banner := models.Banner{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Image:     images[0],
		Link:      c.PostForm("link"),
		Position:  position,
		Active:    c.PostForm("active") != "false",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if startsAt := c.PostForm("starts_at"); startsAt != "" {
		if t, err := time.Parse(time.RFC3339, startsAt); err == nil {
			banner.StartsAt = &t
		}
	}
	if endsAt := c.PostForm("ends_at"); endsAt != "" {
		if t, err := time.Parse(time.RFC3339, endsAt); err == nil {
			banner.EndsAt = &t
		}
	}

	if _, err := db.BannerCollection.InsertOne(ctx, banner); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, banner)
}

// UpdateBanner edits banner fields; a new image replaces and destroys the
// old asset.
func UpdateBanner(c *gin.Context) {
	bannerID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var banner models.Banner
	if err := db.BannerCollection.FindOne(ctx, bson.M{"_id": bannerID}).Decode(&banner); err != nil {
		c.Error(err)
		return
	}

	set := bson.M{"updated_at": time.Now()}
	if title := c.PostForm("title"); title != "" {
		set["title"] = title
	}
	if link := c.PostForm("link"); link != "" {
		set["link"] = link
	}
	if positionStr := c.PostForm("position"); positionStr != "" {
		if position, err := strconv.Atoi(positionStr); err == nil {
			set["position"] = position
		}
	}
	if active := c.PostForm("active"); active != "" {
		set["active"] = active == "true"
	}

	var oldImage *models.Image
	if c.ContentType() == "multipart/form-data" {
		images, err := uploadImagesFromForm(c, ctx, "image", "banners")
		if err != nil {
			c.Error(err)
			return
		}
		if len(images) > 0 {
			set["image"] = images[0]
			oldImage = &banner.Image
		}
	}

	result, err := db.BannerCollection.UpdateOne(ctx, bson.M{"_id": bannerID}, bson.M{"$set": set})
	if err != nil {
		c.Error(err)
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
		return
	}

	if oldImage != nil {
		storage.DestroyImage(ctx, oldImage.PublicID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Banner updated"})
}

// DeleteBanner removes the banner and its image asset.
func DeleteBanner(c *gin.Context) {
	bannerID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var banner models.Banner
	err := db.BannerCollection.FindOne(ctx, bson.M{"_id": bannerID}).Decode(&banner)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
		return
	}
	if err != nil {
		c.Error(err)
		return
	}

	if _, err := db.BannerCollection.DeleteOne(ctx, bson.M{"_id": bannerID}); err != nil {
		c.Error(err)
		return
	}

	storage.DestroyImage(ctx, banner.Image.PublicID)

	c.JSON(http.StatusOK, gin.H{"message": "Banner deleted"})
}
