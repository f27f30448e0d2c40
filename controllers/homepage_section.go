package controllers

import (
	"context"
	"net/http"
	"time"

	db "shopora-backend/database"
	"shopora-backend/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type sectionWithProducts struct {
	models.HomepageSection
	Products []models.Product `json:"products"`
}

// ListHomepageSections is the public endpoint: active sections in position
// order, with product refs resolved.
func ListHomepageSections(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := db.SectionCollection.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		c.Error(err)
		return
	}
	defer cursor.Close(ctx)

	var sections []models.HomepageSection
	if err := cursor.All(ctx, &sections); err != nil {
		c.Error(err)
		return
	}

	out := []sectionWithProducts{}
	for _, section := range sections {
		products := []models.Product{}
		if len(section.ProductIDs) > 0 {
			productCursor, err := db.ProductCollection.Find(ctx, bson.M{"_id": bson.M{"$in": section.ProductIDs}})
			if err != nil {
				c.Error(err)
				return
			}
			if err := productCursor.All(ctx, &products); err != nil {
				c.Error(err)
				return
			}
		}
		out = append(out, sectionWithProducts{HomepageSection: section, Products: products})
	}

	c.JSON(http.StatusOK, out)
}

// ListAllHomepageSections is the admin view including inactive sections.
func ListAllHomepageSections(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := db.SectionCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.Error(err)
		return
	}
	defer cursor.Close(ctx)

	var sections []models.HomepageSection
	if err := cursor.All(ctx, &sections); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, sections)
}

type sectionInput struct {
	Title      string   `json:"title" binding:"required"`
	Kind       string   `json:"kind" binding:"required,oneof=featured new_arrivals curated"`
	ProductIDs []string `json:"product_ids"`
	Position   int      `json:"position"`
	Active     *bool    `json:"active"`
}

func (in sectionInput) productObjectIDs() ([]primitive.ObjectID, bool) {
	ids := make([]primitive.ObjectID, 0, len(in.ProductIDs))
	for _, raw := range in.ProductIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// CreateHomepageSection stores a new section.
func CreateHomepageSection(c *gin.Context) {
	var input sectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	productIDs, ok := input.productObjectIDs()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID in product_ids"})
		return
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	now := time.Now()
	section := models.HomepageSection{
		ID:         primitive.NewObjectID(),
		Title:      input.Title,
		Kind:       input.Kind,
		ProductIDs: productIDs,
		Position:   input.Position,
		Active:     active,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.SectionCollection.InsertOne(ctx, section); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, section)
}

// UpdateHomepageSection replaces the editable fields of a section.
func UpdateHomepageSection(c *gin.Context) {
	sectionID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var input sectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	productIDs, ok := input.productObjectIDs()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID in product_ids"})
		return
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.SectionCollection.UpdateOne(ctx,
		bson.M{"_id": sectionID},
		bson.M{"$set": bson.M{
			"title":       input.Title,
			"kind":        input.Kind,
			"product_ids": productIDs,
			"position":    input.Position,
			"active":      active,
			"updated_at":  time.Now(),
		}},
	)
	if err != nil {
		c.Error(err)
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Section not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Section updated"})
}

// DeleteHomepageSection removes a section.
func DeleteHomepageSection(c *gin.Context) {
	sectionID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.SectionCollection.DeleteOne(ctx, bson.M{"_id": sectionID})
	if err != nil {
		c.Error(err)
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Section not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Section deleted"})
}
