package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	db "shopora-backend/database"
	middlewares "shopora-backend/middleware"
	"shopora-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestUpdateProductFailsWhenUploadFails(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("upload failure is not swallowed", func(mt *mtest.T) {
		db.ProductCollection = mt.Coll
		ownerID := primitive.NewObjectID()
		productID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "shopora_db.products", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: productID},
			{Key: "name", Value: "Lamp"},
			{Key: "price", Value: 19.99},
			{Key: "stock", Value: 3},
			{Key: "owner_id", Value: ownerID},
		}))
		stubUploads(mt, func(context.Context, io.Reader, string) (string, string, error) {
			return "", "", errors.New("cloudinary unavailable")
		})

		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.Use(middlewares.ErrorHandler())
		r.PUT("/products/:id", func(c *gin.Context) {
			c.Set("user_id", ownerID.Hex())
			c.Set("role", models.RoleSeller)
		}, UpdateProduct)

		body, contentType := multipartBody(mt, "product_image", "lamp.png", map[string]string{"name": "Brighter lamp"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/products/"+productID.Hex(), body)
		req.Header.Set("Content-Type", contentType)
		r.ServeHTTP(w, req)

		assert.Equal(mt, http.StatusInternalServerError, w.Code)
	})
}
