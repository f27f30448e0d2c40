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

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestUpdateBannerFailsWhenUploadFails(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("upload failure is not swallowed", func(mt *mtest.T) {
		db.BannerCollection = mt.Coll
		bannerID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "shopora_db.banners", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: bannerID},
			{Key: "title", Value: "Summer sale"},
			{Key: "active", Value: true},
		}))
		stubUploads(mt, func(context.Context, io.Reader, string) (string, string, error) {
			return "", "", errors.New("cloudinary unavailable")
		})

		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.Use(middlewares.ErrorHandler())
		r.PUT("/banners/:id", UpdateBanner)

		body, contentType := multipartBody(mt, "image", "banner.png", map[string]string{"title": "New title"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/banners/"+bannerID.Hex(), body)
		req.Header.Set("Content-Type", contentType)
		r.ServeHTTP(w, req)

		assert.Equal(mt, http.StatusInternalServerError, w.Code)
		assert.NotContains(mt, w.Body.String(), "Banner updated")
	})
}
