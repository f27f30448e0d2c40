package controllers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartBody(t testing.TB, field, filename string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if field != "" {
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("image bytes"))
		require.NoError(t, err)
	}
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func formContext(t testing.TB, body *bytes.Buffer, contentType string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	c.Request = req
	return c
}

func stubUploads(t testing.TB, fn func(context.Context, io.Reader, string) (string, string, error)) {
	t.Helper()
	old := uploadImage
	uploadImage = fn
	t.Cleanup(func() { uploadImage = old })
}

func TestUploadImagesFromFormPropagatesUploadFailure(t *testing.T) {
	body, contentType := multipartBody(t, "product_image", "lamp.png", nil)
	c := formContext(t, body, contentType)
	stubUploads(t, func(context.Context, io.Reader, string) (string, string, error) {
		return "", "", errors.New("cloudinary unavailable")
	})

	images, err := uploadImagesFromForm(c, context.Background(), "product_image", "products")
	assert.Error(t, err)
	assert.Nil(t, images)
}

func TestUploadImagesFromFormSkipsAbsentField(t *testing.T) {
	body, contentType := multipartBody(t, "", "", map[string]string{"name": "Lamp"})
	c := formContext(t, body, contentType)
	stubUploads(t, func(context.Context, io.Reader, string) (string, string, error) {
		return "", "", errors.New("must not be called")
	})

	images, err := uploadImagesFromForm(c, context.Background(), "product_image", "products")
	assert.NoError(t, err)
	assert.Empty(t, images)
}

func TestUploadImagesFromFormReturnsStoredRefs(t *testing.T) {
	body, contentType := multipartBody(t, "product_image", "lamp.png", nil)
	c := formContext(t, body, contentType)
	stubUploads(t, func(context.Context, io.Reader, string) (string, string, error) {
		return "https://cdn.example.com/lamp.png", "products/lamp", nil
	})

	images, err := uploadImagesFromForm(c, context.Background(), "product_image", "products")
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "https://cdn.example.com/lamp.png", images[0].URL)
	assert.Equal(t, "products/lamp", images[0].PublicID)
}
