package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func errorStatus(t *testing.T, err error) (int, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/boom", func(c *gin.Context) {
		c.Error(err)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(w, req)
	return w.Code, w.Body.String()
}

func TestErrorHandlerNotFound(t *testing.T) {
	code, body := errorStatus(t, mongo.ErrNoDocuments)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, body, "not found")
}

func TestErrorHandlerDuplicateKey(t *testing.T) {
	dup := mongo.WriteException{
		WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}},
	}
	code, _ := errorStatus(t, dup)
	assert.Equal(t, http.StatusConflict, code)
}

func TestErrorHandlerInvalidObjectID(t *testing.T) {
	_, err := primitive.ObjectIDFromHex("nope")
	assert.Error(t, err)
	code, _ := errorStatus(t, err)
	assert.Equal(t, http.StatusBadRequest, code)

	// Right characters, wrong length.
	_, err = primitive.ObjectIDFromHex("abc123")
	assert.Error(t, err)
	code, _ = errorStatus(t, err)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestErrorHandlerJWT(t *testing.T) {
	code, _ := errorStatus(t, jwt.NewValidationError("token expired", jwt.ValidationErrorExpired))
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestErrorHandlerFallsBackToInternal(t *testing.T) {
	code, body := errorStatus(t, errors.New("connection reset"))
	assert.Equal(t, http.StatusInternalServerError, code)
	// Internal details never leak to the client.
	assert.NotContains(t, body, "connection reset")
}

func TestErrorHandlerLeavesWrittenResponsesAlone(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/half", func(c *gin.Context) {
		c.JSON(http.StatusTeapot, gin.H{"error": "already handled"})
		c.Error(errors.New("late error"))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/half", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Contains(t, w.Body.String(), "already handled")
}
