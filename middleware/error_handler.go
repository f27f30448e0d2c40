package middlewares

import (
	"encoding/hex"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrorHandler normalizes errors attached with c.Error into HTTP responses:
// missing documents become 404, duplicate keys 409, malformed ObjectIDs and
// binding failures 400, JWT failures 401, anything else a generic 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, message := classify(err)
		if status == http.StatusInternalServerError {
			log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		}
		c.JSON(status, gin.H{"error": message})
	}
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return http.StatusNotFound, "Resource not found"
	case mongo.IsDuplicateKeyError(err):
		return http.StatusConflict, "Duplicate value for a unique field"
	case isInvalidObjectID(err):
		return http.StatusBadRequest, "Invalid ID"
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return http.StatusBadRequest, "Invalid input: " + validationErrs.Error()
	}

	var jwtErr *jwt.ValidationError
	if errors.As(err, &jwtErr) {
		return http.StatusUnauthorized, "Invalid or expired token"
	}

	return http.StatusInternalServerError, "Something went wrong"
}

func isInvalidObjectID(err error) bool {
	// ObjectIDFromHex reports wrong-length input as ErrInvalidHex and bad
	// characters as a hex decode error.
	var hexErr hex.InvalidByteError
	return errors.Is(err, primitive.ErrInvalidHex) || errors.As(err, &hexErr)
}
