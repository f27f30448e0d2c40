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
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

// Register creates a customer account.
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Router /auth/register [post]
func Register(c *gin.Context) {
	type RegisterInput struct {
		Name        string `json:"name" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
		PhoneNumber string `json:"phone_number"`
		Password    string `json:"password" binding:"required,min=8"`
	}

	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var existing models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
		return
	}
	if err != mongo.ErrNoDocuments {
		c.Error(err)
		return
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		c.Error(err)
		return
	}

	now := time.Now()
	user := models.User{
		ID:            primitive.NewObjectID(),
		Name:          input.Name,
		Email:         input.Email,
		PhoneNumber:   input.PhoneNumber,
		Password:      hashed,
		Role:          models.RoleCustomer,
		Addresses:     []models.Address{},
		RefreshTokens: []models.RefreshToken{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		// The unique index can still race the duplicate check above.
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Register successful", "user_id": user.ID})
}
