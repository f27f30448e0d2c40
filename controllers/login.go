package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	db "shopora-backend/database"
	"shopora-backend/models"
	"shopora-backend/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const refreshCookieName = "refresh_token"

func checkPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func secureCookies() bool {
	return os.Getenv("COOKIE_SECURE") != "false"
}

func setRefreshCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(refreshCookieName, token, maxAge, "/api/v1/auth", "", secureCookies(), true)
}

// issueSession signs a fresh access/refresh pair, records the refresh jti on
// the user document (capped at models.MaxRefreshTokens), and sets the cookie.
func issueSession(c *gin.Context, ctx context.Context, user models.User) (string, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID.Hex(), user.Role)
	if err != nil {
		return "", err
	}

	refreshToken, tokenID, expiresAt, err := utils.GenerateRefreshToken(user.ID.Hex())
	if err != nil {
		return "", err
	}

	now := time.Now()
	tokens := models.RotateRefreshTokens(user.RefreshTokens, models.RefreshToken{
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}, now)

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"refresh_tokens": tokens}},
	)
	if err != nil {
		return "", err
	}

	setRefreshCookie(c, refreshToken, int(utils.RefreshTokenTTL.Seconds()))
	return accessToken, nil
}

// Login verifies credentials and starts a session.
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Router /auth/login [post]
func Login(c *gin.Context) {
	type LoginInput struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
	if err != nil || !checkPasswordHash(input.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	accessToken, err := issueSession(c, ctx, user)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"access_token": accessToken,
		"user":         user,
	})
}

// Refresh rotates the refresh token: the presented jti must still be on the
// user document, it is removed, and a new pair is issued. A valid-looking
// token whose jti is gone was already rotated out and is rejected.
// @Summary Exchange a refresh token for a new token pair
// @Tags auth
// @Produce json
// @Router /auth/refresh [post]
func Refresh(c *gin.Context) {
	tokenString, err := c.Cookie(refreshCookieName)
	if err != nil || tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token required"})
		return
	}

	claims, err := utils.ParseRefreshToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	now := time.Now()
	if !models.HasRefreshToken(user.RefreshTokens, claims.ID, now) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token has been revoked"})
		return
	}

	user.RefreshTokens = models.RemoveRefreshToken(user.RefreshTokens, claims.ID, now)

	accessToken, err := issueSession(c, ctx, user)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": accessToken})
}

// Logout revokes the presented refresh token and clears the cookie.
// @Summary Log out
// @Tags auth
// @Produce json
// @Router /auth/logout [post]
func Logout(c *gin.Context) {
	tokenString, err := c.Cookie(refreshCookieName)
	if err == nil && tokenString != "" {
		if claims, err := utils.ParseRefreshToken(tokenString); err == nil {
			if userID, err := primitive.ObjectIDFromHex(claims.UserID); err == nil {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_, err := db.UserCollection.UpdateOne(ctx,
					bson.M{"_id": userID},
					bson.M{"$pull": bson.M{"refresh_tokens": bson.M{"token_id": claims.ID}}},
				)
				if err != nil {
					// The token expires on its own; the cookie is cleared below.
					log.Println("Failed to revoke refresh token at logout:", err)
				}
			}
		}
	}

	setRefreshCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me returns the authenticated user's profile.
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Router /auth/me [get]
func Me(c *gin.Context) {
	userID, ok := currentUserID(c)
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

	c.JSON(http.StatusOK, user)
}
