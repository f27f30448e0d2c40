package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	db "shopora-backend/database"
	"shopora-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestLogoutSurvivesRevocationFailure(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("cookie is cleared even when the pull fails", func(mt *mtest.T) {
		mt.Setenv("JWT_SECRET", "test-secret")
		db.UserCollection = mt.Coll
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11601,
			Name:    "Interrupted",
			Message: "operation interrupted",
		}))

		signed, _, _, err := utils.GenerateRefreshToken(primitive.NewObjectID().Hex())
		require.NoError(mt, err)

		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.POST("/auth/logout", Logout)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
		req.AddCookie(&http.Cookie{Name: refreshCookieName, Value: signed})
		r.ServeHTTP(w, req)

		assert.Equal(mt, http.StatusOK, w.Code)

		cleared := false
		for _, cookie := range w.Result().Cookies() {
			if cookie.Name == refreshCookieName {
				cleared = true
				assert.Empty(mt, cookie.Value)
				assert.Negative(mt, cookie.MaxAge)
			}
		}
		assert.True(mt, cleared)
	})
}
