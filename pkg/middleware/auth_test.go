package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"snapgram/pkg/cache"
	"snapgram/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeSessions map[string]*cache.Session

func (f fakeSessions) Get(_ context.Context, id string) (*cache.Session, error) {
	if s, ok := f[id]; ok {
		return s, nil
	}
	return nil, cache.ErrSessionNotFound
}

func setupTestRouter(jwtService *jwt.Service, sessions SessionLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(AuthMiddleware(jwtService, sessions))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"account_id": c.GetString(ContextAccountID),
			"session_id": c.GetString(ContextSessionID),
		})
	})
	return router
}

func serve(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")
	token, _ := jwtService.GenerateToken("account-123", "session-1")
	sessions := fakeSessions{"session-1": {ID: "session-1", AccountID: "account-123", ExpiresAt: time.Now().Add(time.Hour)}}

	w := serve(setupTestRouter(jwtService, sessions), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"account_id":"account-123"`)
}

func TestAuthMiddleware_NoSessionStore(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")
	token, _ := jwtService.GenerateToken("account-123", "session-1")

	w := serve(setupTestRouter(jwtService, nil), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_NoHeader(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")

	w := serve(setupTestRouter(jwtService, fakeSessions{}), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidFormat(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")

	w := serve(setupTestRouter(jwtService, fakeSessions{}), "InvalidFormat token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")

	w := serve(setupTestRouter(jwtService, fakeSessions{}), "Bearer invalid-token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_SignedOutSession(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")
	token, _ := jwtService.GenerateToken("account-123", "session-gone")

	w := serve(setupTestRouter(jwtService, fakeSessions{}), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Session expired")
}

func TestAuthMiddleware_SessionOfAnotherAccount(t *testing.T) {
	jwtService := jwt.NewService("test-secret-key")
	token, _ := jwtService.GenerateToken("account-123", "session-1")
	sessions := fakeSessions{"session-1": {ID: "session-1", AccountID: "account-999"}}

	w := serve(setupTestRouter(jwtService, sessions), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
