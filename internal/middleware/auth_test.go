package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/briefbox/brief-core/internal/pkg/jwt"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/protected", Auth(zap.NewNop()), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": CurrentUserID(c)})
	})
	return r
}

func doAuthed(t *testing.T, r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_ValidToken(t *testing.T) {
	r := newAuthRouter(t)

	token, err := jwt.Sign("user-42", time.Hour)
	require.NoError(t, err)

	w := doAuthed(t, r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"uid":"user-42"}`, w.Body.String())
}

func TestAuth_NoToken(t *testing.T) {
	r := newAuthRouter(t)

	tests := []struct {
		name          string
		authorization string
	}{
		{"missing header", ""},
		{"lowercase scheme", "bearer sometoken"},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"bare token", "sometoken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doAuthed(t, r, tt.authorization)
			require.Equal(t, http.StatusUnauthorized, w.Code)
			require.JSONEq(t, `{"error":"No token provided"}`, w.Body.String())
		})
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	r := newAuthRouter(t)

	expired, err := jwt.Sign("user-42", -time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.jwt"},
		{"empty after prefix", ""},
		{"expired", expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doAuthed(t, r, "Bearer "+tt.token)
			require.Equal(t, http.StatusUnauthorized, w.Code)
			require.JSONEq(t, `{"error":"Invalid token"}`, w.Body.String())
		})
	}
}
