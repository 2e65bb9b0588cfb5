package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type verifierFunc func(ctx context.Context, token string) (service.Identity, error)

func (f verifierFunc) Verify(ctx context.Context, token string) (service.Identity, error) {
	return f(ctx, token)
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"bearer \"abc.def.ghi\"", "abc.def.ghi", true},
		{"Bearer abc.def.ghi, extra", "abc.def.ghi", true},
		{"Basic dXNlcg==", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ExtractBearerToken(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func newEngine(v TokenVerifier, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthRequired(v, zap.NewNop())}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := service.IdentityFromContext(c.Request.Context())
		c.String(http.StatusOK, id.UserID.String())
	})
	r.GET("/me", handlers...)
	return r
}

func TestAuthRequired(t *testing.T) {
	uid := uuid.New()
	v := verifierFunc(func(ctx context.Context, token string) (service.Identity, error) {
		if token != "good" {
			return service.Identity{}, errors.New("bad token")
		}
		return service.Identity{UserID: uid, Role: service.RoleCustomer}, nil
	})
	r := newEngine(v)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uid.String(), w.Body.String())

	for _, h := range []string{"", "Bearer bad", "Token good"} {
		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, "/me", nil)
		if h != "" {
			req.Header.Set("Authorization", h)
		}
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, h)
	}
}

func TestAdminRequired(t *testing.T) {
	role := service.RoleCustomer
	v := verifierFunc(func(ctx context.Context, token string) (service.Identity, error) {
		return service.Identity{UserID: uuid.New(), Role: role}, nil
	})
	r := newEngine(v, AdminRequired())

	do := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer x")
		r.ServeHTTP(w, req)
		return w.Code
	}
	assert.Equal(t, http.StatusForbidden, do())
	role = service.RoleAdmin
	assert.Equal(t, http.StatusOK, do())
}
