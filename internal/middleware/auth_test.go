package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicbook/clinicbook/internal/config"
	"github.com/clinicbook/clinicbook/internal/domain"
	"github.com/clinicbook/clinicbook/pkg/auth"
)

func testRouter(t *testing.T, mgr *auth.JWTManager, roles ...domain.Role) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{Authenticate(mgr)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRole(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		p, ok := Principal(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"role": p.Role})
	})
	r.GET("/protected", handlers...)
	return r
}

func testManager() *auth.JWTManager {
	return auth.NewJWTManager(config.JWTConfig{
		Secret:          "middleware-test-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		Issuer:          "clinicbook-test",
	})
}

func bearerFor(t *testing.T, mgr *auth.JWTManager, role domain.Role) string {
	t.Helper()
	pair, err := mgr.GenerateTokenPair(&domain.Claims{UserID: uuid.New(), Role: role})
	require.NoError(t, err)
	return "Bearer " + pair.AccessToken
}

func TestAuthenticateRejectsMissingAndMangledHeaders(t *testing.T) {
	mgr := testManager()
	r := testRouter(t, mgr)

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthenticateAcceptsValidToken(t *testing.T) {
	mgr := testManager()
	r := testRouter(t, mgr)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", bearerFor(t, mgr, domain.RolePatient))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole(t *testing.T) {
	mgr := testManager()
	r := testRouter(t, mgr, domain.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", bearerFor(t, mgr, domain.RolePatient))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", bearerFor(t, mgr, domain.RoleAdmin))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
