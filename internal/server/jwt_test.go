package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/voice-agent/internal/config"
	"github.com/jonathan/voice-agent/internal/server/middleware"
)

// Claims must satisfy the jwt/v5 Claims interface for NewWithClaims and
// ParseWithClaims, and the middleware's SubjectGetter.
var (
	_ jwt.Claims               = (*Claims)(nil)
	_ middleware.SubjectGetter = (*Claims)(nil)
)

func newTestJWTService() *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateToken("api-client")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	subject, err := claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "api-client", subject)
}

func TestJWTService_ValidateToken_Empty(t *testing.T) {
	svc := newTestJWTService()
	_, err := svc.ValidateToken("")
	require.Error(t, err)
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	token, err := newTestJWTService().GenerateToken("api-client")
	require.NoError(t, err)

	other := NewJWTService(&config.JWTConfig{Secret: "different", ExpirationHours: 1})
	_, err = other.ValidateToken(token)
	require.Error(t, err)
}

func TestJWTService_ValidateToken_Garbage(t *testing.T) {
	svc := newTestJWTService()
	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	svc := newTestJWTService()
	token, err := svc.GenerateToken("api-client")
	require.NoError(t, err)

	var gotSubject string
	handler := middleware.AuthMiddleware(svc.AsTokenValidator())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotSubject, _ = middleware.GetSubject(r)
			w.WriteHeader(http.StatusOK)
		}))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "valid bearer token", authHeader: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "lowercase bearer", authHeader: "bearer " + token, wantStatus: http.StatusOK},
		{name: "missing header", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", authHeader: "Basic " + token, wantStatus: http.StatusUnauthorized},
		{name: "malformed header", authHeader: "Bearer", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", authHeader: "Bearer garbage", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSubject = ""
			req := httptest.NewRequest(http.MethodGet, "/history", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "api-client", gotSubject)
			}
		})
	}
}
