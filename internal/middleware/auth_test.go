package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medbook/booking-api/internal/model"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func authTestRouter(captured *model.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewAuthMiddleware(testSecret).Authenticate())
	r.GET("/ping", func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if ok {
			*captured = actor
		}
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  userID.String(),
		"role": "doctor",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	var actor model.Actor
	r := authTestRouter(&actor)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, actor.ID)
	assert.Equal(t, model.RoleDoctor, actor.Role)
}

func TestAuthenticate_Rejected(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer token", "Basic abc123"},
		{"garbage token", "Bearer not.a.jwt"},
		{
			"wrong secret",
			"Bearer " + signToken(t, "other-secret", jwt.MapClaims{
				"sub": userID.String(), "role": "patient",
			}),
		},
		{
			"expired token",
			"Bearer " + signToken(t, testSecret, jwt.MapClaims{
				"sub":  userID.String(),
				"role": "patient",
				"exp":  time.Now().Add(-time.Hour).Unix(),
			}),
		},
		{
			"unknown role",
			"Bearer " + signToken(t, testSecret, jwt.MapClaims{
				"sub": userID.String(), "role": "superuser",
			}),
		},
		{
			"subject is not a uuid",
			"Bearer " + signToken(t, testSecret, jwt.MapClaims{
				"sub": "42", "role": "patient",
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var actor model.Actor
			r := authTestRouter(&actor)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, uuid.Nil, actor.ID)
		})
	}
}
