package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/projetointegrador/estoque-api/internal/auth"
	"github.com/projetointegrador/estoque-api/internal/http/middlewares"
)

type staticVerifier struct {
	valid string
}

func (v *staticVerifier) VerifiedClaims(token string) (*auth.Claims, error) {
	if token != v.valid {
		return nil, auth.ErrInvalidToken
	}

	return &auth.Claims{
		Roles: []string{"USER"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "alice@example.com",
		},
	}, nil
}

func protectedRouter(required bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	m := middlewares.NewAuthMiddleware(&staticVerifier{valid: "good-token"})

	var guard gin.HandlerFunc

	if required {
		guard = m.RequireAuth()
	} else {
		guard = m.OptionalAuth()
	}

	r := gin.New()
	r.GET("/whoami", guard, func(ctx *gin.Context) {
		email, ok := middlewares.EmailFromContext(ctx)

		if !ok {
			email = "anonymous"
		}

		ctx.JSON(http.StatusOK, gin.H{"email": email})
	})

	return r
}

func get(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)

	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestRequireAuth(t *testing.T) {
	r := protectedRouter(true)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"bearer token", "Bearer good-token", http.StatusOK},
		{"lowercase scheme", "bearer good-token", http.StatusOK},
		{"bare token", "good-token", http.StatusOK},
		{"padded header", "  Bearer good-token  ", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"invalid token", "Bearer bad-token", http.StatusUnauthorized},
		{"scheme only", "Bearer ", http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := get(r, tc.header)

			if w.Code != tc.want {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tc.want, w.Body.String())
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	r := protectedRouter(false)

	t.Run("anonymous passes", func(t *testing.T) {
		w := get(r, "")

		if w.Code != http.StatusOK {
			t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
		}

		if body := w.Body.String(); body != `{"email":"anonymous"}` {
			t.Fatalf("unexpected body: %s", body)
		}
	})

	t.Run("valid token sets identity", func(t *testing.T) {
		w := get(r, "Bearer good-token")

		if w.Code != http.StatusOK {
			t.Fatalf("got status %d, want %d", w.Code, http.StatusOK)
		}

		if body := w.Body.String(); body != `{"email":"alice@example.com"}` {
			t.Fatalf("unexpected body: %s", body)
		}
	})

	t.Run("presented but invalid token fails closed", func(t *testing.T) {
		w := get(r, "Bearer bad-token")

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("got status %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})
}
