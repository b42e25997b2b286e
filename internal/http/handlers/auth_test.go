package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/projetointegrador/estoque-api/internal/auth"
	"github.com/projetointegrador/estoque-api/internal/domain/user"
	"github.com/projetointegrador/estoque-api/internal/http/handlers"
)

type fakeAuthenticator struct {
	sess auth.Session
	err  error
}

func (f *fakeAuthenticator) Authenticate(ctx context.Context, email, password string) (auth.Session, error) {
	if f.err != nil {
		return auth.Session{}, f.err
	}

	return f.sess, nil
}

func loginRouter(authn handlers.Authenticator, onFailure func()) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	h := handlers.NewAuthHandler(authn, onFailure)
	r.POST("/login", h.Login)

	return r
}

func postLogin(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestLoginSuccess(t *testing.T) {
	authn := &fakeAuthenticator{
		sess: auth.Session{
			ID:    "u-1",
			Name:  "Alice",
			Email: "alice@example.com",
			Token: "signed-token",
			Roles: []user.Role{user.RoleUser},
		},
	}

	r := loginRouter(authn, nil)
	w := postLogin(t, r, `{"email":"alice@example.com","password":"secret123"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
	}

	var sess auth.Session

	if err := json.Unmarshal(w.Body.Bytes(), &sess); err != nil {
		t.Fatalf("failed to unmarshal response: %v body=%s", err, w.Body.String())
	}

	if sess.Token != "signed-token" {
		t.Fatalf("unexpected token: %q", sess.Token)
	}

	if sess.Email != "alice@example.com" {
		t.Fatalf("unexpected email: %q", sess.Email)
	}
}

// A rejected login must not reveal whether the account exists.
func TestLoginFailureIsUniform(t *testing.T) {
	failures := 0

	authn := &fakeAuthenticator{err: auth.ErrInvalidCredentials}
	r := loginRouter(authn, func() { failures++ })

	bodies := []string{
		`{"email":"ghost@example.com","password":"whatever1"}`,
		`{"email":"alice@example.com","password":"wrongpass"}`,
	}

	var messages []string

	for _, body := range bodies {
		w := postLogin(t, r, body)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusUnauthorized, w.Body.String())
		}

		var resp handlers.ErrorBody

		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal error response: %v", err)
		}

		messages = append(messages, resp.Message)
	}

	if messages[0] != messages[1] {
		t.Fatalf("failure messages differ: %q vs %q", messages[0], messages[1])
	}

	if messages[0] != "Invalid email or password." {
		t.Fatalf("unexpected message: %q", messages[0])
	}

	if failures != 2 {
		t.Fatalf("failure hook fired %d times, want 2", failures)
	}
}

func TestLoginRejectsMalformedBody(t *testing.T) {
	r := loginRouter(&fakeAuthenticator{}, nil)
	w := postLogin(t, r, `{"email":"not-an-email","password":""}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, http.StatusBadRequest, w.Body.String())
	}
}
