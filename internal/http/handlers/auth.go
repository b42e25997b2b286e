package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/projetointegrador/estoque-api/internal/auth"
	"github.com/projetointegrador/estoque-api/internal/config"
)

// Authenticator is the login flow; the concrete one lives in internal/auth.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (auth.Session, error)
}

type AuthHandler struct {
	authn     Authenticator
	onFailure func()
}

// NewAuthHandler builds the login handler. onFailure is invoked for every
// rejected attempt (metrics hook); nil is fine.
func NewAuthHandler(authn Authenticator, onFailure func()) *AuthHandler {
	return &AuthHandler{authn: authn, onFailure: onFailure}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// short timeout for DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	sess, err := h.authn.Authenticate(cctx, req.Email, req.Password)

	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			if h.onFailure != nil {
				h.onFailure()
			}

			// Same message whether the account exists or not.
			RespondUnauthorized(ctx, "Invalid email or password.")
			return
		}

		RespondInternal(ctx, "Could not authenticate")
		return
	}

	ctx.JSON(http.StatusOK, sess)
}
