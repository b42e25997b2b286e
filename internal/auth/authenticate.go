package auth

import (
	"context"
	"errors"

	"github.com/projetointegrador/estoque-api/internal/domain/user"
	"github.com/projetointegrador/estoque-api/internal/security"
)

// ErrInvalidCredentials is returned for unknown email AND wrong password
// alike, so the login response never reveals whether an account exists.
var ErrInvalidCredentials = errors.New("invalid email or password")

type UserReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

// Session is what a successful login hands back to the client.
type Session struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Token string      `json:"token"`
	Roles []user.Role `json:"roles"`
}

type Authenticator struct {
	users  UserReader
	tokens *TokenService
}

func NewAuthenticator(users UserReader, tokens *TokenService) *Authenticator {
	return &Authenticator{users: users, tokens: tokens}
}

// Authenticate verifies the email/password pair and issues a token.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (Session, error) {
	u, err := a.users.GetByEmail(ctx, email)

	if err != nil {
		return Session{}, ErrInvalidCredentials
	}

	if !security.VerifyPassword(u.PasswordHash, password) {
		return Session{}, ErrInvalidCredentials
	}

	token, err := a.tokens.Issue(u.Email, u.Roles)

	if err != nil {
		return Session{}, err
	}

	return Session{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Token: token,
		Roles: u.Roles,
	}, nil
}
