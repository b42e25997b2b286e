package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/projetointegrador/estoque-api/internal/domain/user"
)

// ErrInvalidToken covers every token rejection: bad signature, malformed
// structure, expiry, or subject mismatch. Callers get no finer detail.
var ErrInvalidToken = errors.New("invalid token")

// TokenTTL is the fixed lifetime of an issued token. There is no server-side
// revocation; expiry is the only invalidation.
const TokenTTL = 24 * time.Hour

type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret []byte) *TokenService {
	return &TokenService{
		secret: secret,
		ttl:    TokenTTL,
		now:    time.Now,
	}
}

// WithClock overrides the time source. Tests use this to cross the expiry
// boundary without sleeping.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// Issue builds a signed token whose subject is the user's email, with the
// role set embedded so coarse role checks need no database round trip.
func (s *TokenService) Issue(email string, roles []user.Role) (string, error) {
	now := s.now().UTC()

	names := make([]string, 0, len(roles))

	for _, r := range roles {
		names = append(names, string(r))
	}

	claims := Claims{
		Roles: names,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.secret)
}

// Validate fails closed: any structural, signature, expiry or subject
// problem yields ErrInvalidToken.
func (s *TokenService) Validate(tokenStr, expectedSubject string) error {
	claims, err := s.parse(tokenStr, true)

	if err != nil {
		return err
	}

	if claims.Subject != expectedSubject {
		return ErrInvalidToken
	}

	return nil
}

// ExtractSubject returns the subject (email) claim after checking the
// signature only. It deliberately does NOT check expiry; callers that need
// an expiry-checked subject must go through Validate or VerifiedClaims.
func (s *TokenService) ExtractSubject(tokenStr string) (string, error) {
	claims, err := s.parse(tokenStr, false)

	if err != nil {
		return "", err
	}

	return claims.Subject, nil
}

// ExtractClaim projects a single claim out of a fully validated token.
func (s *TokenService) ExtractClaim(tokenStr string, selector func(Claims) any) (any, error) {
	claims, err := s.parse(tokenStr, true)

	if err != nil {
		return nil, err
	}

	return selector(*claims), nil
}

// VerifiedClaims returns the whole claim set of a valid, unexpired token.
// The auth middleware uses this to stash identity on the request context.
func (s *TokenService) VerifiedClaims(tokenStr string) (*Claims, error) {
	return s.parse(tokenStr, true)
}

func (s *TokenService) parse(tokenStr string, checkExpiry bool) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	}

	if !checkExpiry {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)

	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
