package auth

import (
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// TokenIssuer signs and verifies the bearer tokens handed out at login and
// registration. Tokens carry the user id in the standard subject claim and
// expire a fixed window after issuance.
type TokenIssuer struct {
	key jwk.Key
	ttl time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("set JWT_SECRET")
	}

	key, err := jwk.Import([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("import signing key: %w", err)
	}

	return &TokenIssuer{key: key, ttl: ttl}, nil
}

func (i *TokenIssuer) Issue(userID string) (string, error) {
	now := time.Now()

	token, err := jwt.NewBuilder().
		Subject(userID).
		IssuedAt(now).
		Expiration(now.Add(i.ttl)).
		Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), i.key))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return string(signed), nil
}

// Verify parses and validates a signed token and returns the user id it
// carries. Expired or tampered tokens fail validation.
func (i *TokenIssuer) Verify(signed string) (string, error) {
	token, err := jwt.Parse(
		[]byte(signed),
		jwt.WithKey(jwa.HS256(), i.key),
		jwt.WithValidate(true),
	)
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	userID, ok := token.Subject()
	if !ok || userID == "" {
		return "", fmt.Errorf("token has no subject claim")
	}

	return userID, nil
}
