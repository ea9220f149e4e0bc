package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	uuid "github.com/google/uuid"
)

// ErrSigningSecretMissing indicates the manager was constructed without a secret.
var ErrSigningSecretMissing = errors.New("jwt: signing secret not configured")

// AccessTokenClaims is the claim set carried by issued access tokens.
type AccessTokenClaims struct {
	AccountID string `json:"uid"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies HS256 access tokens with a shared secret.
type JWTManager struct {
	secret []byte
	issuer string
}

// NewJWTManager constructs a JWTManager for the supplied secret and issuer.
func NewJWTManager(secret, issuer string) (*JWTManager, error) {
	if secret == "" {
		return nil, ErrSigningSecretMissing
	}
	return &JWTManager{secret: []byte(secret), issuer: issuer}, nil
}

// Sign issues an access token for the account valid for the supplied TTL.
func (m *JWTManager) Sign(accountID string, issuedAt time.Time, ttl time.Duration) (string, error) {
	claims := AccessTokenClaims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.issuer,
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: sign access token: %w", err)
	}

	return signed, nil
}

// Parse validates the token signature and standard claims and returns the claim set.
func (m *JWTManager) Parse(raw string) (*AccessTokenClaims, error) {
	claims := &AccessTokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("jwt: unexpected signing method %q", t.Method.Alg())
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	return claims, nil
}
