// Package identity adapts the external identity provider's tokens into a
// verified email claim.
package identity

import (
	"context"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/zapshift/parcel-system/internal/core/domain"
)

// JWTVerifier validates bearer tokens signed by the identity provider
// (HS256, shared secret) and extracts the email claim.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify strips the Bearer scheme from the header value and validates the
// token. Every call re-verifies; nothing is cached. Any failure (missing
// header, wrong scheme, bad signature, expired token, absent email claim)
// collapses to domain.ErrUnauthorized so callers reveal nothing about why.
func (v *JWTVerifier) Verify(_ context.Context, authorizationHeader string) (string, error) {
	if authorizationHeader == "" {
		return "", domain.ErrUnauthorized
	}

	parts := strings.SplitN(authorizationHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", domain.ErrUnauthorized
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrUnauthorized
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return "", domain.ErrUnauthorized
	}
	return email, nil
}
