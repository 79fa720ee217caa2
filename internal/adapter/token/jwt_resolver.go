// Package token resolves bearer credentials into principal ids.
// Credential issuance lives outside this service; the resolver only
// verifies what it is handed.
package token

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/example/inventory-order-service/internal/domain"
)

// JWTResolver verifies HS256-signed tokens carrying the principal id in
// the subject claim.
type JWTResolver struct {
	Secret []byte
}

func NewJWTResolver(secret []byte) *JWTResolver {
	return &JWTResolver{Secret: secret}
}

func (r *JWTResolver) Resolve(_ context.Context, credential string) (string, error) {
	if credential == "" {
		return "", domain.ErrCredentialMissing
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(credential, claims,
		func(*jwt.Token) (any, error) { return r.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrCredentialExpired
		}
		return "", domain.ErrCredentialInvalid
	}
	if claims.Subject == "" {
		return "", domain.ErrCredentialInvalid
	}
	return claims.Subject, nil
}

var _ domain.PrincipalResolver = (*JWTResolver)(nil)
