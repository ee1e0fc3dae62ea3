// internal/utils/jwt.go
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// IdentityClaims are carried by tokens minted by the identity provider.
type IdentityClaims struct {
	Principal string `json:"principal"`
	AppRole   string `json:"app_role"`
	jwt.RegisteredClaims
}

var (
	identitySecret = []byte("your-secret-key-change-in-production")
	identityIssuer = "resona-identity"
)

func SetIdentitySecret(secret, issuer string) {
	identitySecret = []byte(secret)
	if issuer != "" {
		identityIssuer = issuer
	}
}

// GenerateIdentityToken mints a token the way the identity provider does.
// Used by tests and local development.
func GenerateIdentityToken(principal, appRole string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := IdentityClaims{
		Principal: principal,
		AppRole:   appRole,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    identityIssuer,
			Subject:   principal,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(identitySecret)
}

func ValidateIdentityToken(tokenString string) (*IdentityClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return identitySecret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if !claims.VerifyIssuer(identityIssuer, true) {
		return nil, errors.New("unexpected token issuer")
	}
	if claims.Principal == "" {
		return nil, errors.New("token has no principal")
	}

	return claims, nil
}
