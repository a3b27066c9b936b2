// Package auth issues and verifies the HS256 access tokens that carry a
// caller's account name.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/amail/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the registered claims plus the account the token speaks for.
type Claims struct {
	jwt.RegisteredClaims
	Account string
}

func GenerateToken(account string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Account: account,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// AccountFromToken verifies tokenString and returns its account.
// Expired tokens yield common.ErrTokenExpired, every other failure
// common.ErrInvalidToken.
func AccountFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Account == "" {
		return "", common.ErrInvalidToken
	}
	return claims.Account, nil
}
