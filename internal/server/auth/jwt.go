// Package auth issues and verifies the HS256 access tokens carried in the
// access_token metadata of gRPC calls.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/gympro/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the account id as the JWT subject.
type Claims struct {
	jwt.RegisteredClaims
}

// Issuer signs tokens for one secret and lifetime.
type Issuer struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

func NewIssuer(secret []byte, validity time.Duration) *Issuer {
	return &Issuer{secret: secret, validity: validity, now: time.Now}
}

func (i *Issuer) Generate(accountID string) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validity)),
		},
	})
	return token.SignedString(i.secret)
}

// AccountID validates tokenString and returns its subject. Expired tokens
// yield common.ErrTokenExpired, anything else common.ErrInvalidToken.
func (i *Issuer) AccountID(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}
	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}
	return claims.Subject, nil
}
