package api

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/omar-mohamud/raagsanplatform/errs"
)

// admin sessions last one day, matching the portal's cookie lifetime
const sessionTTL = 24 * time.Hour

type sessionClaims struct {
	Username string `json:"un"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// tokenManager creates and checks the HS256 session tokens the admin portal
// uses.
type tokenManager struct {
	secret []byte
	ttl    time.Duration
}

func newTokenManager(secret string, ttl time.Duration) tokenManager {
	return tokenManager{secret: []byte(secret), ttl: ttl}
}

// CreateToken issues a session token for an authenticated admin.
func (tm tokenManager) CreateToken(username string, now time.Time) (string, error) {
	claims := &sessionClaims{
		Username: username,
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// CheckToken validates a session token and returns its claims.
func (tm tokenManager) CheckToken(requestToken string) (sessionClaims, error) {
	claims := sessionClaims{}
	_, err := jwt.ParseWithClaims(requestToken, &claims, func(_ *jwt.Token) (any, error) {
		return tm.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return sessionClaims{}, errs.NewExpiredTokenError()
		}
		return sessionClaims{}, errs.NewInvalidTokenError()
	}
	return claims, nil
}
