package credential

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenService struct {
	secret string
	expiry time.Duration
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

func NewTokenService(secret string, expiryMinutes int) *TokenService {
	return &TokenService{
		secret: secret,
		expiry: time.Duration(expiryMinutes) * time.Minute,
	}
}

func (ts *TokenService) Expiry() time.Duration {
	return ts.expiry
}

// Issue signs a session token binding the user id, expiring after the
// configured TTL.
func (ts *TokenService) Issue(userID string) (string, error) {
	now := time.Now()

	claims := JWTCustomClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.secret))
}

// Verify parses and validates the token and returns the user id it was
// issued for. Expired, malformed and tampered tokens all fail.
func (ts *TokenService) Verify(tokenString string) (string, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.secret), nil
	})

	if err != nil {
		return "", err
	}

	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	return claims.UserID, nil
}
