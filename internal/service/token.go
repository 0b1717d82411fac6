package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTService issues and verifies the signed identity tokens. The signing
// key is process-wide configuration loaded once at startup; there is no
// revocation list, a token stays valid until its embedded expiry.
type JWTService struct {
	secretKey string
}

func NewJWTService(secretKey string) *JWTService {
	return &JWTService{
		secretKey: secretKey,
	}
}

// Issue creates a signed token carrying the user identity with an expiry
// derived from ttl. It does not fail for well-formed input.
func (s *JWTService) Issue(userID uint, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":  userID,
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks signature and expiry and returns the decoded claims.
// Any failure (malformed, expired, bad signature) comes back as an error;
// callers treat every error uniformly as an invalid token.
func (s *JWTService) Verify(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.secretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// SubjectID extracts the user identity from verified claims
func SubjectID(claims jwt.MapClaims) (uint, bool) {
	idFloat, ok := claims["id"].(float64)
	if !ok {
		return 0, false
	}
	return uint(idFloat), true
}
