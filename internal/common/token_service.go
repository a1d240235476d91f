package common

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims are the claims carried by an access token.
type TokenClaims struct {
	UID string `json:"uid"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 access tokens.
type TokenService struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewTokenService(secretKey []byte, ttl time.Duration) *TokenService {
	return &TokenService{
		secretKey: secretKey,
		ttl:       ttl,
		now:       time.Now,
	}
}

// Generate signs a token for uid. expiresIn is the lifetime in seconds.
func (s *TokenService) Generate(uid string) (token string, expiresIn int64, err error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := TokenClaims{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return token, int64(s.ttl / time.Second), nil
}

// Verify checks signature, method and expiry.
func (s *TokenService) Verify(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UID == "" {
		return nil, errors.New("missing or invalid uid claim")
	}

	return claims, nil
}

// TTL is the access token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}
