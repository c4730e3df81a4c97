package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "birdlog-api"
	tokenAudience = "birdlog-client"
	tokenLifetime = 7 * 24 * time.Hour
)

// TokenCodec issues and verifies signed, expiring session tokens. A token
// binds a claimed user id; any tamper, expiry or identity mismatch degrades
// the caller to anonymous. Logout is purely client-side cookie deletion.
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec creates a codec signing with the given server secret.
func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret)}
}

// Issue creates a session token for the given user ID.
func (tc *TokenCodec) Issue(userID uint) (string, error) {
	if len(tc.secret) == 0 {
		return "", fmt.Errorf("session secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": now.Add(tokenLifetime).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tc.secret)
}

// Verify reports whether tokenString is a valid session token issued for
// claimedUserID. Any parse, signature, expiry or identity mismatch yields
// false; callers treat that as an anonymous request.
func (tc *TokenCodec) Verify(claimedUserID uint, tokenString string) bool {
	userID, ok := tc.Decode(tokenString)
	return ok && userID == claimedUserID
}

// Decode parses and validates a session token, returning the user ID it was
// issued for.
func (tc *TokenCodec) Decode(tokenString string) (uint, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return tc.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithAudience(tokenAudience))
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}

	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, false
	}

	return uint(userID), true
}
