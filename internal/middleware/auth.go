package middleware

import (
	"errors"
	"strconv"

	"taskquest/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// Claim values shared by token issuance and verification.
const (
	TokenIssuer   = "taskquest-api"
	TokenAudience = "taskquest-client"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// TokenClaims holds the verified identity claims of a bearer token.
type TokenClaims struct {
	UserID uint
	// JTI supports revocation; empty when the token carries none.
	JTI string
}

// ParseToken verifies the token's signature, issuer, and audience and
// extracts the user ID from its "sub" claim.
func ParseToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	if issuer, ok := claims["iss"].(string); !ok || issuer != TokenIssuer {
		return nil, errors.New("invalid token issuer")
	}
	if audience, ok := claims["aud"].(string); !ok || audience != TokenAudience {
		return nil, errors.New("invalid token audience")
	}

	// User ID lives in the "sub" claim (subject claim per RFC 7519).
	subStr, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("invalid token subject")
	}
	userID, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return nil, errors.New("invalid user ID in token")
	}

	out := &TokenClaims{UserID: uint(userID)}
	if jti, ok := claims["jti"].(string); ok {
		out.JTI = jti
	}
	return out, nil
}
