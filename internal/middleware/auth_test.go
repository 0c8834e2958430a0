package middleware

import (
	"strconv"
	"testing"
	"time"

	"taskquest/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToken(t *testing.T) {
	secret := "test-secret-key-12345678901234567890123456789012"
	InitMiddleware(&config.Config{JWTSecret: secret})

	generateToken := func(mutate func(jwt.MapClaims)) string {
		claims := jwt.MapClaims{
			"sub": strconv.FormatUint(42, 10),
			"iss": TokenIssuer,
			"aud": TokenAudience,
			"exp": time.Now().Add(time.Hour).Unix(),
			"jti": "token-1",
		}
		if mutate != nil {
			mutate(claims)
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		s, err := token.SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}

	t.Run("Happy Path", func(t *testing.T) {
		claims, err := ParseToken(generateToken(nil))
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
		assert.Equal(t, "token-1", claims.JTI)
	})

	t.Run("Malformed Token", func(t *testing.T) {
		_, err := ParseToken("malformed.token.here")
		assert.Error(t, err)
	})

	t.Run("Expired Token", func(t *testing.T) {
		_, err := ParseToken(generateToken(func(c jwt.MapClaims) {
			c["exp"] = time.Now().Add(-time.Hour).Unix()
		}))
		assert.Error(t, err)
	})

	t.Run("Wrong Issuer", func(t *testing.T) {
		_, err := ParseToken(generateToken(func(c jwt.MapClaims) {
			c["iss"] = "someone-else"
		}))
		assert.Error(t, err)
	})

	t.Run("Wrong Audience", func(t *testing.T) {
		_, err := ParseToken(generateToken(func(c jwt.MapClaims) {
			c["aud"] = "someone-else"
		}))
		assert.Error(t, err)
	})

	t.Run("Non-Numeric Subject", func(t *testing.T) {
		_, err := ParseToken(generateToken(func(c jwt.MapClaims) {
			c["sub"] = "not-a-number"
		}))
		assert.Error(t, err)
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		claims := jwt.MapClaims{
			"sub": "42",
			"iss": TokenIssuer,
			"aud": TokenAudience,
			"exp": time.Now().Add(time.Hour).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		s, err := token.SignedString([]byte("a-completely-different-secret-1234567890"))
		require.NoError(t, err)
		_, err = ParseToken(s)
		assert.Error(t, err)
	})

	t.Run("Missing JTI", func(t *testing.T) {
		claims, err := ParseToken(generateToken(func(c jwt.MapClaims) {
			delete(c, "jti")
		}))
		require.NoError(t, err)
		assert.Empty(t, claims.JTI)
	})
}
