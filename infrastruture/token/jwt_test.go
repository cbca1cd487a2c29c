package token

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJwtService(t *testing.T) {
	// Setup
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatalf("Error generating random bytes: %v", err)
	}
	secretKey := base64.URLEncoding.EncodeToString(bytes)
	issuer := "testIssuer"

	svc := NewJwtService(secretKey, issuer)

	t.Run("Generate and Decode valid token", func(t *testing.T) {
		claims := map[string]interface{}{
			"user_id": 12345,
			"role":    "admin",
		}
		expDuration := time.Minute * 5

		// Generate token
		token, err := svc.Generate(claims, expDuration)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		// Decode token
		decoded, err := svc.Decode(token)
		assert.NoError(t, err)
		assert.Equal(t, "admin", decoded["role"])
		assert.EqualValues(t, 12345, decoded["user_id"])
	})

	t.Run("Decode invalid token", func(t *testing.T) {
		invalidToken := "invalidTokenString"

		// Decode should fail
		_, err := svc.Decode(invalidToken)
		assert.Error(t, err)
	})

	t.Run("Decode expired token", func(t *testing.T) {
		claims := map[string]interface{}{
			"user_id": 12345,
			"role":    "admin",
		}
		expDuration := -time.Minute // Expired token

		// Generate expired token
		token, err := svc.Generate(claims, expDuration)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		// Decode should fail
		_, err = svc.Decode(token)
		assert.Error(t, err)
	})

	t.Run("Reserved claims cannot be overridden", func(t *testing.T) {
		token, err := svc.Generate(map[string]interface{}{"iss": "someone-else", "kind": "run"}, time.Minute)
		assert.NoError(t, err)

		decoded, err := svc.Decode(token)
		assert.NoError(t, err)
		assert.Equal(t, issuer, decoded["iss"])
		assert.Equal(t, "run", decoded["kind"])
	})

	t.Run("Decode token from another issuer", func(t *testing.T) {
		other := NewJwtService(secretKey, "otherIssuer")
		token, err := other.Generate(map[string]interface{}{"user_id": 1}, time.Minute)
		assert.NoError(t, err)

		_, err = svc.Decode(token)
		assert.ErrorIs(t, err, ErrIssuerMismatch)
	})

	t.Run("Decode token signed with another secret", func(t *testing.T) {
		other := NewJwtService("another-secret", issuer)
		token, err := other.Generate(map[string]interface{}{"user_id": 1}, time.Minute)
		assert.NoError(t, err)

		_, err = svc.Decode(token)
		assert.Error(t, err)
	})

	t.Run("Generate token with empty claims", func(t *testing.T) {
		emptyClaims := map[string]interface{}{}
		expDuration := time.Minute * 5

		// Generate token
		token, err := svc.Generate(emptyClaims, expDuration)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		// Decode token
		decodedClaims, err := svc.Decode(token)
		assert.NoError(t, err)
		assert.Empty(t, decodedClaims["user_id"])
		assert.Empty(t, decodedClaims["role"])
	})
}
