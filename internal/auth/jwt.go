package auth

import (
	"errors" // Sentinel errors
	"time"   // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// TokenLifetime is how long an issued token stays valid. There is no refresh
// mechanism; clients re-login after expiry.
const TokenLifetime = 15 * time.Minute

// Authentication errors surfaced to clients
var (
	ErrTokenExpired = errors.New("Token has expired") // Token past its exp claim
	ErrInvalidScope = errors.New("Invalid scope")     // Scope claim does not match the route
	ErrUserNotFound = errors.New("User not found")    // Subject user no longer exists
)

// JWT Claims
type Claims struct {
	UID                  uint  `json:"uid"`   // Custom claim for user ID
	Scope                Scope `json:"scope"` // Custom claim: admin or ambassador
	jwt.RegisteredClaims       // Standard JWT claims (iat, exp)
}

// GenerateJWT creates a signed token for a given user ID and scope
func GenerateJWT(uid uint, scope Scope, secret string) (string, error) {
	now := time.Now()
	// Set token claims
	claims := Claims{
		UID:   uid,   // Custom claim for user ID
		Scope: scope, // Custom claim for scope
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)), // Token expires in 15 minutes
			IssuedAt:  jwt.NewNumericDate(now),                    // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a token string. An expired token is reported
// as ErrTokenExpired so callers can surface the exact failure.
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	})
	// Check for parsing errors
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired // Distinguish expiry from other failures
		}
		return nil, err // Return error if parsing fails
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, jwt.ErrSignatureInvalid
}
