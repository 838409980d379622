package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errNoExpiry = errors.New("token has no expiry claim")

// DecodeExpiry extracts the "exp" claim from a JWT without verifying the
// signature. The client has no signing key, verification is the server's
// job on every protected request. Pure function, no side effects.
func DecodeExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}

	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("error while decoding token. Err: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("error while reading expiry claim. Err: %w", err)
	}
	if exp == nil {
		return time.Time{}, errNoExpiry
	}

	return exp.Time, nil
}
