package client

import (
	"time"

	"github.com/chronic-org/chronic/errors"
	"github.com/golang-jwt/jwt/v4"
)

// CheckToken inspects the session token without verifying its signature;
// verification is the backend's job. It distinguishes "never signed in"
// from "token expired" so callers can prompt accordingly.
func (c *Client) CheckToken() error {
	token := c.Token()
	if token == "" {
		return errors.NotAuthenticated
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return errors.NotAuthenticated
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return errors.TokenExpired
	}
	return nil
}
