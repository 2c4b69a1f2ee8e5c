package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims is the payload of access tokens issued by the identity provider.
// The subject identifies the acting staff member.
type JWTClaims struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// ActorID returns the subject of the token.
func (c *JWTClaims) ActorID() string {
	if c == nil {
		return ""
	}
	return c.Subject
}
