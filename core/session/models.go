package session

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

// Event is an authentication lifecycle transition.
type Event string

const (
	SignedIn       Event = "SIGNED_IN"
	SignedOut      Event = "SIGNED_OUT"
	TokenRefreshed Event = "TOKEN_REFRESHED" // a no-op for data purposes
)

// Claims represents the authorization claims the auth provider transmits via a JWT.
// Subject is the user identifier.
type Claims struct {
	jwt.StandardClaims
	Email    string `json:"email,omitempty"`
	FullName string `json:"full_name,omitempty"` // display name supplied by the identity provider, if any
}

// Session is the authenticated context identifying the current user to the store.
type Session struct {
	Token     string    `json:"-"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	FullName  string    `json:"full_name,omitempty"`
	IssuedAt  time.Time `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

func fromClaims(token string, claims *Claims) Session {
	return Session{
		Token:     token,
		UserID:    claims.Subject,
		Email:     claims.Email,
		FullName:  claims.FullName,
		IssuedAt:  time.Unix(claims.IssuedAt, 0),
		ExpiresAt: time.Unix(claims.ExpiresAt, 0),
	}
}
