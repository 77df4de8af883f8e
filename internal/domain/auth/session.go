package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Grace-nduta/Airbnb-Platform/internal/domain/user"
)

var (
	ErrTokenRequired   = errors.New("auth: token is required")
	ErrUserRequired    = errors.New("auth: user is required")
	ErrTTLInvalid      = errors.New("auth: ttl must be positive")
	ErrSessionNotFound = errors.New("auth: session not found")
)

// Token is an opaque bearer credential. Its value carries no claims;
// everything about the caller is looked up server-side.
type Token string

// Session binds a token to a user for a bounded lifetime. The role is
// captured at issue time purely as a convenience for logging; access
// decisions always reload the user.
type Session struct {
	Token     Token
	UserID    user.ID
	Role      user.Role
	CreatedAt time.Time
	ExpiresAt time.Time
}

type CreateSessionParams struct {
	Token  Token
	UserID user.ID
	Role   user.Role
	TTL    time.Duration
	Now    time.Time
}

func NewSession(params CreateSessionParams) (*Session, error) {
	token := Token(strings.TrimSpace(string(params.Token)))
	switch {
	case token == "":
		return nil, ErrTokenRequired
	case strings.TrimSpace(string(params.UserID)) == "":
		return nil, ErrUserRequired
	case params.TTL <= 0:
		return nil, ErrTTLInvalid
	}
	issued := params.Now
	if issued.IsZero() {
		issued = time.Now()
	}
	issued = issued.UTC()
	return &Session{
		Token:     token,
		UserID:    params.UserID,
		Role:      params.Role,
		CreatedAt: issued,
		ExpiresAt: issued.Add(params.TTL),
	}, nil
}

// Expired reports whether the session is no longer usable at the given
// instant. A zero instant means now.
func (s *Session) Expired(at time.Time) bool {
	if at.IsZero() {
		at = time.Now()
	}
	return !s.ExpiresAt.After(at.UTC())
}

type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, token Token) (*Session, error)
	Delete(ctx context.Context, token Token) error
	DeleteByUser(ctx context.Context, userID user.ID) error
}
