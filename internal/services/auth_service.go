// Package services – AuthService
//
// This file implements the AuthService, which governs account registration,
// credential verification, and the session lifecycle. Registration relies
// on the users table's unique email index rather than a check-then-insert
// sequence, and every issued session is a store-backed row with a fixed
// expiry; there is no ambient in-process session state. Service-level
// errors (e.g. ErrDuplicateEmail, ErrUserNotFound, ErrInvalidCredentials)
// are returned for predictable cases so handlers can map them to HTTP
// results consistently.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/iksninja/503004-wongnok-recipes/internal/crypto"
	"github.com/iksninja/503004-wongnok-recipes/internal/domain"
	"github.com/iksninja/503004-wongnok-recipes/internal/repo"
)

// AuthService implements the use-cases around accounts and sessions. It
// hashes and verifies passwords via internal/crypto and persists users and
// session tokens using the provided GORM handle.
type AuthService struct {
	// DB is the database handle used for all account operations.
	DB *gorm.DB
	// SessionTTL is the fixed lifetime of issued sessions.
	SessionTTL time.Duration
}

// NewAuthService constructs an AuthService with the default 24h session
// lifetime unless ttl overrides it.
func NewAuthService(db *gorm.DB, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{DB: db, SessionTTL: ttl}
}

// Register creates a new account.
//
// Semantics and validation:
//   - username, email, and password must be non-blank; otherwise
//     ErrMissingFields.
//   - The email must be unused. Uniqueness is enforced by the database
//     index; a violation is translated to ErrDuplicateEmail.
//   - The password is stored only as an argon2id hash; the plaintext never
//     leaves this method.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u, err := repo.CreateUser(ctx, s.DB, username, email, hash)
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return u, nil
}

// Login verifies the credentials for email and, on success, issues a fresh
// opaque session token bound to the user for SessionTTL.
//
// Errors:
//   - ErrUserNotFound when no account has that email.
//   - ErrInvalidCredentials when the password does not match; hash
//     comparison is constant-time (see crypto.VerifyPassword).
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, "", ErrMissingFields
	}

	u, err := repo.GetUserByEmail(ctx, s.DB, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}

	match, err := crypto.VerifyPassword(password, u.PasswordHash)
	if err != nil {
		return nil, "", err
	}
	if !match {
		return nil, "", ErrInvalidCredentials
	}

	token, err := crypto.NewSessionToken()
	if err != nil {
		return nil, "", err
	}
	if _, err := repo.CreateSession(ctx, s.DB, u.ID, token, s.SessionTTL); err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Logout invalidates token immediately. Unknown or already-destroyed tokens
// are not an error: logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return repo.DeleteSession(ctx, s.DB, token)
}

// Resolve maps a session token to the authenticated user id. ok is false
// for unknown or expired tokens; err reports storage failures only.
func (s *AuthService) Resolve(ctx context.Context, token string) (userID string, ok bool, err error) {
	if token == "" {
		return "", false, nil
	}
	sess, err := repo.GetSession(ctx, s.DB, token, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return sess.UserID, true, nil
}
