// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements session authentication for protected routes. The
// middleware resolves an opaque session token, carried by a cookie or an
// Authorization header, to a user id through an injected resolver function.
// Token storage and expiry live behind the resolver; this layer only decides
// whether a request may proceed and under which identity.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SessionResolver maps a session token to the owning user id.
//
// It returns ok=false for unknown or expired tokens without an error; a
// non-nil error signals an infrastructure failure (e.g., the database is
// unreachable) and results in a 500 rather than a 401.
type SessionResolver func(ctx context.Context, token string) (userID string, ok bool, err error)

// SessionOptions configures RequireSession.
type SessionOptions struct {
	// CookieName is the cookie carrying the session token.
	CookieName string
	// Resolver validates tokens. Required.
	Resolver SessionResolver
}

// RequireSession returns a Gin middleware that rejects unauthenticated
// requests with 401 and stores the resolved user id in the Gin context under
// "userID" for downstream handlers.
//
// Token lookup order:
//  1. the configured session cookie
//  2. "Authorization: Bearer <token>" (non-browser clients)
//
// The error body matches the handlers' standard envelope:
//
//	HTTP/1.1 401 Unauthorized
//	{
//	  "request_id": "<uuid>",
//	  "code":       "unauthorized",
//	  "message":    "authentication required"
//	}
func RequireSession(opt SessionOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionTokenFrom(c, opt.CookieName)
		if token == "" {
			abortUnauthorized(c, "authentication required")
			return
		}

		uid, ok, err := opt.Resolver(c.Request.Context(), token)
		if err != nil {
			LoggerFrom(c).Error().Err(err).Msg("session resolution failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"request_id": c.Writer.Header().Get("X-Request-ID"),
				"code":       "internal_error",
				"message":    "could not verify session",
			})
			return
		}
		if !ok {
			abortUnauthorized(c, "session expired or invalid")
			return
		}

		c.Set("userID", uid)
		c.Next()
	}
}

// sessionTokenFrom extracts the session token from the cookie or, failing
// that, from an Authorization Bearer header.
func sessionTokenFrom(c *gin.Context, cookieName string) string {
	if cookieName != "" {
		if tok, err := c.Cookie(cookieName); err == nil && tok != "" {
			return tok
		}
	}
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

// abortUnauthorized writes the standard 401 envelope and stops the chain.
func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": c.Writer.Header().Get("X-Request-ID"),
		"code":       "unauthorized",
		"message":    msg,
	})
}
