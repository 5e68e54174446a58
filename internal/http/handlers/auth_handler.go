// Account HTTP handlers.
//
// This file exposes REST endpoints for registration and session management:
//   - POST /register  (create account)
//   - POST /login     (verify credentials, issue session cookie)
//   - POST /logout    (invalidate session, clear cookie)
//
// Sessions are carried by an HttpOnly cookie. Logout is idempotent: it
// succeeds whether or not a live session accompanies the request.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/iksninja/503004-wongnok-recipes/internal/services"
)

//
// DTOs
//

// RegisterRequest is the JSON payload for creating an account.
type RegisterRequest struct {
	// Username is the public display name attached to recipes.
	Username string `json:"username" binding:"required" example:"ann"`
	// Email is the login identifier; unique across accounts.
	Email string `json:"email" binding:"required,email" example:"ann@example.com"`
	// Password is the plaintext password; stored only as a hash.
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
}

// LoginRequest is the JSON payload for opening a session.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ann@example.com"`
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
}

// UserResponse is the public projection of an account. It never carries
// credential material.
type UserResponse struct {
	ID       string `json:"id" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	Username string `json:"username" example:"ann"`
	Email    string `json:"email" example:"ann@example.com"`
}

// RegisterResponse wraps the created user after a successful registration.
type RegisterResponse struct {
	Message string       `json:"message" example:"User registered successfully"`
	User    UserResponse `json:"user"`
}

// LoginResponse wraps the authenticated user after a successful login.
type LoginResponse struct {
	Message string       `json:"message" example:"Login successful"`
	User    UserResponse `json:"user"`
}

//
// Cookie helpers
//

// setSessionCookie issues the session cookie for token with the configured
// name, lifetime and Secure flag. The cookie is HttpOnly and SameSite=Strict.
func (h *Handlers) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookie.Name, token, int(h.cookie.MaxAge.Seconds()), "/", "", h.cookie.Secure, true)
}

// clearSessionCookie expires the session cookie on the client.
func (h *Handlers) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
}

// sessionToken extracts the session token from the request: the session
// cookie first, then an "Authorization: Bearer" header as fallback.
func (h *Handlers) sessionToken(c *gin.Context) string {
	if tok, err := c.Cookie(h.cookie.Name); err == nil && tok != "" {
		return tok
	}
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

//
// Handlers
//

// Register godoc
// @ID          register
// @Summary     Register a new account
// @Description Creates an account with a unique email. The password is stored only as an Argon2id hash.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.RegisterRequest  true  "Registration payload"
//
// @Success     200  {object}  handlers.RegisterResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request or email already registered"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /register [post]
func (h *Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username, email and password are required")
		return
	}

	u, err := h.authSvc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username, email and password are required")
		case errors.Is(err, services.ErrDuplicateEmail):
			fail(c, http.StatusBadRequest, ErrCodeConflict, "Email already registered")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, "could not register user")
		}
		return
	}

	ok(c, http.StatusOK, RegisterResponse{
		Message: "User registered successfully",
		User:    UserResponse{ID: u.ID, Username: u.Username, Email: u.Email},
	})
}

// Login godoc
// @ID          login
// @Summary     Log in
// @Description Verifies credentials and issues a session cookie. The same generic error is returned for unknown emails and wrong passwords.
// @Tags        Auth
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.LoginRequest  true  "Login payload"
//
// @Success     200  {object}  handlers.LoginResponse
// @Header      200  {string}  Set-Cookie  "Session cookie"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request or invalid credentials"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "email and password are required")
		return
	}

	u, token, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "email and password are required")
		case errors.Is(err, services.ErrUserNotFound), errors.Is(err, services.ErrInvalidCredentials):
			// One message for both cases so the endpoint cannot be used to
			// enumerate which emails hold an account.
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Invalid email or password")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not log in")
		}
		return
	}

	h.setSessionCookie(c, token)
	ok(c, http.StatusOK, LoginResponse{
		Message: "Login successful",
		User:    UserResponse{ID: u.ID, Username: u.Username, Email: u.Email},
	})
}

// Logout godoc
// @ID          logout
// @Summary     Log out
// @Description Invalidates the current session and clears the session cookie. Succeeds even without a live session.
// @Tags        Auth
// @Produce     json
//
// @Success     200  {object}  handlers.MessageResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /logout [post]
func (h *Handlers) Logout(c *gin.Context) {
	if tok := h.sessionToken(c); tok != "" {
		if err := h.authSvc.Logout(c.Request.Context(), tok); err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not log out")
			return
		}
	}
	h.clearSessionCookie(c)
	ok(c, http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}
