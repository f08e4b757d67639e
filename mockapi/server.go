// Package mockapi is an in-memory stand-in for the book-store user API,
// used for local development and for end-to-end exercising of the client.
// It speaks the same envelopes as the real server and issues real HS256
// tokens, but keeps users, sessions and refresh tokens in process memory.
package mockapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/segmentio/ksuid"
)

type Config struct {
	SigningKey      []byte
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type userRecord struct {
	UserID     string
	Name       string
	Email      string
	Password   string // plaintext; this server exists for development only
	IsVerified bool
}

type Server struct {
	config Config
	echo   *echo.Echo

	mu            sync.Mutex
	users         map[string]*userRecord // keyed by email
	sessions      map[string]string      // session id -> user id
	refreshTokens map[string]string      // user id -> refresh token
}

func New(config Config) (*Server, error) {
	if len(config.SigningKey) == 0 {
		return nil, fmt.Errorf("signing key is required")
	}
	if config.AccessTokenTTL == 0 {
		config.AccessTokenTTL = 15 * time.Minute
	}
	if config.RefreshTokenTTL == 0 {
		config.RefreshTokenTTL = 7 * 24 * time.Hour
	}

	server := &Server{
		config:        config,
		users:         map[string]*userRecord{},
		sessions:      map[string]string{},
		refreshTokens: map[string]string{},
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	api := e.Group("/api/v1/user")
	api.POST("/signup", server.signup)
	api.POST("/login", server.login)
	api.POST("/user-account-verification/:token/:email", server.verifyAccount)
	api.POST("/send-password-reset-link", server.sendPasswordResetLink)
	api.POST("/reset-password/:token", server.resetPassword)
	api.POST("/renew-access-token", server.renewAccessToken)
	api.POST("/logout", server.logout)

	server.echo = e
	return server, nil
}

// Handler exposes the server as an http.Handler, for mounting in tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves on the given address until the process ends.
func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

// errorBody mirrors the real server's error shape.
type errorBody struct {
	Detail string `json:"detail"`
}

func fail(c echo.Context, code int, detail string) error {
	return c.JSON(code, errorBody{Detail: detail})
}

func userData(u *userRecord) map[string]any {
	return map[string]any{
		"user_id":     u.UserID,
		"name":        u.Name,
		"email":       u.Email,
		"is_verified": u.IsVerified,
	}
}

func (s *Server) signup(c echo.Context) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil || req.Name == "" || req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "All fields are required!")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[req.Email]; exists {
		return fail(c, http.StatusConflict, "User with this email already exists!")
	}

	user := &userRecord{
		UserID:   ksuid.New().String(),
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	s.users[req.Email] = user

	// the real server mails this link; here it only reaches the log
	token, err := s.issueToken(user, "", s.config.AccessTokenTTL)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to send account verification email!")
	}
	slog.Info("account verification token issued", "email", user.Email, "token", token)

	return c.JSON(http.StatusCreated, map[string]any{
		"status":  "success",
		"message": "User created successfully. Please check your email box and verify your account.",
		"user":    userData(user),
	})
}

func (s *Server) login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil || req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "All fields are required!")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[req.Email]
	if !ok {
		return fail(c, http.StatusNotFound, "User doesn't exist!")
	}
	if user.Password != req.Password {
		return fail(c, http.StatusBadRequest, "Password is incorrect!")
	}
	if !user.IsVerified {
		return c.JSON(http.StatusOK, map[string]any{
			"status":  "failed",
			"message": "User is not verified! Please check your email and verify your account.",
			"user":    userData(user),
		})
	}

	sessionID := ksuid.New().String()
	accessToken, err := s.issueToken(user, sessionID, s.config.AccessTokenTTL)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to issue tokens!")
	}
	refreshToken, err := s.issueToken(user, sessionID, s.config.RefreshTokenTTL)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to issue tokens!")
	}

	s.sessions[sessionID] = user.UserID
	s.refreshTokens[user.UserID] = refreshToken

	return c.JSON(http.StatusOK, map[string]any{
		"status":            "success",
		"message":           "User logged in successfully!",
		"user":              userData(user),
		"jwt_access_token":  accessToken,
		"jwt_refresh_token": refreshToken,
	})
}

func (s *Server) verifyAccount(c echo.Context) error {
	email, _, err := s.parseToken(c.Param("token"), true)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Invalid token!")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[email]
	if !ok {
		return fail(c, http.StatusNotFound, "User not found!")
	}
	if user.IsVerified {
		return c.JSON(http.StatusOK, map[string]any{
			"status":  "success",
			"message": "User account already verified. Login to continue.",
		})
	}
	user.IsVerified = true

	return c.JSON(http.StatusOK, map[string]any{
		"status":  "success",
		"message": "User account verified successfully. Login to continue.",
	})
}

func (s *Server) sendPasswordResetLink(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil || req.Email == "" {
		return fail(c, http.StatusBadRequest, "Email is required!")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[req.Email]
	if !ok {
		return fail(c, http.StatusNotFound, "User doesn't exist!")
	}

	token, err := s.issueToken(user, "", s.config.AccessTokenTTL)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to send reset password email!")
	}
	slog.Info("password reset token issued", "email", user.Email, "token", token)

	return c.JSON(http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Reset password link sent successfully. Please check your email.",
	})
}

func (s *Server) resetPassword(c echo.Context) error {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil || req.Password == "" {
		return fail(c, http.StatusBadRequest, "New password is required!")
	}

	email, _, err := s.parseToken(c.Param("token"), true)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Invalid token!")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[email]
	if !ok {
		return fail(c, http.StatusNotFound, "User doesn't exist!")
	}
	user.Password = req.Password

	return c.JSON(http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Password reset successfully. Login to continue.",
	})
}

func (s *Server) renewAccessToken(c echo.Context) error {
	bearer := bearerToken(c)
	if bearer == "" {
		return fail(c, http.StatusUnauthorized, "Token is missing")
	}

	email, sessionID, err := s.parseToken(bearer, true)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Invalid refresh token!")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[email]
	if !ok {
		return fail(c, http.StatusUnauthorized, "Invalid refresh token!")
	}
	if _, ok := s.sessions[sessionID]; !ok {
		return fail(c, http.StatusUnauthorized, "User session is not valid! Please login again to continue.")
	}
	stored, ok := s.refreshTokens[user.UserID]
	if !ok || stored != bearer {
		return fail(c, http.StatusUnauthorized, "Invalid refresh token!")
	}

	accessToken, err := s.issueToken(user, sessionID, s.config.AccessTokenTTL)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "Failed to issue tokens!")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":            "success",
		"message":           "Access token refreshed successfully!",
		"jwt_access_token":  accessToken,
		"jwt_refresh_token": stored,
		"session_id":        sessionID,
	})
}

func (s *Server) logout(c echo.Context) error {
	bearer := bearerToken(c)
	if bearer == "" {
		return fail(c, http.StatusUnauthorized, "Token is missing")
	}

	// expiry is ignored here: an expired access token must still be able
	// to terminate its session
	email, sessionID, err := s.parseToken(bearer, false)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Invalid token!")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	if user, ok := s.users[email]; ok {
		delete(s.refreshTokens, user.UserID)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":  "success",
		"message": "User logged out successfully!",
	})
}

func (s *Server) issueToken(user *userRecord, sessionID string, ttl time.Duration) (string, error) {
	now := time.Now()
	builder := jwt.NewBuilder().
		Claim("user_id", user.UserID).
		Claim("email", user.Email).
		IssuedAt(now).
		Expiration(now.Add(ttl))
	if sessionID != "" {
		builder = builder.Claim("session_id", sessionID)
	}

	token, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("building token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, s.config.SigningKey))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return string(signed), nil
}

func (s *Server) parseToken(raw string, validate bool) (email, sessionID string, err error) {
	options := []jwt.ParseOption{
		jwt.WithKey(jwa.HS256, s.config.SigningKey),
		jwt.WithValidate(validate),
	}
	token, err := jwt.ParseString(raw, options...)
	if err != nil {
		return "", "", fmt.Errorf("parsing token: %w", err)
	}

	if v, ok := token.Get("email"); ok {
		email, _ = v.(string)
	}
	if v, ok := token.Get("session_id"); ok {
		sessionID, _ = v.(string)
	}
	if email == "" {
		return "", "", fmt.Errorf("token has no email claim")
	}
	return email, sessionID, nil
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// CreateUser seeds an account directly, bypassing the signup/verification
// mail loop. Intended for tests and local fixtures.
func (s *Server) CreateUser(name, email, password string, verified bool) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := &userRecord{
		UserID:     ksuid.New().String(),
		Name:       name,
		Email:      email,
		Password:   password,
		IsVerified: verified,
	}
	s.users[email] = user
	return user.UserID
}

// MintAccountToken issues the kind of token the verification and password
// reset mails would carry. Intended for tests and local fixtures.
func (s *Server) MintAccountToken(email string) (string, error) {
	s.mu.Lock()
	user, ok := s.users[email]
	s.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("no such user: %s", email)
	}
	return s.issueToken(user, "", s.config.AccessTokenTTL)
}
