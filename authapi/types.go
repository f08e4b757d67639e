package authapi

// User is the identity record returned by the server. The client treats it
// as opaque beyond existence; the fields mirror the server's serializer.
type User struct {
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	IsVerified bool   `json:"is_verified"`
}

// Ack is the generic success envelope of the user API.
type Ack struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// LoginResult is the interpreted outcome of a login exchange. The server
// answers an unverified account with HTTP 200, status "failed" and no
// tokens; Verified distinguishes that envelope from a real login.
type LoginResult struct {
	User         User
	AccessToken  string
	RefreshToken string
	Verified     bool
	Message      string
}

// TokenRenewal is the outcome of a renew-access-token exchange. The server
// echoes the refresh token it already holds for the session.
type TokenRenewal struct {
	AccessToken  string
	RefreshToken string
	SessionID    string
	Message      string
}

// Wire-level bodies. The server names its token fields jwt_access_token and
// jwt_refresh_token; those names stay at this boundary only.
type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resetLinkRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	User         User   `json:"user"`
	AccessToken  string `json:"jwt_access_token"`
	RefreshToken string `json:"jwt_refresh_token"`
}

type renewResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	AccessToken  string `json:"jwt_access_token"`
	RefreshToken string `json:"jwt_refresh_token"`
	SessionID    string `json:"session_id"`
}
