package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/require"

	"github.com/gowtham404/bookstore-auth-go/authapi"
	"github.com/gowtham404/bookstore-auth-go/session"
)

var testSigningKey = []byte("session-test-signing-key")

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()

	tok, err := jwt.NewBuilder().
		Claim("user_id", "1").
		Claim("email", "a@b.com").
		Claim("session_id", "s-1").
		Expiration(exp).
		Build()
	require.NoError(t, err)

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, testSigningKey))
	require.NoError(t, err)

	return string(signed)
}

func testUser() authapi.User {
	return authapi.User{UserID: "1", Name: "A", Email: "a@b.com", IsVerified: true}
}

func testSession(t *testing.T, exp time.Time) *session.Session {
	t.Helper()
	return &session.Session{
		User:         testUser(),
		AccessToken:  signedToken(t, exp),
		RefreshToken: "r1",
	}
}

// fakeGateway is a scriptable Gateway for manager tests.
type fakeGateway struct {
	loginResult *authapi.LoginResult
	loginErr    error

	renewal     *authapi.TokenRenewal
	renewErr    error
	beforeRenew func() // runs before the renewal result is returned

	logoutErr    error
	logoutTokens []string
}

func (g *fakeGateway) Login(ctx context.Context, email, password string) (*authapi.LoginResult, error) {
	if g.loginErr != nil {
		return nil, g.loginErr
	}
	return g.loginResult, nil
}

func (g *fakeGateway) RenewAccessToken(ctx context.Context, refreshToken string) (*authapi.TokenRenewal, error) {
	if g.beforeRenew != nil {
		g.beforeRenew()
	}
	if g.renewErr != nil {
		return nil, g.renewErr
	}
	return g.renewal, nil
}

func (g *fakeGateway) Logout(ctx context.Context, accessToken string) (*authapi.Ack, error) {
	g.logoutTokens = append(g.logoutTokens, accessToken)
	if g.logoutErr != nil {
		return nil, g.logoutErr
	}
	return &authapi.Ack{Status: "success", Message: "User logged out successfully!"}, nil
}
