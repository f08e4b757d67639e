package authapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gowtham404/bookstore-auth-go/authapi"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*authapi.Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := authapi.NewClient(authapi.Config{BaseURL: server.URL})
	require.NoError(t, err)
	return client, server
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := authapi.NewClient(authapi.Config{})
	require.Error(t, err)
}

func TestLoginSuccess(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/user/login", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("X-Request-Id"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "a@b.com", body["email"])
		require.Equal(t, "Abc@1234", body["password"])

		json.NewEncoder(w).Encode(map[string]any{
			"status":            "success",
			"message":           "User logged in successfully!",
			"user":              map[string]any{"user_id": "1", "name": "A", "email": "a@b.com", "is_verified": true},
			"jwt_access_token":  "h.p.s",
			"jwt_refresh_token": "r1",
		})
	})

	result, err := client.Login(context.Background(), "a@b.com", "Abc@1234")
	require.NoError(t, err)
	require.True(t, result.Verified)
	require.Equal(t, "h.p.s", result.AccessToken)
	require.Equal(t, "r1", result.RefreshToken)
	require.Equal(t, "a@b.com", result.User.Email)
}

func TestLoginUnverifiedEnvelope(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// the server answers an unverified account with 200 and no tokens
		json.NewEncoder(w).Encode(map[string]any{
			"status":  "failed",
			"message": "User is not verified! Please check your email and verify your account.",
			"user":    map[string]any{"user_id": "1", "name": "A", "email": "a@b.com", "is_verified": false},
		})
	})

	result, err := client.Login(context.Background(), "a@b.com", "Abc@1234")
	require.NoError(t, err)
	require.False(t, result.Verified)
	require.Empty(t, result.AccessToken)
	require.Contains(t, result.Message, "not verified")
}

func TestErrorDetailPropagation(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Password is incorrect!"})
	})

	_, err := client.Login(context.Background(), "a@b.com", "wrong")

	apiErr := new(authapi.Error)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, "Password is incorrect!", apiErr.Detail)
}

func TestErrorWithoutDetailBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Login(context.Background(), "a@b.com", "pw")

	apiErr := new(authapi.Error)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, "Bad Gateway", apiErr.Detail)
}

func TestRegister(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/user/signup", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "success",
			"message": "User created successfully. Please check your email box and verify your account.",
		})
	})

	ack, err := client.Register(context.Background(), "A", "a@b.com", "Abc@1234")
	require.NoError(t, err)
	require.Equal(t, "success", ack.Status)
}

func TestVerifyAccountPath(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/user/user-account-verification/tok-1/a@b.com", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"status": "success", "message": "User account verified successfully. Login to continue."})
	})

	_, err := client.VerifyAccount(context.Background(), "tok-1", "a@b.com")
	require.NoError(t, err)
}

func TestRenewAccessTokenCarriesBearer(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/user/renew-access-token", r.URL.Path)
		require.Equal(t, "Bearer r1", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]string{
			"status":            "success",
			"message":           "Access token refreshed successfully!",
			"jwt_access_token":  "new.access.token",
			"jwt_refresh_token": "r1",
			"session_id":        "s-1",
		})
	})

	renewal, err := client.RenewAccessToken(context.Background(), "r1")
	require.NoError(t, err)
	require.Equal(t, "new.access.token", renewal.AccessToken)
	require.Equal(t, "r1", renewal.RefreshToken)
	require.Equal(t, "s-1", renewal.SessionID)
}

func TestResetFlows(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/user/send-password-reset-link":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, "a@b.com", body["email"])
			json.NewEncoder(w).Encode(map[string]string{"status": "success", "message": "Reset password link sent successfully. Please check your email."})
		case "/api/v1/user/reset-password/tok-2":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, "New@1234", body["password"])
			json.NewEncoder(w).Encode(map[string]string{"status": "success", "message": "Password reset successfully. Login to continue."})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	_, err := client.SendPasswordResetLink(context.Background(), "a@b.com")
	require.NoError(t, err)

	_, err = client.ResetPassword(context.Background(), "tok-2", "New@1234")
	require.NoError(t, err)
}

func TestLogout(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/user/logout", r.URL.Path)
		require.Equal(t, "Bearer a.b.c", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]string{"status": "success", "message": "User logged out successfully!"})
	})

	ack, err := client.Logout(context.Background(), "a.b.c")
	require.NoError(t, err)
	require.Equal(t, "success", ack.Status)
}
