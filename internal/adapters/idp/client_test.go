package idp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrms-project/hrms-portal/internal/config"
	"github.com/hrms-project/hrms-portal/internal/domain"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(config.ProviderConfig{
		BaseUrl:        srv.URL,
		ServiceRoleKey: "service-role-key",
		Timeout:        5 * time.Second,
	})
}

func Test_Client_SignInWithPassword(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "service-role-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer service-role-key", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "one@example.com", body["email"])

		_ = json.NewEncoder(w).Encode(LoginResult{
			AccessToken: "token-123",
			User:        &RawUser{Id: "u1", Email: "one@example.com"},
		})
	})

	result, err := client.SignInWithPassword(context.Background(), "one@example.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, "token-123", result.AccessToken)
	require.NotNil(t, result.User)
	assert.Equal(t, "u1", result.User.Id)
}

func Test_Client_SignInWithPassword_BadCredentials(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error_description":"Invalid login credentials"}`))
	})

	_, err := client.SignInWithPassword(context.Background(), "one@example.com", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid login credentials")
}

func Test_Client_SignOut_UsesUserToken(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/logout", r.URL.Path)
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, client.SignOut(context.Background(), "user-token"))
}

func Test_Client_AdminListUsers_BareArray(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/admin/users", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"u1","email":"one@example.com"}]`))
	})

	users, err := client.AdminListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "u1", users[0].Id)
}

func Test_Client_AdminListUsers_Wrapped(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"users":[{"id":"u1"},{"id":"u2"}]}`))
	})

	users, err := client.AdminListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func Test_Client_SignUp_WrappedResponse(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "data")

		_, _ = w.Write([]byte(`{"user":{"id":"u9","email":"new@example.com"}}`))
	})

	user, err := client.SignUp(context.Background(), "new@example.com", "secret",
		map[string]any{"first_name": "New"})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u9", user.Id)
}

func Test_Client_SignUp_NoPrincipal(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	user, err := client.SignUp(context.Background(), "new@example.com", "secret", nil)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func Test_Client_AdminGetUser_NotFound(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"msg":"user not found"}`))
	})

	_, err := client.AdminGetUser(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func Test_Client_UpdateSelf_UsesUserToken(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "data")

		_, _ = w.Write([]byte(`{"id":"u1","email":"renamed@example.com"}`))
	})

	user, err := client.UpdateSelf(context.Background(), "user-token",
		domain.UserPatch{Email: "renamed@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "renamed@example.com", user.Email)
}

func Test_IsAlreadyRegistered(t *testing.T) {
	assert.True(t, IsAlreadyRegistered(&ApiError{Status: 422, Msg: "User already registered"}))
	assert.True(t, IsAlreadyRegistered(&ApiError{Status: 400, Msg: "A user with this email address has already been registered"}))
	assert.False(t, IsAlreadyRegistered(&ApiError{Status: 400, Msg: "something else"}))
}
