package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hrms-project/hrms-portal/internal/domain"
)

// memSession is a Session implementation backed by a plain struct, good
// enough for handler tests that do not need cookie handling.
type memSession struct {
	data SessionData
}

func (s *memSession) SetData(_ context.Context, val SessionData) { s.data = val }
func (s *memSession) GetData(_ context.Context) SessionData      { return s.data }
func (s *memSession) DestroyData(_ context.Context)              { s.data = SessionData{} }

func loggedInSession(isAdmin bool) *memSession {
	return &memSession{data: SessionData{
		LoggedIn:       true,
		IsAdmin:        isAdmin,
		UserIdentifier: "u1",
		Email:          "one@example.com",
	}}
}

func Test_LoggedIn_NotLoggedIn(t *testing.T) {
	h := NewAuthenticationHandler(&memSession{})

	nextCalled := false
	handler := h.LoggedIn()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/all", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, nextCalled)
}

func Test_LoggedIn_AdminScope(t *testing.T) {
	h := NewAuthenticationHandler(loggedInSession(false))

	handler := h.LoggedIn(ScopeAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/audit/entries", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func Test_LoggedIn_SetsUserInfo(t *testing.T) {
	h := NewAuthenticationHandler(loggedInSession(true))

	var info *domain.ContextUserInfo
	handler := h.LoggedIn()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info = domain.GetUserInfo(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/all", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.UserIdentifier("u1"), info.Id)
	assert.True(t, info.IsAdmin)
}

func Test_AdminGate_RedirectsNonAdmins(t *testing.T) {
	session := loggedInSession(false)
	h := NewAuthenticationHandler(session)

	nextCalled := false
	handler := h.AdminGate()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/all", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, userDashboardPath, w.Header().Get("Location"))
	assert.Equal(t, flashNoPermission, session.data.Flash)
	assert.False(t, nextCalled, "gated handler must not run for non-admins")
}

func Test_AdminGate_PassesAdmins(t *testing.T) {
	h := NewAuthenticationHandler(loggedInSession(true))

	nextCalled := false
	handler := h.AdminGate()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/all", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, nextCalled)
}

func Test_UserHasScopes(t *testing.T) {
	tests := []struct {
		name    string
		session SessionData
		scopes  []Scope
		want    bool
	}{
		{"no scopes", SessionData{LoggedIn: true}, nil, true},
		{"admin has all scopes", SessionData{LoggedIn: true, IsAdmin: true}, []Scope{ScopeAdmin}, true},
		{"non-admin lacks admin scope", SessionData{LoggedIn: true}, []Scope{ScopeAdmin}, false},
		{"not logged in", SessionData{}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserHasScopes(tt.session, tt.scopes...))
		})
	}
}
