package handlers

import (
	"context"
	"net/http"

	"github.com/hrms-project/hrms-portal/internal/app/api/core/respond"
	"github.com/hrms-project/hrms-portal/internal/app/api/v0/model"
	"github.com/hrms-project/hrms-portal/internal/domain"
)

type Scope string

const (
	ScopeAdmin Scope = "ADMIN" // Admin scope contains all other scopes
)

const userDashboardPath = "/api/v0/dashboard"

// flashNoPermission is shown on the dashboard after a non-admin user tried to
// open an admin page.
const flashNoPermission = "You do not have permission to access this page"

type AuthenticationHandler struct {
	session Session
}

func NewAuthenticationHandler(session Session) AuthenticationHandler {
	return AuthenticationHandler{
		session: session,
	}
}

// LoggedIn checks if a user is logged in. If scopes are given, they are validated as well.
func (h AuthenticationHandler) LoggedIn(scopes ...Scope) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := h.session.GetData(r.Context())

			if !session.LoggedIn {
				// Abort the request with the appropriate error code
				respond.JSON(w, http.StatusUnauthorized,
					model.Error{Code: http.StatusUnauthorized, Message: "not logged in"})
				return
			}

			if !UserHasScopes(session, scopes...) {
				// Abort the request with the appropriate error code
				respond.JSON(w, http.StatusForbidden,
					model.Error{Code: http.StatusForbidden, Message: "not enough permissions"})
				return
			}

			ctx := context.WithValue(r.Context(), domain.CtxUserInfo, &domain.ContextUserInfo{
				Id:      domain.UserIdentifier(session.UserIdentifier),
				IsAdmin: session.IsAdmin,
			})
			r = r.WithContext(ctx)

			// Continue down the chain to Handler etc
			next.ServeHTTP(w, r)
		})
	}
}

// AdminGate guards admin-only pages. Unlike LoggedIn(ScopeAdmin) it does not
// reject the request: a logged-in non-admin user is sent back to their
// dashboard with a flash notice. The gated handler is never reached, so no
// provider call is made for denied requests.
func (h AuthenticationHandler) AdminGate() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := h.session.GetData(r.Context())

			if !session.IsAdmin {
				session.Flash = flashNoPermission
				h.session.SetData(r.Context(), session)

				respond.Redirect(w, r, http.StatusSeeOther, userDashboardPath)
				return
			}

			// Continue down the chain to Handler etc
			next.ServeHTTP(w, r)
		})
	}
}

// InfoOnly only checks if the user is logged in and adds the user id to the context.
// If the user is not logged in, the context user id is set to domain.CtxUnknownUserId.
func (h AuthenticationHandler) InfoOnly() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := h.session.GetData(r.Context())

			var newContext context.Context

			if !session.LoggedIn {
				newContext = domain.SetUserInfo(r.Context(), domain.DefaultContextUserInfo())
			} else {
				newContext = domain.SetUserInfo(r.Context(), &domain.ContextUserInfo{
					Id:      domain.UserIdentifier(session.UserIdentifier),
					IsAdmin: session.IsAdmin,
				})
			}

			r = r.WithContext(newContext)

			// Continue down the chain to Handler etc
			next.ServeHTTP(w, r)
		})
	}
}

func UserHasScopes(session SessionData, scopes ...Scope) bool {
	// No scopes given, so the check should succeed
	if len(scopes) == 0 {
		return true
	}

	// check if user has admin scope
	if session.IsAdmin {
		return true
	}

	// Check if admin scope is required
	for _, scope := range scopes {
		if scope == ScopeAdmin {
			return false
		}
	}

	// For all other scopes, a logged-in user is sufficient (for now)
	if session.LoggedIn {
		return true
	}

	return false
}
