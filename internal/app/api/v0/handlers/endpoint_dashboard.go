package handlers

import (
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/hrms-project/hrms-portal/internal/app/api/core/respond"
	"github.com/hrms-project/hrms-portal/internal/app/api/v0/model"
)

type DashboardEndpoint struct {
	userService   UserService
	authenticator Authenticator
	session       Session
}

func NewDashboardEndpoint(
	authenticator Authenticator,
	session Session,
	userService UserService,
) DashboardEndpoint {
	return DashboardEndpoint{
		userService:   userService,
		authenticator: authenticator,
		session:       session,
	}
}

func (e DashboardEndpoint) GetName() string {
	return "DashboardEndpoint"
}

func (e DashboardEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	g.With(e.authenticator.LoggedIn()).HandleFunc("GET /home", e.handleHomeGet())
	g.With(e.authenticator.LoggedIn()).HandleFunc("GET /dashboard", e.handleDashboardGet())
	g.With(e.authenticator.LoggedIn(), e.authenticator.AdminGate()).
		HandleFunc("GET /dashboard/admin", e.handleAdminDashboardGet())
}

// handleHomeGet routes a logged-in user to the dashboard matching their role.
func (e DashboardEndpoint) handleHomeGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		currentSession := e.session.GetData(r.Context())

		if currentSession.IsAdmin {
			respond.Redirect(w, r, http.StatusFound, userDashboardPath+"/admin")
			return
		}

		respond.Redirect(w, r, http.StatusFound, userDashboardPath)
	}
}

func (e DashboardEndpoint) handleDashboardGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		currentSession := e.session.GetData(r.Context())

		// the flash notice is shown once
		flash := currentSession.Flash
		if flash != "" {
			currentSession.Flash = ""
			e.session.SetData(r.Context(), currentSession)
		}

		respond.JSON(w, http.StatusOK, map[string]any{
			"User": model.SessionInfo{
				LoggedIn:       currentSession.LoggedIn,
				IsAdmin:        currentSession.IsAdmin,
				UserIdentifier: &currentSession.UserIdentifier,
				UserFirstname:  &currentSession.Firstname,
				UserLastname:   &currentSession.Lastname,
				UserEmail:      &currentSession.Email,
			},
			"Flash": flash,
		})
	}
}

func (e DashboardEndpoint) handleAdminDashboardGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := e.userService.GetAllUsers(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}

		adminCount := 0
		for i := range users {
			if users[i].IsAdmin {
				adminCount++
			}
		}

		respond.JSON(w, http.StatusOK, map[string]any{
			"TotalUsers": len(users),
			"AdminUsers": adminCount,
		})
	}
}
