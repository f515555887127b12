package handlers

import (
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/hrms-project/hrms-portal/internal/app/api/core/respond"
	"github.com/hrms-project/hrms-portal/internal/app/api/v0/model"
)

// HrEndpoint serves the employee, leave and KYC areas. The backing services
// are not implemented yet, the endpoints return empty collections so that the
// frontend pages can already be built against them.
type HrEndpoint struct {
	authenticator Authenticator
}

func NewHrEndpoint(authenticator Authenticator) HrEndpoint {
	return HrEndpoint{
		authenticator: authenticator,
	}
}

func (e HrEndpoint) GetName() string {
	return "HrEndpoint"
}

func (e HrEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	apiGroup := g.Mount("/hr")
	apiGroup.Use(e.authenticator.LoggedIn())

	apiGroup.HandleFunc("GET /employees", e.handleEmployeesGet())
	apiGroup.HandleFunc("GET /leave-requests", e.handleLeaveRequestsGet())
	apiGroup.HandleFunc("GET /kyc-records", e.handleKycRecordsGet())
}

func (e HrEndpoint) handleEmployeesGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, []model.Employee{})
	}
}

func (e HrEndpoint) handleLeaveRequestsGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, []model.LeaveRequest{})
	}
}

func (e HrEndpoint) handleKycRecordsGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, []model.KycRecord{})
	}
}
