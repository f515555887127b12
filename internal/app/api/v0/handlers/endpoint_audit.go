package handlers

import (
	"context"
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/hrms-project/hrms-portal/internal/app/api/core/respond"
	"github.com/hrms-project/hrms-portal/internal/app/api/v0/model"
	"github.com/hrms-project/hrms-portal/internal/config"
	"github.com/hrms-project/hrms-portal/internal/domain"
)

type AuditService interface {
	// GetAll returns all audit entries ordered by timestamp. Newest first.
	GetAll(ctx context.Context) ([]domain.AuditEntry, error)
}

type AuditEndpoint struct {
	cfg           *config.Config
	authenticator Authenticator
	auditService  AuditService
}

func NewAuditEndpoint(
	cfg *config.Config,
	authenticator Authenticator,
	auditService AuditService,
) AuditEndpoint {
	return AuditEndpoint{
		cfg:           cfg,
		authenticator: authenticator,
		auditService:  auditService,
	}
}

func (e AuditEndpoint) GetName() string {
	return "AuditEndpoint"
}

func (e AuditEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	apiGroup := g.Mount("/audit")
	apiGroup.Use(e.authenticator.LoggedIn(ScopeAdmin))

	apiGroup.HandleFunc("GET /entries", e.handleEntriesGet())
}

func (e AuditEndpoint) handleEntriesGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := e.auditService.GetAll(r.Context())
		if err != nil {
			respond.JSON(w, http.StatusInternalServerError, model.Error{
				Code: http.StatusInternalServerError, Message: err.Error(),
			})
			return
		}

		respond.JSON(w, http.StatusOK, model.NewAuditEntries(entries))
	}
}
