package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-pkgz/routegroup"

	"github.com/hrms-project/hrms-portal/internal/app/api/core/request"
	"github.com/hrms-project/hrms-portal/internal/app/api/core/respond"
	"github.com/hrms-project/hrms-portal/internal/app/api/v0/model"
	"github.com/hrms-project/hrms-portal/internal/domain"
)

const userPageSize = 10

type UserService interface {
	// GetAllUsers returns the full user directory.
	GetAllUsers(ctx context.Context) ([]domain.User, error)
	// GetUser returns a single user record.
	GetUser(ctx context.Context, id domain.UserIdentifier) (*domain.User, error)
	// CreateUser registers a new user at the identity provider.
	CreateUser(ctx context.Context, draft domain.UserDraft) (*domain.User, error)
	// UpdateUser updates a user record at the identity provider.
	UpdateUser(ctx context.Context, id domain.UserIdentifier, patch domain.UserPatch) (*domain.User, error)
	// DeleteUser removes a user record from the identity provider.
	DeleteUser(ctx context.Context, id domain.UserIdentifier) error
	// UpdateProfile updates the record of the calling user.
	UpdateProfile(
		ctx context.Context,
		id domain.UserIdentifier,
		accessToken string,
		patch domain.UserPatch,
	) (*domain.User, error)
}

type UserEndpoint struct {
	userService   UserService
	authenticator Authenticator
	session       Session
	validate      Validator
}

func NewUserEndpoint(
	authenticator Authenticator,
	session Session,
	validator Validator,
	userService UserService,
) UserEndpoint {
	return UserEndpoint{
		userService:   userService,
		authenticator: authenticator,
		session:       session,
		validate:      validator,
	}
}

func (e UserEndpoint) GetName() string {
	return "UserEndpoint"
}

func (e UserEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	apiGroup := g.Mount("/users")
	apiGroup.Use(e.authenticator.LoggedIn())
	apiGroup.Use(e.authenticator.AdminGate())

	apiGroup.HandleFunc("GET /all", e.handleAllGet())
	apiGroup.HandleFunc("POST /new", e.handleCreatePost())
	apiGroup.HandleFunc("GET /{id}", e.handleSingleGet())
	apiGroup.HandleFunc("PUT /{id}", e.handleUpdatePut())
	apiGroup.HandleFunc("DELETE /{id}", e.handleDelete())

	g.With(e.authenticator.LoggedIn()).HandleFunc("PUT /profile", e.handleProfilePut())
}

func (e UserEndpoint) handleAllGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := e.userService.GetAllUsers(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}

		filter := request.Query(r, "q")
		filtered := make([]domain.User, 0, len(users))
		for i := range users {
			if users[i].MatchesEmailFilter(filter) {
				filtered = append(filtered, users[i])
			}
		}

		page := request.QueryInt(r, "page", 1)
		respond.JSON(w, http.StatusOK, paginateUsers(filtered, page))
	}
}

// paginateUsers slices the filtered directory into a single page. Invalid page
// numbers fall back to the first page, numbers past the end to the last page.
func paginateUsers(users []domain.User, page int) model.UserPage {
	totalPages := (len(users) + userPageSize - 1) / userPageSize
	if totalPages == 0 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * userPageSize
	end := min(start+userPageSize, len(users))
	if start > len(users) {
		start = len(users)
	}

	return model.UserPage{
		Users:      model.NewUsers(users[start:end]),
		Page:       page,
		PageSize:   userPageSize,
		TotalPages: totalPages,
		TotalUsers: len(users),
	}
}

func (e UserEndpoint) handleSingleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := request.Path(r, "id")
		if id == "" {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: "missing user id"})
			return
		}

		user, err := e.userService.GetUser(r.Context(), domain.UserIdentifier(id))
		if err != nil {
			respondError(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewUser(user))
	}
}

func (e UserEndpoint) handleCreatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var createData model.UserCreateRequest

		if err := request.BodyJson(r, &createData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}
		if err := e.validate.Struct(createData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		user, err := e.userService.CreateUser(r.Context(), model.NewDomainUserDraft(&createData))
		if err != nil {
			respondError(w, err)
			return
		}

		respond.JSON(w, http.StatusCreated, model.NewUser(user))
	}
}

func (e UserEndpoint) handleUpdatePut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := request.Path(r, "id")
		if id == "" {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: "missing user id"})
			return
		}

		var updateData model.UserUpdateRequest

		if err := request.BodyJson(r, &updateData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}
		if err := e.validate.Struct(updateData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		user, err := e.userService.UpdateUser(r.Context(), domain.UserIdentifier(id),
			model.NewDomainUserPatch(&updateData))
		if err != nil {
			respondError(w, err)
			return
		}

		respond.JSON(w, http.StatusOK, model.NewUser(user))
	}
}

func (e UserEndpoint) handleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := request.Path(r, "id")
		if id == "" {
			respond.JSON(w, http.StatusBadRequest,
				model.Error{Code: http.StatusBadRequest, Message: "missing user id"})
			return
		}

		if err := e.userService.DeleteUser(r.Context(), domain.UserIdentifier(id)); err != nil {
			respondError(w, err)
			return
		}

		respond.Status(w, http.StatusNoContent)
	}
}

func (e UserEndpoint) handleProfilePut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		currentSession := e.session.GetData(r.Context())

		var updateData model.UserUpdateRequest

		if err := request.BodyJson(r, &updateData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}
		if err := e.validate.Struct(updateData); err != nil {
			respond.JSON(w, http.StatusBadRequest, model.Error{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}

		// Profile updates never change the admin capability.
		patch := model.NewDomainUserPatch(&updateData)
		patch.IsAdmin = currentSession.IsAdmin

		user, err := e.userService.UpdateProfile(r.Context(),
			domain.UserIdentifier(currentSession.UserIdentifier), currentSession.AccessToken, patch)
		if err != nil {
			respondError(w, err)
			return
		}

		// keep the session in sync with the updated record
		currentSession.Firstname = user.Firstname
		currentSession.Lastname = user.Lastname
		currentSession.Email = user.Email
		e.session.SetData(r.Context(), currentSession)

		respond.JSON(w, http.StatusOK, model.NewUser(user))
	}
}

// respondError maps domain errors to http status codes.
func respondError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNoPermission):
		code = http.StatusForbidden
	case errors.Is(err, domain.ErrDuplicateEmail):
		code = http.StatusConflict
	case errors.Is(err, domain.ErrUserNotFound):
		code = http.StatusNotFound
	}

	respond.JSON(w, code, model.Error{Code: code, Message: err.Error()})
}
