package directory

import (
	"context"
	"fmt"
	"log/slog"

	evbus "github.com/vardius/message-bus"

	"github.com/hrms-project/hrms-portal/internal/adapters/idp"
	"github.com/hrms-project/hrms-portal/internal/app"
	"github.com/hrms-project/hrms-portal/internal/config"
	"github.com/hrms-project/hrms-portal/internal/domain"
)

// DirectoryProvider is the admin facing part of the remote identity provider.
type DirectoryProvider interface {
	AdminListUsers(ctx context.Context) ([]idp.RawUser, error)
	AdminGetUser(ctx context.Context, id domain.UserIdentifier) (*idp.RawUser, error)
	AdminUpdateUser(ctx context.Context, id domain.UserIdentifier, patch domain.UserPatch) (*idp.RawUser, error)
	AdminDeleteUser(ctx context.Context, id domain.UserIdentifier) error
	SignUp(ctx context.Context, email, password string, metadata map[string]any) (*idp.RawUser, error)
	UpdateSelf(ctx context.Context, accessToken string, patch domain.UserPatch) (*idp.RawUser, error)
}

type CacheCounter interface {
	CountCacheEvent(event string)
}

type Manager struct {
	cfg *config.Config
	bus evbus.MessageBus

	provider DirectoryProvider
	cache    UserCache
	metrics  CacheCounter
}

func NewDirectoryManager(
	cfg *config.Config,
	bus evbus.MessageBus,
	provider DirectoryProvider,
	cache UserCache,
	metrics CacheCounter,
) (*Manager, error) {
	m := &Manager{
		cfg: cfg,
		bus: bus,

		provider: provider,
		cache:    cache,
		metrics:  metrics,
	}
	return m, nil
}

// GetAllUsers returns the full user directory. Results are cached, a cache
// miss fetches a fresh snapshot from the provider.
func (m Manager) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	if err := domain.ValidateAdminAccessRights(ctx); err != nil {
		return nil, err
	}

	if users, ok := m.cache.Get(cacheKeyAllUsers); ok {
		m.metrics.CountCacheEvent("hit")
		return users, nil
	}
	m.metrics.CountCacheEvent("miss")

	rawUsers, err := m.provider.AdminListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load users: %w", err)
	}

	users := idp.NormalizeAll(rawUsers)
	m.cache.Set(cacheKeyAllUsers, users, m.cfg.Directory.CacheTTL)

	return users, nil
}

func (m Manager) GetUser(ctx context.Context, id domain.UserIdentifier) (*domain.User, error) {
	if err := domain.ValidateAdminAccessRights(ctx); err != nil {
		return nil, err
	}

	rawUser, err := m.provider.AdminGetUser(ctx, id)
	if err != nil {
		if idp.IsNotFound(err) {
			return nil, fmt.Errorf("%w: user with id %s not found", domain.ErrUserNotFound, id)
		}
		return nil, fmt.Errorf("unable to load user %s: %w", id, err)
	}

	user := rawUser.Normalize()
	return &user, nil
}

// CreateUser registers a new account at the provider. The directory cache is
// invalidated only after the provider confirmed the creation.
func (m Manager) CreateUser(ctx context.Context, draft domain.UserDraft) (*domain.User, error) {
	if err := domain.ValidateAdminAccessRights(ctx); err != nil {
		return nil, err
	}

	metadata := map[string]any{
		"first_name": draft.Firstname,
		"last_name":  draft.Lastname,
		"is_admin":   draft.IsAdmin,
	}

	rawUser, err := m.provider.SignUp(ctx, draft.Email, string(draft.Password), metadata)
	if err != nil {
		if idp.IsAlreadyRegistered(err) {
			return nil, fmt.Errorf("%w: %w: user with email %s already registered",
				domain.ErrUserCreation, domain.ErrDuplicateEmail, draft.Email)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrUserCreation, err)
	}
	if rawUser == nil {
		return nil, fmt.Errorf("%w: provider returned no user record", domain.ErrUserCreation)
	}

	m.invalidate()

	user := rawUser.Normalize()
	m.bus.Publish(app.TopicUserCreated, user)

	slog.Info("user created", "user", user.Identifier, "email", user.Email)

	return &user, nil
}

func (m Manager) UpdateUser(
	ctx context.Context,
	id domain.UserIdentifier,
	patch domain.UserPatch,
) (*domain.User, error) {
	if err := domain.ValidateAdminAccessRights(ctx); err != nil {
		return nil, err
	}

	rawUser, err := m.provider.AdminUpdateUser(ctx, id, patch)
	if err != nil {
		if idp.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %w: user with id %s not found",
				domain.ErrUserUpdate, domain.ErrUserNotFound, id)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrUserUpdate, err)
	}

	m.invalidate()

	user := rawUser.Normalize()
	m.bus.Publish(app.TopicUserUpdated, user)

	return &user, nil
}

func (m Manager) DeleteUser(ctx context.Context, id domain.UserIdentifier) error {
	if err := domain.ValidateAdminAccessRights(ctx); err != nil {
		return err
	}

	if err := m.provider.AdminDeleteUser(ctx, id); err != nil {
		if idp.IsNotFound(err) {
			return fmt.Errorf("%w: %w: user with id %s not found",
				domain.ErrUserDeletion, domain.ErrUserNotFound, id)
		}
		return fmt.Errorf("%w: %w", domain.ErrUserDeletion, err)
	}

	m.invalidate()

	m.bus.Publish(app.TopicUserDeleted, id)

	slog.Info("user deleted", "user", id)

	return nil
}

// UpdateProfile lets a logged-in user change their own record, authorized by
// their personal access token instead of the service role key.
func (m Manager) UpdateProfile(
	ctx context.Context,
	id domain.UserIdentifier,
	accessToken string,
	patch domain.UserPatch,
) (*domain.User, error) {
	if err := domain.ValidateUserAccessRights(ctx, id); err != nil {
		return nil, err
	}

	rawUser, err := m.provider.UpdateSelf(ctx, accessToken, patch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUserUpdate, err)
	}

	m.invalidate()

	user := rawUser.Normalize()
	m.bus.Publish(app.TopicUserUpdated, user)

	return &user, nil
}

func (m Manager) invalidate() {
	m.cache.Delete(cacheKeyAllUsers)
	m.metrics.CountCacheEvent("invalidate")
}
