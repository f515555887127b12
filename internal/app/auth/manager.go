package auth

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

// IdentityProvider is the remote endpoint that owns the user credentials.
type IdentityProvider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*idp.LoginResult, error)
	SignOut(ctx context.Context, accessToken string) error
}

type LoginCounter interface {
	CountLogin(success bool)
}

type Authenticator struct {
	cfg *config.Config
	bus evbus.MessageBus

	provider IdentityProvider
	metrics  LoginCounter
}

func NewAuthenticator(
	cfg *config.Config,
	bus evbus.MessageBus,
	provider IdentityProvider,
	metrics LoginCounter,
) (*Authenticator, error) {
	a := &Authenticator{
		cfg: cfg,
		bus: bus,

		provider: provider,
		metrics:  metrics,
	}
	return a, nil
}

// Login exchanges the given credentials for an authenticated user session.
// Invalid credentials and provider failures are both reported as
// domain.ErrAuthentication, with the original cause preserved.
func (a Authenticator) Login(ctx context.Context, email, password string) (*domain.AuthenticatedUser, error) {
	result, err := a.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		a.metrics.CountLogin(false)
		a.bus.Publish(app.TopicAuthLoginFailed, email)
		return nil, fmt.Errorf("%w: %w", domain.ErrAuthentication, err)
	}
	if result == nil || result.User == nil {
		a.metrics.CountLogin(false)
		a.bus.Publish(app.TopicAuthLoginFailed, email)
		return nil, fmt.Errorf("%w: invalid login credentials", domain.ErrAuthentication)
	}

	user := result.User.Normalize()
	authenticated := &domain.AuthenticatedUser{
		User:        user,
		Role:        result.User.Role,
		AppMetadata: result.User.AppMetadata,
		AccessToken: domain.PrivateString(result.AccessToken),
	}

	a.metrics.CountLogin(true)
	a.bus.Publish(app.TopicAuthLogin, user.Identifier)

	slog.Info("user logged in", "user", user.Identifier, "admin", user.IsAdmin)

	return authenticated, nil
}

// Logout revokes the access token at the provider. The caller is expected to
// destroy its local session regardless of the returned error.
func (a Authenticator) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil // nothing to revoke
	}

	if err := a.provider.SignOut(ctx, accessToken); err != nil {
		return fmt.Errorf("%w: logout failed: %w", domain.ErrAuthentication, err)
	}

	a.bus.Publish(app.TopicAuthLogout, domain.GetUserInfo(ctx).Id)

	return nil
}
