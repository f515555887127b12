package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	evbus "github.com/vardius/message-bus"

	"github.com/hrms-project/hrms-portal/internal"
	"github.com/hrms-project/hrms-portal/internal/app"
	"github.com/hrms-project/hrms-portal/internal/config"
	"github.com/hrms-project/hrms-portal/internal/domain"
)

// Recorder subscribes to the message bus and persists a journal entry for
// every authentication and directory mutation event.
type Recorder struct {
	cfg *config.Config
	bus evbus.MessageBus

	db DatabaseRepo
}

func NewAuditRecorder(cfg *config.Config, bus evbus.MessageBus, db DatabaseRepo) (*Recorder, error) {
	r := &Recorder{
		cfg: cfg,
		bus: bus,

		db: db,
	}

	err := r.connectToMessageBus()
	if err != nil {
		return nil, fmt.Errorf("failed to setup message bus: %w", err)
	}

	return r, nil
}

func (r *Recorder) connectToMessageBus() error {
	if !r.cfg.Statistics.CollectAuditData {
		return nil // nothing to do
	}

	if err := r.bus.Subscribe(app.TopicAuthLogin, r.authLoginEvent); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", app.TopicAuthLogin, err)
	}
	if err := r.bus.Subscribe(app.TopicAuthLoginFailed, r.authLoginFailedEvent); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", app.TopicAuthLoginFailed, err)
	}
	if err := r.bus.Subscribe(app.TopicAuthLogout, r.authLogoutEvent); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", app.TopicAuthLogout, err)
	}
	if err := r.bus.Subscribe(app.TopicUserCreated, r.userCreatedEvent); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", app.TopicUserCreated, err)
	}
	if err := r.bus.Subscribe(app.TopicUserUpdated, r.userUpdatedEvent); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", app.TopicUserUpdated, err)
	}
	if err := r.bus.Subscribe(app.TopicUserDeleted, r.userDeletedEvent); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", app.TopicUserDeleted, err)
	}

	return nil
}

func (r *Recorder) authLoginEvent(userIdentifier domain.UserIdentifier) {
	r.record("authLoginEvent", domain.AuditSeverityLevelLow,
		fmt.Sprintf("user %s logged in", userIdentifier))
}

func (r *Recorder) authLoginFailedEvent(email string) {
	r.record("authLoginFailedEvent", domain.AuditSeverityLevelMedium,
		fmt.Sprintf("failed login attempt for %s", email))
}

func (r *Recorder) authLogoutEvent(userIdentifier domain.UserIdentifier) {
	r.record("authLogoutEvent", domain.AuditSeverityLevelLow,
		fmt.Sprintf("user %s logged out", userIdentifier))
}

func (r *Recorder) userCreatedEvent(user domain.User) {
	r.record("userCreatedEvent", domain.AuditSeverityLevelMedium,
		fmt.Sprintf("user %s (%s) created", user.Identifier, user.Email))
}

func (r *Recorder) userUpdatedEvent(user domain.User) {
	r.record("userUpdatedEvent", domain.AuditSeverityLevelMedium,
		fmt.Sprintf("user %s updated", user.Identifier))
}

func (r *Recorder) userDeletedEvent(userIdentifier domain.UserIdentifier) {
	r.record("userDeletedEvent", domain.AuditSeverityLevelHigh,
		fmt.Sprintf("user %s deleted", userIdentifier))
}

func (r *Recorder) record(origin string, severity domain.AuditSeverityLevel, message string) {
	err := r.db.SaveAuditEntry(context.Background(), &domain.AuditEntry{
		CorrelationId: uuid.NewString(),
		Severity:      severity,
		Origin:        origin,
		Message:       internal.TruncateString(message, 255),
	})
	if err != nil {
		slog.Error("failed to create audit entry", "origin", origin, "error", err)
	}
}
