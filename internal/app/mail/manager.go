package mail

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	evbus "github.com/vardius/message-bus"

	"github.com/hrms-project/hrms-portal/internal/app"
	"github.com/hrms-project/hrms-portal/internal/config"
	"github.com/hrms-project/hrms-portal/internal/domain"
)

// Manager sends notification mails for directory events.
type Manager struct {
	cfg        *config.Config
	bus        evbus.MessageBus
	tplHandler *TemplateHandler

	mailer Mailer
}

func NewMailManager(cfg *config.Config, bus evbus.MessageBus, mailer Mailer) (*Manager, error) {
	tplHandler, err := newTemplateHandler(cfg.Web.ExternalUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize template handler: %w", err)
	}

	m := &Manager{
		cfg:        cfg,
		bus:        bus,
		tplHandler: tplHandler,

		mailer: mailer,
	}

	if err := m.connectToMessageBus(); err != nil {
		return nil, fmt.Errorf("failed to setup message bus: %w", err)
	}

	return m, nil
}

func (m Manager) connectToMessageBus() error {
	if err := m.bus.Subscribe(app.TopicUserCreated, m.handleUserCreatedEvent); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", app.TopicUserCreated, err)
	}

	return nil
}

func (m Manager) handleUserCreatedEvent(user domain.User) {
	if err := m.SendWelcomeMail(context.Background(), &user); err != nil {
		slog.Error("failed to send welcome mail", "user", user.Identifier, "error", err)
	}
}

// SendWelcomeMail greets a newly created account. Sending is skipped when no
// mail server is configured or the user has no mail address.
func (m Manager) SendWelcomeMail(ctx context.Context, user *domain.User) error {
	if m.cfg.Mail.Host == "" {
		slog.Debug("skipping welcome mail, no mail server configured", "user", user.Identifier)
		return nil
	}
	if user.Email == "" {
		slog.Debug("skipping welcome mail, user has no mail address", "user", user.Identifier)
		return nil
	}

	txtMail, err := m.tplHandler.GetWelcomeMail(user)
	if err != nil {
		return fmt.Errorf("failed to render welcome mail: %w", err)
	}

	body, err := io.ReadAll(txtMail)
	if err != nil {
		return fmt.Errorf("failed to read welcome mail body: %w", err)
	}

	err = m.mailer.Send(ctx, "Welcome to the HR portal", string(body), []string{user.Email})
	if err != nil {
		return fmt.Errorf("failed to send welcome mail to %s: %w", user.Email, err)
	}

	return nil
}
