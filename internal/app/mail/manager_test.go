package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	evbus "github.com/vardius/message-bus"

	"github.com/hrms-project/hrms-portal/internal/config"
	"github.com/hrms-project/hrms-portal/internal/domain"
)

type fakeMailer struct {
	sent     int
	lastBody string
	lastTo   []string
}

func (m *fakeMailer) Send(_ context.Context, _, body string, to []string) error {
	m.sent++
	m.lastBody = body
	m.lastTo = to
	return nil
}

func testMailManager(t *testing.T, host string) (*Manager, *fakeMailer) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Mail.Host = host
	cfg.Web.ExternalUrl = "https://hrms.example.com"

	mailer := &fakeMailer{}
	mgr, err := NewMailManager(cfg, evbus.New(10), mailer)
	require.NoError(t, err)

	return mgr, mailer
}

func Test_Manager_SendWelcomeMail(t *testing.T) {
	mgr, mailer := testMailManager(t, "smtp.example.com")

	user := &domain.User{
		Identifier: "u1",
		Email:      "new@example.com",
		Firstname:  "First",
		Lastname:   "Last",
	}

	err := mgr.SendWelcomeMail(context.Background(), user)
	require.NoError(t, err)

	assert.Equal(t, 1, mailer.sent)
	assert.Equal(t, []string{"new@example.com"}, mailer.lastTo)
	assert.Contains(t, mailer.lastBody, "First Last")
	assert.Contains(t, mailer.lastBody, "https://hrms.example.com")
}

func Test_Manager_SendWelcomeMail_NoServer(t *testing.T) {
	mgr, mailer := testMailManager(t, "")

	err := mgr.SendWelcomeMail(context.Background(), &domain.User{Identifier: "u1", Email: "a@b.c"})
	require.NoError(t, err)
	assert.Zero(t, mailer.sent)
}

func Test_Manager_SendWelcomeMail_NoAddress(t *testing.T) {
	mgr, mailer := testMailManager(t, "smtp.example.com")

	err := mgr.SendWelcomeMail(context.Background(), &domain.User{Identifier: "u1"})
	require.NoError(t, err)
	assert.Zero(t, mailer.sent)
}
