package mail

import (
	"context"
)

type Mailer interface {
	Send(ctx context.Context, subject, body string, to []string) error
}
