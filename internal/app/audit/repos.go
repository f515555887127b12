package audit

import (
	"context"

	"github.com/hrms-project/hrms-portal/internal/domain"
)

type DatabaseRepo interface {
	SaveAuditEntry(ctx context.Context, entry *domain.AuditEntry) error
}
