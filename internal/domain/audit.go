package domain

import "time"

type AuditSeverityLevel string

const AuditSeverityLevelLow AuditSeverityLevel = "low"
const AuditSeverityLevelMedium AuditSeverityLevel = "medium"
const AuditSeverityLevelHigh AuditSeverityLevel = "high"

// AuditEntry is a single record of the local audit journal. Auth and user
// management events are recorded here; the journal is the only data the
// portal keeps in its own database.
type AuditEntry struct {
	UniqueId  uint64    `gorm:"primaryKey;autoIncrement:true;column:id"`
	CreatedAt time.Time `gorm:"column:created_at;index:idx_au_created"`

	// CorrelationId groups entries that belong to the same request or action.
	CorrelationId string `gorm:"column:correlation_id;index:idx_au_correlation"`

	Severity AuditSeverityLevel `gorm:"column:severity;index:idx_au_severity"`

	Origin string `gorm:"column:origin"` // origin: for example user auth, directory, ...

	Message string `gorm:"column:message"`
}
