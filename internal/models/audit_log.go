package models

import "time"

// AuditLog is one row of the append-only audit trail. Metadata holds the
// event details as a JSON object.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID *uint  `gorm:"index" json:"user_id"`
	Action string `gorm:"size:50;not null;index" json:"action"`

	Entity   string `gorm:"size:50;index:idx_audit_entity" json:"entity"`
	EntityID *uint  `gorm:"index:idx_audit_entity" json:"entity_id"`
	Metadata string `gorm:"type:jsonb;default:'{}'" json:"metadata"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
