package model

import "time"

// ErrorLog is the persisted server-side record of a mapped error. It
// carries the full diagnostic detail the client response hides, keyed
// by the same opaque error ID the client received, so support staff can
// recover the detail from an ID a user reports.
//
// Message, cause, stack and context are redacted before they are
// written here: the row is a log sink like any other.
type ErrorLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ErrorID string `gorm:"size:36;not null;uniqueIndex" json:"error_id"`
	Code    string `gorm:"size:40;index" json:"code"`

	Message string `gorm:"type:text" json:"message"`
	Cause   string `gorm:"type:text" json:"cause,omitempty"`
	Stack   string `gorm:"type:text" json:"stack,omitempty"`

	// Extra context stored as JSON (optional)
	Context string `gorm:"type:jsonb" json:"context,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (ErrorLog) TableName() string {
	return "error_logs"
}
