package models

import "time"

// Workflow pointer kinds, one per "current record" slot a user holds.
const (
	PointerBooking     = "booking"
	PointerApplication = "application"
	PointerScreening   = "screening"
	PointerPayment     = "payment"
)

// WorkflowPointer is the "current record" slot for one step of a user's
// rental workflow (PostgreSQL). Version increases on every write; a caller
// that presents a stale version is rejected instead of silently clobbering
// a concurrent flow.
type WorkflowPointer struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_pointer_user_kind"`
	Kind      string    `json:"kind" gorm:"size:20;uniqueIndex:idx_pointer_user_kind"`
	RecordID  string    `json:"record_id" gorm:"size:40"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}
