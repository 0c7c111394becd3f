package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Notification types surfaced in the notification center.
const (
	NotificationBookingConfirmed    = "booking_confirmed"
	NotificationApplicationReceived = "application_received"
	NotificationScreeningCompleted  = "screening_completed"
	NotificationTenantApproval      = "tenant_approval"
	NotificationPaymentReceived     = "payment_received"
	NotificationInspectionReminder  = "inspection_reminder"
)

// TriggerPaymentCompleted defers a notification until the payment step of
// the same application completes.
const TriggerPaymentCompleted = "payment_completed"

// NotificationAction is an optional call-to-action rendered with a
// notification.
type NotificationAction struct {
	Text   string `json:"text"`
	Action string `json:"action"`
	ID     string `json:"id"`
}

// NotificationActions stores a list of actions as a JSON column.
type NotificationActions []NotificationAction

func (a NotificationActions) Value() (driver.Value, error) {
	if len(a) == 0 {
		return nil, nil
	}
	return json.Marshal(a)
}

func (a *NotificationActions) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported notification actions type %T", value)
	}
	return json.Unmarshal(data, a)
}

// Notification represents a user notification (PostgreSQL). A notification
// with a non-empty DeferredUntil is held back from the center until the
// named workflow trigger fires for its target record, at which point it is
// promoted in place.
type Notification struct {
	ID            uint                `json:"id" gorm:"primaryKey"`
	Type          string              `json:"type" gorm:"size:30;index"`
	Title         string              `json:"title"`
	Message       string              `json:"message"`
	RecipientID   uint                `json:"recipient_id" gorm:"index"`
	TargetID      string              `json:"target_id" gorm:"index;size:60"` // booking/application/payment ID
	Actions       NotificationActions `json:"actions,omitempty" gorm:"type:jsonb"`
	DeferredUntil string              `json:"deferred_until,omitempty" gorm:"size:30;index"`
	IsRead        bool                `json:"is_read" gorm:"default:false;index"`
	CreatedAt     time.Time           `json:"created_at" gorm:"index"`
}

// Active reports whether the notification is visible in the center.
func (n *Notification) Active() bool {
	return n.DeferredUntil == ""
}
