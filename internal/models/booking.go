package models

import "time"

// Inspection booking lifecycle. Only "pending" is produced today; the
// remaining states exist for agent-side tooling.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// InspectionBooking is a request to view a property (PostgreSQL)
type InspectionBooking struct {
	ID             uint      `json:"-" gorm:"primaryKey"`
	BookingID      string    `json:"booking_id" gorm:"uniqueIndex;size:40"`
	PropertyID     string    `json:"property_id" gorm:"index;size:60"`
	UserID         uint      `json:"user_id" gorm:"index"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	InspectionDate string    `json:"inspection_date" gorm:"size:10"` // YYYY-MM-DD
	InspectionTime string    `json:"inspection_time" gorm:"size:5"`  // HH:MM
	NumberOfPeople int       `json:"number_of_people"`
	Notes          string    `json:"notes"`
	Status         string    `json:"status" gorm:"size:20;index"`
	CreatedAt      time.Time `json:"created_at"`
}

type CreateBookingRequest struct {
	PropertyID      string `json:"property_id" validate:"required"`
	FullName        string `json:"full_name" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required"`
	InspectionDate  string `json:"inspection_date" validate:"required"`
	InspectionTime  string `json:"inspection_time" validate:"required"`
	NumberOfPeople  int    `json:"number_of_people" validate:"required,min=1,max=10"`
	Notes           string `json:"notes" validate:"max=500"`
	AgreeTerms      bool   `json:"agree_terms" validate:"required"`
	WorkflowVersion int64  `json:"workflow_version"`
}
