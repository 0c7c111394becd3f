package models

import "time"

// Rental application status machine:
// submitted -> screening_completed -> payment_completed
const (
	ApplicationStatusSubmitted          = "submitted"
	ApplicationStatusScreeningCompleted = "screening_completed"
	ApplicationStatusPaymentCompleted   = "payment_completed"
)

// Application flows: "direct" skips the inspection step, "inspection"
// arrives from a completed booking.
const (
	FlowDirect     = "direct"
	FlowInspection = "inspection"
)

// Background holds the applicant's personal background details.
type Background struct {
	DateOfBirth    string `json:"date_of_birth" validate:"required"`
	Nationality    string `json:"nationality" validate:"required"`
	MaritalStatus  string `json:"marital_status"`
	CurrentAddress string `json:"current_address" validate:"required"`
	Occupants      int    `json:"occupants" validate:"min=1"`
	HasPets        bool   `json:"has_pets"`
}

// RentalHistory describes the applicant's previous tenancy.
type RentalHistory struct {
	PreviousAddress  string `json:"previous_address"`
	LandlordName     string `json:"landlord_name"`
	LandlordPhone    string `json:"landlord_phone"`
	DurationMonths   int    `json:"duration_months" validate:"min=0"`
	ReasonForLeaving string `json:"reason_for_leaving"`
	EverEvicted      bool   `json:"ever_evicted"`
}

// Employment describes the applicant's income situation.
type Employment struct {
	Status        string `json:"status" validate:"required,oneof=employed self_employed student unemployed"`
	Employer      string `json:"employer"`
	JobTitle      string `json:"job_title"`
	MonthlyIncome int    `json:"monthly_income" validate:"min=0"`
	WorkPhone     string `json:"work_phone"`
}

// Reference is one of the exactly two referees an application carries.
type Reference struct {
	Name         string `json:"name" validate:"required"`
	Relationship string `json:"relationship" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Email        string `json:"email" validate:"omitempty,email"`
}

// RentalApplication is the central workflow record (PostgreSQL)
type RentalApplication struct {
	ID            uint          `json:"-" gorm:"primaryKey"`
	ApplicationID string        `json:"application_id" gorm:"uniqueIndex;size:40"`
	PropertyID    string        `json:"property_id" gorm:"index;size:60"`
	BookingID     string        `json:"booking_id" gorm:"size:40"`
	UserID        uint          `json:"user_id" gorm:"index"`
	Flow          string        `json:"flow" gorm:"size:20"`
	AnnualRent    int           `json:"annual_rent"`
	Background    Background    `json:"background" gorm:"embedded;embeddedPrefix:bg_"`
	RentalHistory RentalHistory `json:"rental_history" gorm:"embedded;embeddedPrefix:rh_"`
	Employment    Employment    `json:"employment" gorm:"embedded;embeddedPrefix:emp_"`
	Reference1    Reference     `json:"reference1" gorm:"embedded;embeddedPrefix:ref1_"`
	Reference2    Reference     `json:"reference2" gorm:"embedded;embeddedPrefix:ref2_"`

	// Uploaded document filenames; contents are stored out of band.
	IDDocumentFile       string `json:"id_document_file"`
	ProofOfIncomeFile    string `json:"proof_of_income_file"`
	EmploymentLetterFile string `json:"employment_letter_file"`

	AgreeTerms       bool `json:"agree_terms"`
	AgreeCreditCheck bool `json:"agree_credit_check"`

	Status    string    `json:"status" gorm:"size:30;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateApplicationRequest struct {
	PropertyID    string        `json:"property_id" validate:"required"`
	BookingID     string        `json:"booking_id"`
	Flow          string        `json:"flow" validate:"required,oneof=direct inspection"`
	AnnualRent    int           `json:"annual_rent" validate:"required,min=1"`
	Background    Background    `json:"background" validate:"required"`
	RentalHistory RentalHistory `json:"rental_history"`
	Employment    Employment    `json:"employment" validate:"required"`
	References    []Reference   `json:"references" validate:"required,len=2,dive"`

	IDDocumentFile       string `json:"id_document_file" validate:"required"`
	IDDocumentSize       int64  `json:"id_document_size"`
	ProofOfIncomeFile    string `json:"proof_of_income_file" validate:"required"`
	ProofOfIncomeSize    int64  `json:"proof_of_income_size"`
	EmploymentLetterFile string `json:"employment_letter_file"`
	EmploymentLetterSize int64  `json:"employment_letter_size"`

	AgreeTerms       bool  `json:"agree_terms" validate:"required"`
	AgreeCreditCheck bool  `json:"agree_credit_check" validate:"required"`
	WorkflowVersion  int64 `json:"workflow_version"`
}
