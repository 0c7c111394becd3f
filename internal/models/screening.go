package models

import "time"

// The seven screening checks run for every application.
const (
	CheckBackground    = "background"
	CheckCredit        = "credit"
	CheckReference     = "reference"
	CheckDocument      = "document"
	CheckEmployment    = "employment"
	CheckRentalHistory = "rental_history"
	CheckIdentity      = "identity"
)

// ScreeningChecks lists every check in pipeline start order. Identity is
// verified at signup, so its check starts pre-completed.
var ScreeningChecks = []string{
	CheckBackground,
	CheckCredit,
	CheckReference,
	CheckDocument,
	CheckEmployment,
	CheckRentalHistory,
	CheckIdentity,
}

const (
	ScreeningResultPassed = "passed"
)

// ScreeningRecord is the persisted outcome of a completed screening run
// (PostgreSQL). Scores are the per-check confidence values reached before
// the check completed.
type ScreeningRecord struct {
	ID            uint   `json:"-" gorm:"primaryKey"`
	ScreeningID   string `json:"screening_id" gorm:"uniqueIndex;size:40"`
	ApplicationID string `json:"application_id" gorm:"index;size:40"`
	UserID        uint   `json:"user_id" gorm:"index"`

	BackgroundScore    int `json:"background_score"`
	CreditScore        int `json:"credit_score"`
	ReferenceScore     int `json:"reference_score"`
	DocumentScore      int `json:"document_score"`
	EmploymentScore    int `json:"employment_score"`
	RentalHistoryScore int `json:"rental_history_score"`
	IdentityScore      int `json:"identity_score"`

	VideoIntroductionFile string `json:"video_introduction_file"`
	ConsentBackground     bool   `json:"consent_background"`
	ConsentCredit         bool   `json:"consent_credit"`
	ConsentReference      bool   `json:"consent_reference"`

	OverallScore int       `json:"overall_score"`
	Result       string    `json:"result" gorm:"size:20"`
	CreatedAt    time.Time `json:"created_at"`
}

type StartScreeningRequest struct {
	ApplicationID   string `json:"application_id" validate:"required"`
	WorkflowVersion int64  `json:"workflow_version"`
}

type SubmitScreeningRequest struct {
	VideoIntroductionFile string `json:"video_introduction_file" validate:"required"`
	VideoIntroductionSize int64  `json:"video_introduction_size"`
	ConsentBackground     bool   `json:"consent_background" validate:"required"`
	ConsentCredit         bool   `json:"consent_credit" validate:"required"`
	ConsentReference      bool   `json:"consent_reference" validate:"required"`
	WorkflowVersion       int64  `json:"workflow_version"`
}
