package models

import "time"

const (
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

const (
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
)

// PaymentRecord is the persisted outcome of a processed move-in payment
// (PostgreSQL)
type PaymentRecord struct {
	ID            uint   `json:"-" gorm:"primaryKey"`
	PaymentID     string `json:"payment_id" gorm:"uniqueIndex;size:40"`
	TransactionID string `json:"transaction_id" gorm:"uniqueIndex;size:40"`
	ScreeningID   string `json:"screening_id" gorm:"size:40"`
	ApplicationID string `json:"application_id" gorm:"index;size:40"`
	UserID        uint   `json:"user_id" gorm:"index"`

	SecurityDeposit    int `json:"security_deposit"`
	ProcessingFee      int `json:"processing_fee"`
	BackgroundCheckFee int `json:"background_check_fee"`
	TotalAmount        int `json:"total_amount"`

	Method    string    `json:"method" gorm:"size:20"`
	CardLast4 string    `json:"card_last4" gorm:"size:4"`
	Status    string    `json:"status" gorm:"size:20;index"`
	CreatedAt time.Time `json:"created_at"`
}

type CreatePaymentRequest struct {
	ApplicationID string `json:"application_id" validate:"required"`
	ScreeningID   string `json:"screening_id" validate:"required"`
	Method        string `json:"method" validate:"required,oneof=card transfer"`

	// Card fields, required when method is "card".
	CardNumber string `json:"card_number"`
	CardExpiry string `json:"card_expiry"`
	CardCVV    string `json:"card_cvv"`
	CardHolder string `json:"card_holder"`

	WorkflowVersion int64 `json:"workflow_version"`
}
