package payments

// Breakdown is the move-in payment split presented to the tenant.
type Breakdown struct {
	SecurityDeposit    int `json:"security_deposit"`
	ProcessingFee      int `json:"processing_fee"`
	BackgroundCheckFee int `json:"background_check_fee"`
	Total              int `json:"total"`
}

const (
	// Background check is a flat pass-through cost, NGN.
	backgroundCheckFee = 15_000

	minProcessingFee = 5_000
)

// AmountBreakdown computes the move-in payment for an annual rent: a 10%
// security deposit, a 1.5% processing fee floored at the minimum, and the
// flat background-check fee.
func AmountBreakdown(annualRent int) Breakdown {
	deposit := annualRent / 10
	fee := annualRent * 15 / 1000
	if fee < minProcessingFee {
		fee = minProcessingFee
	}
	return Breakdown{
		SecurityDeposit:    deposit,
		ProcessingFee:      fee,
		BackgroundCheckFee: backgroundCheckFee,
		Total:              deposit + fee + backgroundCheckFee,
	}
}
