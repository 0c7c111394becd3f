package models

import (
	"fmt"
	"math/rand"
	"time"
)

const recordIDSuffixLen = 6

// Record ID prefixes, one per workflow record type.
const (
	BookingIDPrefix     = "DOMI"
	ApplicationIDPrefix = "APP"
	ScreeningIDPrefix   = "SCR"
	PaymentIDPrefix     = "PAY"
)

// NewRecordID generates a workflow record identifier of the form
// "<prefix>-<unix millis>-<6 base36 chars>".
func NewRecordID(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), base36Suffix(rand.Int63()))
}

func base36Suffix(n int64) string {
	const digits = "0123456789abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, recordIDSuffixLen)
	for i := recordIDSuffixLen - 1; i >= 0; i-- {
		b[i] = digits[n%36]
		n /= 36
	}
	return string(b)
}
