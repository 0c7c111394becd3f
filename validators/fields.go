package validators

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Pure field validators shared by the booking, application and payment
// flows. All are side-effect free.

var (
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe  = regexp.MustCompile(`^\+?[0-9][0-9\s-]{9,14}$`)
	cvvRe    = regexp.MustCompile(`^[0-9]{3,4}$`)
	expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)
	digitsRe = regexp.MustCompile(`^[0-9]+$`)
)

// IsValidEmail reports whether s looks like an email address.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// IsValidPhone reports whether s looks like a phone number: an optional
// leading +, then 10 to 15 digits allowing spaces and dashes.
func IsValidPhone(s string) bool {
	return phoneRe.MatchString(s)
}

// IsValidCardNumber reports whether s is 13 to 19 digits after stripping
// spaces and dashes.
func IsValidCardNumber(s string) bool {
	stripped := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, s)
	if len(stripped) < 13 || len(stripped) > 19 {
		return false
	}
	return digitsRe.MatchString(stripped)
}

// IsValidCVV reports whether s is a 3 or 4 digit card verification value.
func IsValidCVV(s string) bool {
	return cvvRe.MatchString(s)
}

// IsValidExpiryDate reports whether s is an MM/YY expiry that has not
// already passed.
func IsValidExpiryDate(s string) bool {
	return isValidExpiryAt(s, time.Now())
}

func isValidExpiryAt(s string, now time.Time) bool {
	m := expiryRe.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	year += 2000

	// The card is good through the last day of its expiry month.
	endOfMonth := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	return now.Before(endOfMonth)
}

// Upload constraints mirror what the application and screening forms
// accept.
var documentExtensions = map[string]bool{
	".pdf": true, ".jpg": true, ".jpeg": true, ".png": true,
	".doc": true, ".docx": true,
}

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".webm": true,
}

const (
	maxDocumentBytes = 5 << 20  // 5 MiB
	maxVideoBytes    = 50 << 20 // 50 MiB
)

// ValidateDocument checks an uploaded document's filename extension and
// size. A size of zero is accepted (metadata not reported by the client).
func ValidateDocument(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !documentExtensions[ext] {
		return fmt.Errorf("document type %q not accepted", ext)
	}
	if size > maxDocumentBytes {
		return fmt.Errorf("document %s exceeds the %d byte limit", filename, maxDocumentBytes)
	}
	return nil
}

// ValidateVideo checks an uploaded video introduction's filename extension
// and size.
func ValidateVideo(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !videoExtensions[ext] {
		return fmt.Errorf("video type %q not accepted", ext)
	}
	if size > maxVideoBytes {
		return fmt.Errorf("video %s exceeds the %d byte limit", filename, maxVideoBytes)
	}
	return nil
}
