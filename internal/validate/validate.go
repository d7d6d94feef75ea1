// Package validate holds the field-level predicates used by the booking
// wizard and the contact form. Every function is total and
// side-effect-free; callers map failures to field-specific messages.
package validate

import (
	"regexp"
	"strings"
)

var (
	emailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe  = regexp.MustCompile(`^[+]?[\d\s\-()]{10,}$`)
	expiryRe = regexp.MustCompile(`^\d{2}/\d{2}$`)
	cvvRe    = regexp.MustCompile(`^\d{3}$`)
	nameRe   = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	digitsRe = regexp.MustCompile(`^\d+$`)
)

// IsValidEmail reports whether s has local@domain.tld shape: no
// whitespace or extra @ on either side, and at least one dot in the
// domain.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// IsValidPhone accepts digits, spaces, dashes, parentheses and an
// optional leading +, and requires at least ten digits overall.
func IsValidPhone(s string) bool {
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 10 && phoneRe.MatchString(s)
}

// IsValidCard reports whether s is exactly sixteen digits once spaces
// are removed.
func IsValidCard(s string) bool {
	stripped := strings.ReplaceAll(s, " ", "")
	return len(stripped) == 16 && digitsRe.MatchString(stripped)
}

// IsValidExpiry checks the MM/YY shape only. The month range is not
// checked semantically ("13/99" passes), matching the source behavior.
func IsValidExpiry(s string) bool {
	return expiryRe.MatchString(s)
}

// IsValidCVV reports whether s is exactly three digits.
func IsValidCVV(s string) bool {
	return cvvRe.MatchString(s)
}

// IsValidName requires at least two characters, letters and spaces
// only.
func IsValidName(s string) bool {
	return len(s) >= 2 && nameRe.MatchString(s)
}

// IsRequired reports whether s is non-empty after trimming whitespace.
func IsRequired(s string) bool {
	return strings.TrimSpace(s) != ""
}
