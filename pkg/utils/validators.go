package utils

import "regexp"

var (
	emailRegex   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	licenseRegex = regexp.MustCompile(`^[A-Z0-9]+$`)
	ssnRegex     = regexp.MustCompile(`^\d{3}-\d{2}-\d{4}$`)
	phoneRegex   = regexp.MustCompile(`^\+?[0-9()\-\s]{7,}$`)
)

// IsValidEmail reports whether value looks like local@domain.tld.
func IsValidEmail(value string) bool {
	return emailRegex.MatchString(value)
}

// IsValidLicenseNumber allows only uppercase alphanumeric license numbers.
func IsValidLicenseNumber(value string) bool {
	return licenseRegex.MatchString(value)
}

// IsValidSSN expects XXX-XX-XXXX.
func IsValidSSN(value string) bool {
	return ssnRegex.MatchString(value)
}

// IsValidPhone is deliberately loose: digits, punctuation, at least 7 chars.
func IsValidPhone(value string) bool {
	return phoneRegex.MatchString(value)
}

// IsValidYear expects a 4-digit year.
func IsValidYear(year int) bool {
	return year >= 1000 && year <= 9999
}

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// IsValidPassword enforces the minimum password length.
func IsValidPassword(value string) bool {
	return len(value) >= MinPasswordLength
}
