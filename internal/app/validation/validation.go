// Package validation implements field-level form validation. Validators are
// pure functions from the raw input string to an error message; the empty
// message means the value is accepted. Each validator governs a single field
// and is re-run on every edit of that field only.
package validation

import "regexp"

var (
	emailPattern     = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	digitsPattern    = regexp.MustCompile(`^[0-9]+$`)
	birthDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Email requires a non-blank value matching a standard address pattern.
func Email(value string) string {
	if value == "" {
		return "email is required"
	}
	if !emailPattern.MatchString(value) {
		return "invalid email format"
	}
	return ""
}

// Password requires a non-blank value of at least 6 characters.
func Password(value string) string {
	if value == "" {
		return "password is required"
	}
	if len(value) < 6 {
		return "password must be at least 6 characters"
	}
	return ""
}

// FullName requires a non-blank value of at least 5 characters.
func FullName(value string) string {
	if value == "" {
		return "full name is required"
	}
	if len(value) < 5 {
		return "name is too short"
	}
	return ""
}

// Phone requires exactly 9 digits.
func Phone(value string) string {
	if value == "" {
		return "phone number is required"
	}
	if len(value) != 9 || !digitsPattern.MatchString(value) {
		return "must be a 9 digit number (e.g. 912345678)"
	}
	return ""
}

// Required requires any non-blank value. Used for street, city, commune,
// region and gender.
func Required(value string) string {
	if value == "" {
		return "required"
	}
	return ""
}

// AddressNumber requires a non-blank all-digit value.
func AddressNumber(value string) string {
	if value == "" {
		return "address number is required"
	}
	if !digitsPattern.MatchString(value) {
		return "digits only"
	}
	return ""
}

// BirthDate requires the exact zero-padded YYYY-MM-DD shape. Calendar
// validity is deliberately not checked.
func BirthDate(value string) string {
	if value == "" {
		return "birth date is required"
	}
	if !birthDatePattern.MatchString(value) {
		return "format must be YYYY-MM-DD"
	}
	return ""
}
