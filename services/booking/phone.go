package booking

import (
	"fmt"
	"strings"
	"unicode"
)

func phoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidPhone accepts Russian numbers: 10 digits, or 11 with a
// leading 7 or 8, in any human formatting.
func IsValidPhone(phone string) bool {
	n := len(phoneDigits(phone))
	return n >= 10 && n <= 11
}

// NormalizePhone renders a number as "+7 (999) 123-45-67". Numbers it
// cannot make sense of come back unchanged so the manager still sees
// what the visitor typed.
func NormalizePhone(phone string) string {
	digits := phoneDigits(phone)

	switch {
	case len(digits) == 10:
		digits = "7" + digits
	case len(digits) == 11 && digits[0] == '8':
		digits = "7" + digits[1:]
	}
	if len(digits) != 11 {
		return phone
	}

	return fmt.Sprintf("+%c (%s) %s-%s-%s",
		digits[0], digits[1:4], digits[4:7], digits[7:9], digits[9:])
}
