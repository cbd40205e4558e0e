package scraper

import (
	"strconv"
	"strings"
	"unicode"
)

// hasIcon reports whether the cell renders a boolean flag image.
func (c cell) hasIcon() bool {
	return c.ImgAlt != "" || c.ImgSrc != ""
}

// iconTrue decodes a boolean flag image. The console has shipped
// several icon sets over time, so both the alt text and the file name
// are checked.
func iconTrue(c cell) bool {
	for _, v := range []string{c.ImgAlt, c.ImgSrc} {
		v = strings.ToLower(v)
		if strings.Contains(v, "true") || strings.Contains(v, "icon-yes") || strings.Contains(v, "yes") {
			return true
		}
	}
	return false
}

// numericValue parses a cell that holds only digits, possibly with
// thousands separators or a currency sign. Cells containing letters
// are not numeric no matter how many digits they carry.
func numericValue(c cell) (int64, bool) {
	if c.hasIcon() || c.Text == "" {
		return 0, false
	}
	var digits strings.Builder
	for _, r := range c.Text {
		switch {
		case unicode.IsDigit(r):
			digits.WriteRune(r)
		case unicode.IsLetter(r):
			return 0, false
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	v, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// isNameCell reports whether the cell holds free text rather than a
// flag or a number.
func isNameCell(c cell) bool {
	if c.hasIcon() {
		return false
	}
	for _, r := range c.Text {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// headerName recovers a display name from a "<id>: Name" styled header
// column when no dedicated name cell exists.
func headerName(r row) string {
	s := r.Header
	if _, rest, ok := strings.Cut(s, ":"); ok {
		s = rest
	}
	s = strings.TrimSpace(s)
	for _, ru := range s {
		if unicode.IsLetter(ru) {
			return s
		}
	}
	return ""
}
