package booking

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidPhone(t *testing.T) {
	valid := []string{
		"89991234567",
		"+7 (999) 123-45-67",
		"9991234567",
		"8 999 123 45 67",
	}
	for _, phone := range valid {
		require.True(t, IsValidPhone(phone), phone)
	}

	invalid := []string{"", "12345", "телефон", "+7 (999) 123-45-678-99"}
	for _, phone := range invalid {
		require.False(t, IsValidPhone(phone), phone)
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"89991234567":       "+7 (999) 123-45-67",
		"9991234567":        "+7 (999) 123-45-67",
		"79991234567":       "+7 (999) 123-45-67",
		"+7 999 123 45 67":  "+7 (999) 123-45-67",
		"8 (912) 000-11-22": "+7 (912) 000-11-22",
	}
	for in, want := range cases {
		require.Equal(t, want, NormalizePhone(in), in)
	}

	// unparseable input is passed through untouched
	require.Equal(t, "12345", NormalizePhone("12345"))
}
