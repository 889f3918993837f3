// File: internal/money/money_test.go
package money

import (
	"regexp"
	"testing"

	"github.com/ericlagergren/decimal"
	"github.com/stretchr/testify/require"
)

func amount(t *testing.T, s string) *decimal.Big {
	t.Helper()
	v, ok := new(decimal.Big).SetString(s)
	require.True(t, ok, s)
	return v
}

// TestFormat 千分位、固定两位小数与符号位置。
func TestFormat(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"1", "$1.00"},
		{"12.5", "$12.50"},
		{"999", "$999.00"},
		{"1000", "$1,000.00"},
		{"1234.56", "$1,234.56"},
		{"1234.567", "$1,234.57"},
		{"1234.565", "$1,234.57"},
		{"1234567.89", "$1,234,567.89"},
		{"-1234.56", "$-1,234.56"},
		{"0.005", "$0.01"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Format(amount(t, tc.in)), "input %s", tc.in)
	}
}

// TestFormatNil nil 金额按零处理。
func TestFormatNil(t *testing.T) {
	require.Equal(t, "$0.00", Format(nil))
}

// TestFormatShape 输出总是符合同一个模式。
func TestFormatShape(t *testing.T) {
	pattern := regexp.MustCompile(`^\$-?\d{1,3}(,\d{3})*\.\d{2}$`)
	for _, s := range []string{"0", "7", "42.1", "99999.999", "-12345678.9"} {
		out := Format(amount(t, s))
		require.Regexp(t, pattern, out)
	}
}
