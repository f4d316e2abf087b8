package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount_CleanDecimal(t *testing.T) {
	assert.Equal(t, "1234.56", ParseAmount("1234.56").StringFixed(2))
}

func TestParseAmount_CurrencySymbol(t *testing.T) {
	assert.Equal(t, "45.00", ParseAmount("$45.00").StringFixed(2))
	assert.Equal(t, "45.00", ParseAmount("NZ$ 45.00").StringFixed(2))
}

func TestParseAmount_CommaDecimal(t *testing.T) {
	assert.Equal(t, "1234.56", ParseAmount("1.234,56").StringFixed(2))
	assert.Equal(t, "12.34", ParseAmount("12,34").StringFixed(2))
}

func TestParseAmount_CommaThousands(t *testing.T) {
	assert.Equal(t, "1234.56", ParseAmount("1,234.56").StringFixed(2))
	assert.Equal(t, "1234.00", ParseAmount("1,234").StringFixed(2))
	assert.Equal(t, "1234567.89", ParseAmount("1,234,567.89").StringFixed(2))
}

func TestParseAmount_NegativeBecomesAbsolute(t *testing.T) {
	assert.Equal(t, "52.10", ParseAmount("-$52.10").StringFixed(2))
}

func TestParseAmount_GarbageYieldsZero(t *testing.T) {
	for _, raw := range []string{"", "abc", "$", "--", "1.2.3.4,", ",", ".", "1234.", "1.234,"} {
		got, ok := ParseAmountOK(raw)
		assert.False(t, ok, "input %q should not parse", raw)
		assert.True(t, got.IsZero(), "input %q should yield zero", raw)
	}
}

func TestParseAmount_NeverNegative(t *testing.T) {
	for _, raw := range []string{"-1", "-1,234.56", "(12.00)", "-0.01", "junk"} {
		assert.False(t, ParseAmount(raw).IsNegative(), "input %q", raw)
	}
}

func TestParseDate_ISO(t *testing.T) {
	got, ok := ParseDateOK("2025-01-15")
	require.True(t, ok)
	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 15, got.Day())
}

func TestParseDate_USSlash(t *testing.T) {
	got, ok := ParseDateOK("01/15/2025")
	require.True(t, ok)
	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 15, got.Day())
}

func TestParseDate_DayMonthName(t *testing.T) {
	got, ok := ParseDateOK("19 Nov 2025")
	require.True(t, ok)
	assert.Equal(t, time.November, got.Month())
	assert.Equal(t, 19, got.Day())
}

func TestParseDate_FallbackIsNow(t *testing.T) {
	before := time.Now().UTC().Add(-time.Minute)
	got, ok := ParseDateOK("not a date")
	after := time.Now().UTC().Add(time.Minute)
	assert.False(t, ok)
	assert.True(t, got.After(before) && got.Before(after))
}
