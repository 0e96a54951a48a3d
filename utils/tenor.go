package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseTenor splits a tenor string like "1W", "3M", "10Y" into its numeric
// value and unit letter, grounded on swap/curve/tenor.go's tenorToYears.
func ParseTenor(tenor string) (value int, unit byte, err error) {
	t := strings.TrimSpace(strings.ToUpper(tenor))
	if t == "" {
		return 0, 0, fmt.Errorf("empty tenor")
	}
	unit = t[len(t)-1]
	switch unit {
	case 'D', 'W', 'M', 'Y':
		v, convErr := strconv.Atoi(t[:len(t)-1])
		if convErr != nil {
			return 0, 0, fmt.Errorf("invalid tenor %q: %w", tenor, convErr)
		}
		return v, unit, nil
	default:
		return 0, 0, fmt.Errorf("invalid tenor %q: unrecognized unit", tenor)
	}
}

// AddTenor rolls t forward by a parsed tenor, matching EDATE-style month
// addition via AddMonth for M/Y units.
func AddTenor(t time.Time, tenor string) (time.Time, error) {
	value, unit, err := ParseTenor(tenor)
	if err != nil {
		return time.Time{}, err
	}
	switch unit {
	case 'D':
		return t.AddDate(0, 0, value), nil
	case 'W':
		return t.AddDate(0, 0, 7*value), nil
	case 'M':
		return AddMonth(t, value), nil
	case 'Y':
		return AddMonth(t, 12*value), nil
	}
	return time.Time{}, fmt.Errorf("invalid tenor %q", tenor)
}

// TenorToYears converts a tenor string to an approximate year fraction
// (365-day basis for D/W, 12-month basis for M/Y), used where only a rough
// ordering or initial Newton guess is needed rather than an exact schedule.
func TenorToYears(tenor string) float64 {
	value, unit, err := ParseTenor(tenor)
	if err != nil {
		return 0
	}
	switch unit {
	case 'D':
		return float64(value) / 365.0
	case 'W':
		return float64(value) * 7.0 / 365.0
	case 'M':
		return float64(value) / 12.0
	case 'Y':
		return float64(value)
	}
	return 0
}
