// ABOUTME: Utility functions for parsing numbers from loosely formatted strings
// ABOUTME: Accepts comma decimal separators and thousands spacing found in catalog feeds

package parse

import (
	"strconv"
	"strings"
	"unicode"
)

// Float parses a decimal number written with either a dot or a comma as the
// decimal separator. Spaces (including no-break spaces) inside the number are
// ignored, so "1 299,90" parses as 1299.9.
func Float(s string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	if strings.Contains(cleaned, ",") {
		if strings.Contains(cleaned, ".") {
			// 1.299,90 style: dots group thousands
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	}
	return strconv.ParseFloat(cleaned, 64)
}

// FloatOrZero is Float with parse failures mapped to zero
func FloatOrZero(s string) float64 {
	v, err := Float(s)
	if err != nil {
		return 0
	}
	return v
}
