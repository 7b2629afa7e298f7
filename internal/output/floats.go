// Package output provides deterministic encoding helpers for analysis
// results. Floating-point values are rounded before serialization so
// repeated runs over identical inputs produce byte-identical reports.
package output

import (
	"math"
	"strconv"
	"strings"
)

// floatPrecision is the number of decimal places kept in serialized output.
const floatPrecision = 6

// RoundFloat rounds a float to floatPrecision decimal places.
func RoundFloat(f float64) float64 {
	multiplier := math.Pow(10, floatPrecision)
	return math.Round(f*multiplier) / multiplier
}

// FormatFloat formats a float with trailing zeros removed.
func FormatFloat(f float64) string {
	str := strconv.FormatFloat(RoundFloat(f), 'f', floatPrecision, 64)
	str = strings.TrimRight(str, "0")
	str = strings.TrimRight(str, ".")
	return str
}

// FormatPercent formats a [0,1] ratio as a percentage with one decimal.
func FormatPercent(f float64) string {
	return strconv.FormatFloat(RoundFloat(f)*100, 'f', 1, 64) + "%"
}
