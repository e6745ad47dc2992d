package parser

import (
	"math"
	"strconv"
	"strings"

	"photon/pkg/errors"
)

// ToNumber converts a numeric lexeme to a finite float64. Accepted shapes are
// -?digits(.digits)? and the same with a single comma as decimal separator
// ("3,14"). Anything else fails with errors.ErrInvalidNumber.
func ToNumber(lexeme string) (float64, error) {
	if isNumberShaped(lexeme) {
		return parseFinite(lexeme)
	}

	parts := strings.FieldsFunc(lexeme, func(r rune) bool { return r == '.' || r == ',' })
	if len(parts) == 2 && strings.Count(lexeme, ".")+strings.Count(lexeme, ",") == 1 {
		dotted := parts[0] + "." + parts[1]
		if isNumberShaped(dotted) {
			return parseFinite(dotted)
		}
	}

	return 0, invalidNumber(lexeme)
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, invalidNumber(s)
	}
	return v, nil
}

func invalidNumber(lexeme string) error {
	err := errors.NewSyntaxError(errors.Position{}, "%s can not be converted into a valid number", lexeme)
	err.Lexeme = lexeme
	return err.CausedBy(errors.ErrInvalidNumber)
}

// isNumberShaped reports whether s matches -?[0-9]+(\.[0-9]+)?.
func isNumberShaped(s string) bool {
	s = strings.TrimPrefix(s, "-")
	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if !allDigits(intPart) {
		return false
	}
	return !hasFrac || allDigits(fracPart)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
