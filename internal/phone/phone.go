// Package phone normalizes and checks Malagasy mobile numbers.
//
// The check is a convenience for the user; the backend decides whether a
// number is accepted.
package phone

import (
	"errors"
	"slices"
	"strings"
)

const (
	// Length is the number of digits in a local number.
	Length = 10

	// CountryCode is the international prefix rewritten to a leading zero.
	CountryCode = "261"
)

// Prefixes lists the carrier prefixes accepted for a local number.
var Prefixes = []string{"032", "033", "034", "037", "038"}

var (
	ErrEmpty  = errors.New("le numéro de téléphone est obligatoire")
	ErrLength = errors.New("le numéro doit contenir exactement 10 chiffres")
	ErrPrefix = errors.New("le numéro doit commencer par 032, 033, 034, 037 ou 038")
)

// Normalize keeps only the digits of raw and rewrites the international form
// 261XXXXXXXXX into the local form 0XXXXXXXXX.
func Normalize(raw string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)

	if len(digits) == len(CountryCode)+Length-1 && strings.HasPrefix(digits, CountryCode) {
		digits = "0" + digits[len(CountryCode):]
	}
	return digits
}

// Validate normalizes raw and returns the local number, or an error naming
// the first rule it breaks.
func Validate(raw string) (string, error) {
	n := Normalize(raw)

	switch {
	case n == "":
		return "", ErrEmpty
	case len(n) != Length:
		return n, ErrLength
	case !slices.Contains(Prefixes, n[:3]):
		return n, ErrPrefix
	}
	return n, nil
}
