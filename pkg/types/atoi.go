// SPDX-License-Identifier: MPL-2.0

package types

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// Atoi reads a leading integer the way C atoi does: blanks are skipped, an
// optional sign and the digits that follow count, and anything else is zero.
// Digit runs outside the int range saturate instead of wrapping to zero.
func Atoi(s string) int {
	s = strings.TrimLeft(s, " \t\n\v\f\r")
	sign := ""
	if s != "" && (s[0] == '-' || s[0] == '+') {
		sign, s = s[:1], s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	// cast parses with base 0, so a leading zero would read as octal.
	digits := strings.TrimLeft(s[:end], "0")
	if digits == "" {
		return 0
	}
	n, err := cast.ToIntE(sign + digits)
	if err != nil {
		if sign == "-" {
			return math.MinInt
		}
		return math.MaxInt
	}
	return n
}
