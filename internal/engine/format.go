package engine

import (
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders v the way a JavaScript Number prints: the shortest
// digit string that round-trips, in plain notation when the decimal exponent
// lies in (-7, 21], exponent notation ("1e+21", "1.5e-7") otherwise.
// Negative zero prints as "0".
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	case v < 0:
		return "-" + FormatNumber(-v)
	}

	digits, n := shortestDigits(v)
	k := len(digits)

	switch {
	case k <= n && n <= 21:
		return digits + strings.Repeat("0", n-k)
	case 0 < n && n <= 21:
		return digits[:n] + "." + digits[n:]
	case -6 < n && n <= 0:
		return "0." + strings.Repeat("0", -n) + digits
	}

	exp := n - 1
	sign := "+"
	if exp < 0 {
		sign = "-"
		exp = -exp
	}
	mantissa := digits[:1]
	if k > 1 {
		mantissa += "." + digits[1:]
	}
	return mantissa + "e" + sign + strconv.Itoa(exp)
}

// shortestDigits returns the significant digits of a positive finite v and
// the position n of the decimal point, so that v = 0.digits * 10^n.
func shortestDigits(v float64) (string, int) {
	s := strconv.FormatFloat(v, 'e', -1, 64) // d.dddde±XX
	mant, expPart, _ := strings.Cut(s, "e")
	exp, _ := strconv.Atoi(expPart)
	digits := strings.Replace(mant, ".", "", 1)
	digits = strings.TrimRight(digits, "0")
	if digits == "" {
		digits = "0"
	}
	return digits, exp + 1
}
