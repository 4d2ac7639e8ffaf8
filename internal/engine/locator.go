package engine

import "strconv"

// NumberToken identifies the rightmost number in a buffer.
//
// Value is the matched text (optional leading '-', digits, at most one '.').
// Start is the byte offset of Value within the buffer. A single ')' directly
// after the number is accepted by the locator but is not part of Value.
type NumberToken struct {
	Value string
	Start int
}

// Float parses the token's value.
func (t NumberToken) Float() float64 {
	v, _ := strconv.ParseFloat(t.Value, 64)
	return v
}

// HasDecimal reports whether the token already carries a decimal point.
func (t NumberToken) HasDecimal() bool {
	for i := 0; i < len(t.Value); i++ {
		if t.Value[i] == '.' {
			return true
		}
	}
	return false
}

// LastNumber scans buf backwards and returns the trailing number, if any.
//
// The scan accepts, from the end: an optional ')', then a maximal run of
// digits containing at most one '.', then an optional '-'. The run must hold
// at least one digit. A '-' directly before the digits is always taken as the
// number's sign, even when it reads as a binary minus ("5-3" yields "-3").
func LastNumber(buf string) (NumberToken, bool) {
	end := len(buf)
	if end > 0 && buf[end-1] == ')' {
		end--
	}

	i := end
	digits := 0
	dot := false
	for i > 0 {
		c := buf[i-1]
		if isDigit(c) {
			digits++
		} else if c == '.' && !dot {
			dot = true
		} else {
			// a second '.' ends the run too
			break
		}
		i--
	}
	if digits == 0 {
		return NumberToken{}, false
	}
	if i > 0 && buf[i-1] == '-' {
		i--
	}
	return NumberToken{Value: buf[i:end], Start: i}, true
}

// leadingNumber parses the longest numeric prefix of s the way JavaScript's
// parseFloat does: optional sign, digits, optional fraction, optional
// exponent. ok is false when s has no numeric prefix.
func leadingNumber(s string) (v float64, ok bool) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	mant := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		mant++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			mant++
		}
	}
	if mant == 0 {
		return 0, false
	}
	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			end = k
		}
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
