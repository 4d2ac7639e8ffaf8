package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors for invalid command arguments.
var (
	// ErrInvalidDigit is returned when AppendDigit receives a non-digit.
	ErrInvalidDigit = errors.New("invalid digit")

	// ErrInvalidOperator is returned when AppendOperator receives a byte
	// outside the operator set.
	ErrInvalidOperator = errors.New("invalid operator")

	// ErrUnknownCommand is returned by ParseCommand for unrecognized input.
	ErrUnknownCommand = errors.New("unknown command")
)

// EvalError represents a failure to turn an expression into a finite number.
//
// Eval returns EvalError values; Engine.Evaluate swallows them and shows
// ErrorDisplay instead.
type EvalError struct {
	// Code identifies the error category.
	Code EvalErrorCode

	// Message is a human-readable description.
	Message string

	// Expr is the expression that failed.
	Expr string

	// Pos is the byte offset of the offending token, or -1 when the error
	// is not tied to a position.
	Pos int
}

// EvalErrorCode categorizes evaluation errors.
type EvalErrorCode string

const (
	// ErrCodeMalformed indicates the expression is not syntactically valid.
	ErrCodeMalformed EvalErrorCode = "MALFORMED_EXPRESSION"

	// ErrCodeNonFinite indicates the result is +Inf, -Inf or NaN.
	ErrCodeNonFinite EvalErrorCode = "NON_FINITE_RESULT"
)

// Error implements the error interface.
func (e *EvalError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("%s: %s (expr=%q, pos=%d)", e.Code, e.Message, e.Expr, e.Pos)
	}
	return fmt.Sprintf("%s: %s (expr=%q)", e.Code, e.Message, e.Expr)
}

// IsMalformed reports whether err is a malformed expression error.
// Uses errors.As to handle wrapped errors.
func IsMalformed(err error) bool {
	var ee *EvalError
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeMalformed
	}
	return false
}

// IsNonFinite reports whether err is a non-finite result error.
// Uses errors.As to handle wrapped errors.
func IsNonFinite(err error) bool {
	var ee *EvalError
	if errors.As(err, &ee) {
		return ee.Code == ErrCodeNonFinite
	}
	return false
}

func newMalformed(expr string, pos int, format string, args ...any) *EvalError {
	return &EvalError{
		Code:    ErrCodeMalformed,
		Message: fmt.Sprintf(format, args...),
		Expr:    expr,
		Pos:     pos,
	}
}

func newNonFinite(expr string, v float64) *EvalError {
	return &EvalError{
		Code:    ErrCodeNonFinite,
		Message: fmt.Sprintf("result is %s", FormatNumber(v)),
		Expr:    expr,
		Pos:     -1,
	}
}
