package engine

import (
	"fmt"
	"strings"
)

// Operators is the fixed operator set, in keypad order.
const Operators = "+-*/"

// IsOperator reports whether c is one of + - * /.
func IsOperator(c byte) bool {
	return c == '+' || c == '-' || c == '*' || c == '/'
}

// Op names an engine operation.
type Op string

const (
	OpReset    Op = "reset"
	OpDigit    Op = "digit"
	OpOperator Op = "operator"
	OpDecimal  Op = "decimal"
	OpNegate   Op = "negate"
	OpPercent  Op = "percent"
	OpDelete   Op = "delete"
	OpEvaluate Op = "evaluate"
)

// Command is one keypad command as a value. Arg carries the digit or
// operator byte for OpDigit and OpOperator and is zero otherwise.
//
// Commands are what keymaps produce and what tapes record.
type Command struct {
	Op  Op
	Arg byte
}

// CmdDigit returns the command appending digit d.
func CmdDigit(d byte) Command { return Command{Op: OpDigit, Arg: d} }

// CmdOperator returns the command appending operator o.
func CmdOperator(o byte) Command { return Command{Op: OpOperator, Arg: o} }

// Argument-free commands.
var (
	CmdReset    = Command{Op: OpReset}
	CmdDecimal  = Command{Op: OpDecimal}
	CmdNegate   = Command{Op: OpNegate}
	CmdPercent  = Command{Op: OpPercent}
	CmdDelete   = Command{Op: OpDelete}
	CmdEvaluate = Command{Op: OpEvaluate}
)

// String returns the stable text form: "digit(7)", "operator(*)", "percent".
func (c Command) String() string {
	switch c.Op {
	case OpDigit, OpOperator:
		return fmt.Sprintf("%s(%c)", c.Op, c.Arg)
	default:
		return string(c.Op)
	}
}

// Validate checks that the command's argument fits its op.
func (c Command) Validate() error {
	switch c.Op {
	case OpDigit:
		if !isDigit(c.Arg) {
			return fmt.Errorf("%w: %q", ErrInvalidDigit, c.Arg)
		}
	case OpOperator:
		if !IsOperator(c.Arg) {
			return fmt.Errorf("%w: %q", ErrInvalidOperator, c.Arg)
		}
	case OpReset, OpDecimal, OpNegate, OpPercent, OpDelete, OpEvaluate:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, string(c.Op))
	}
	return nil
}

// ParseCommand parses the String form of a Command.
func ParseCommand(s string) (Command, error) {
	s = strings.TrimSpace(s)
	name, rest, hasArg := strings.Cut(s, "(")
	var c Command
	c.Op = Op(name)
	if hasArg {
		if len(rest) != 2 || rest[1] != ')' {
			return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, s)
		}
		c.Arg = rest[0]
	}
	if (c.Op == OpDigit || c.Op == OpOperator) != hasArg {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, s)
	}
	if err := c.Validate(); err != nil {
		return Command{}, err
	}
	return c, nil
}

// MarshalText encodes c in its String form, so Commands appear as
// "digit(7)" in JSON and YAML.
func (c Command) MarshalText() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return []byte(c.String()), nil
}

// UnmarshalText parses the String form.
func (c *Command) UnmarshalText(text []byte) error {
	parsed, err := ParseCommand(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
