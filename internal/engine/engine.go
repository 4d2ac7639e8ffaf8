package engine

import (
	"fmt"
	"log/slog"
)

// ZeroDisplay is the buffer of a cleared engine.
const ZeroDisplay = "0"

// ErrorDisplay replaces the buffer when Evaluate fails.
const ErrorDisplay = "Error"

// Step is the observable outcome of one command.
type Step struct {
	Seq         int64
	Command     Command
	Display     string
	ResultShown bool
}

// Observer receives a Step after every command, including commands that
// leave the buffer unchanged. Observe runs synchronously inside the command;
// it must not call back into the engine.
type Observer interface {
	Observe(Step)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Step)

// Observe calls f(s).
func (f ObserverFunc) Observe(s Step) { f(s) }

// Engine holds the calculator buffer and the ResultShown flag.
//
// INVARIANTS:
//   - buf is never empty after any public method returns
//   - resultShown is true only directly after Evaluate, or after a sign or
//     percent rewrite of a shown result, or a decimal press on a shown
//     result that already has a point
type Engine struct {
	buf         string
	resultShown bool

	clock     *Clock
	observers []Observer
	logger    *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger used for evaluation diagnostics.
// Default: slog.Default().
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithObserver registers an observer. May be given more than once;
// observers are notified in registration order.
func WithObserver(o Observer) EngineOption {
	return func(e *Engine) {
		e.observers = append(e.observers, o)
	}
}

// WithClock sets the clock that stamps Steps. Used when resuming a
// recorded session so sequence numbers continue.
func WithClock(c *Clock) EngineOption {
	return func(e *Engine) {
		e.clock = c
	}
}

// New returns an engine showing "0" in the Editing state.
func New(opts ...EngineOption) *Engine {
	e := &Engine{
		buf:    ZeroDisplay,
		clock:  NewClock(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Display returns the current buffer.
func (e *Engine) Display() string {
	if e.buf == "" {
		return ZeroDisplay
	}
	return e.buf
}

// ResultShown reports whether the buffer is a finished result.
func (e *Engine) ResultShown() bool {
	return e.resultShown
}

// Seq returns the sequence number of the most recent Step.
func (e *Engine) Seq() int64 {
	return e.clock.Current()
}

// Apply runs c against the engine. Invalid commands are rejected before any
// state changes and produce no Step.
func (e *Engine) Apply(c Command) error {
	if err := c.Validate(); err != nil {
		return err
	}
	switch c.Op {
	case OpReset:
		e.Reset()
	case OpDigit:
		return e.AppendDigit(c.Arg)
	case OpOperator:
		return e.AppendOperator(c.Arg)
	case OpDecimal:
		e.AppendDecimal()
	case OpNegate:
		e.ToggleSign()
	case OpPercent:
		e.Percent()
	case OpDelete:
		e.DeleteLast()
	case OpEvaluate:
		e.Evaluate()
	}
	return nil
}

// Reset clears the buffer to "0" and returns to Editing.
func (e *Engine) Reset() {
	e.reset()
	e.emit(CmdReset)
}

func (e *Engine) reset() {
	e.buf = ZeroDisplay
	e.resultShown = false
}

// AppendDigit appends d ('0'..'9'). A lone "0" is replaced rather than
// extended, and a digit typed over a shown result starts a new expression.
func (e *Engine) AppendDigit(d byte) error {
	if !isDigit(d) {
		return fmt.Errorf("%w: %q", ErrInvalidDigit, d)
	}
	switch {
	case e.Display() == ZeroDisplay, e.resultShown:
		e.buf = string(d)
		e.resultShown = false
	default:
		e.buf += string(d)
	}
	e.emit(CmdDigit(d))
	return nil
}

// AppendOperator appends op, one of + - * /.
//
// When the buffer already ends in an operator, op replaces it, except that a
// '-' after a different operator is appended as a unary minus ("5*" -> "5*-").
// An operator typed over a shown result continues from that result.
func (e *Engine) AppendOperator(op byte) error {
	if !IsOperator(op) {
		return fmt.Errorf("%w: %q", ErrInvalidOperator, op)
	}
	val := e.Display()
	last := val[len(val)-1]
	switch {
	case IsOperator(last) && op == '-' && last != '-':
		e.buf = val + string(op)
	case IsOperator(last):
		e.buf = val[:len(val)-1] + string(op)
	default:
		e.buf = val + string(op)
	}
	e.resultShown = false
	e.emit(CmdOperator(op))
	return nil
}

// AppendDecimal adds a decimal point to the trailing number, starting a
// "0." number when there is none. A number that already has a point is
// left alone. Over a shown result the point starts a fresh "0.".
func (e *Engine) AppendDecimal() {
	defer e.emit(CmdDecimal)

	val := e.Display()
	tok, ok := LastNumber(val)
	switch {
	case !ok && e.resultShown:
		// "Error" has no number to extend
		e.buf = "0."
		e.resultShown = false
	case !ok:
		e.buf = val + "0."
		e.resultShown = false
	case tok.HasDecimal():
	case e.resultShown:
		e.buf = "0."
		e.resultShown = false
	default:
		e.buf = val + "."
	}
}

// ToggleSign negates the trailing number. With no trailing number the whole
// buffer's leading numeric value is negated instead; "0" and buffers with no
// numeric prefix ("Error") are unchanged.
func (e *Engine) ToggleSign() {
	defer e.emit(CmdNegate)

	val := e.Display()
	tok, ok := LastNumber(val)
	if !ok {
		if val == ZeroDisplay {
			return
		}
		if v, ok := leadingNumber(val); ok {
			e.buf = FormatNumber(-v)
		}
		return
	}
	e.buf = val[:tok.Start] + FormatNumber(-tok.Float())
}

// Percent divides the trailing number by 100. No-op without one.
func (e *Engine) Percent() {
	defer e.emit(CmdPercent)

	val := e.Display()
	tok, ok := LastNumber(val)
	if !ok {
		return
	}
	e.buf = val[:tok.Start] + FormatNumber(tok.Float()/100)
}

// DeleteLast removes the last character, resetting when one or none is left.
// Deleting from a shown result turns it back into an editable expression.
func (e *Engine) DeleteLast() {
	defer e.emit(CmdDelete)

	val := e.Display()
	if len(val) <= 1 {
		e.reset()
		return
	}
	e.buf = val[:len(val)-1]
	e.resultShown = false
}

// Evaluate replaces the buffer with the value of its expression, ignoring
// trailing operators. Malformed expressions and non-finite results show
// "Error". Either way the engine ends in ResultShown, except when nothing
// but operators remained: then the buffer becomes "0" and the flag is left
// as it was. Negative infinity is non-finite too and also shows "Error".
func (e *Engine) Evaluate() {
	defer e.emit(CmdEvaluate)

	expr := e.Display()
	for len(expr) > 0 && IsOperator(expr[len(expr)-1]) {
		expr = expr[:len(expr)-1]
	}
	if expr == "" {
		e.buf = ZeroDisplay
		return
	}

	v, err := Eval(expr)
	if err != nil {
		e.logger.Debug("evaluate failed", "expr", expr, "error", err)
		e.buf = ErrorDisplay
		e.resultShown = true
		return
	}
	e.buf = FormatNumber(v)
	e.resultShown = true
}

func (e *Engine) emit(c Command) {
	if len(e.observers) == 0 {
		e.clock.Next()
		return
	}
	s := Step{
		Seq:         e.clock.Next(),
		Command:     c,
		Display:     e.Display(),
		ResultShown: e.resultShown,
	}
	for _, o := range e.observers {
		o.Observe(s)
	}
}
