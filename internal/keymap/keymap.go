package keymap

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/tally/internal/engine"
)

// ErrUnknownAction is returned when an action name does not name a command.
var ErrUnknownAction = errors.New("unknown action")

// Applier receives commands. *engine.Engine and *engine.Guarded satisfy it.
type Applier interface {
	Apply(engine.Command) error
}

// Keymap maps normalized key labels to commands.
type Keymap struct {
	bindings map[string]engine.Command
}

// New returns an empty keymap.
func New() *Keymap {
	return &Keymap{bindings: make(map[string]engine.Command)}
}

// Default returns the standard calculator bindings.
func Default() *Keymap {
	k := New()
	for d := byte('0'); d <= '9'; d++ {
		k.bindings[string(d)] = engine.CmdDigit(d)
	}
	for _, op := range []byte(engine.Operators) {
		k.bindings[string(op)] = engine.CmdOperator(op)
	}

	defaults := map[string]engine.Command{
		// buttons
		"AC":  engine.CmdReset,
		"DEL": engine.CmdDelete,
		"%":   engine.CmdPercent,
		"±":   engine.CmdNegate,
		"=":   engine.CmdEvaluate,
		".":   engine.CmdDecimal,

		// keyboard
		"Enter":     engine.CmdEvaluate,
		"Backspace": engine.CmdDelete,
		"Escape":    engine.CmdReset,

		// keypad glyphs without a compatibility decomposition
		"×": engine.CmdOperator('*'),
		"÷": engine.CmdOperator('/'),
		"−": engine.CmdOperator('-'),
	}
	for key, c := range defaults {
		k.bindings[key] = c
	}
	return k
}

// Normalize returns the lookup form of a key label.
func Normalize(key string) string {
	return norm.NFKC.String(strings.TrimSpace(key))
}

// Lookup returns the command bound to key.
func (k *Keymap) Lookup(key string) (engine.Command, bool) {
	c, ok := k.bindings[Normalize(key)]
	return c, ok
}

// Bind binds key to the command named by action.
func (k *Keymap) Bind(key, action string) error {
	nk := Normalize(key)
	if nk == "" {
		return fmt.Errorf("bind %q: empty key", key)
	}
	c, err := ParseAction(action)
	if err != nil {
		return fmt.Errorf("bind %q: %w", key, err)
	}
	k.bindings[nk] = c
	return nil
}

// Keys returns the bound key labels in sorted order.
func (k *Keymap) Keys() []string {
	keys := make([]string, 0, len(k.bindings))
	for key := range k.bindings {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Press looks up key and applies its command to a. Unbound keys are
// ignored: handled is false and err is nil.
func (k *Keymap) Press(a Applier, key string) (handled bool, err error) {
	c, ok := k.Lookup(key)
	if !ok {
		return false, nil
	}
	if err := a.Apply(c); err != nil {
		return true, fmt.Errorf("key %q: %w", key, err)
	}
	return true, nil
}

// actionNames are the names accepted by ParseAction besides single digits,
// operators and command strings.
var actionNames = map[string]engine.Command{
	"reset":    engine.CmdReset,
	"clear":    engine.CmdReset,
	"delete":   engine.CmdDelete,
	"percent":  engine.CmdPercent,
	"negate":   engine.CmdNegate,
	"evaluate": engine.CmdEvaluate,
	"decimal":  engine.CmdDecimal,
}

// ParseAction resolves an action name: one of reset, clear, delete, percent,
// negate, evaluate, decimal; a single digit or operator; or a command in its
// String form such as "digit(7)".
func ParseAction(action string) (engine.Command, error) {
	a := strings.TrimSpace(action)
	if c, ok := actionNames[strings.ToLower(a)]; ok {
		return c, nil
	}
	if len(a) == 1 {
		switch {
		case a[0] >= '0' && a[0] <= '9':
			return engine.CmdDigit(a[0]), nil
		case engine.IsOperator(a[0]):
			return engine.CmdOperator(a[0]), nil
		case a[0] == '.':
			return engine.CmdDecimal, nil
		}
	}
	c, err := engine.ParseCommand(a)
	if err != nil {
		return engine.Command{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	return c, nil
}
