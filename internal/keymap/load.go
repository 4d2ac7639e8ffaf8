package keymap

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// LoadError describes a problem in a keymap file.
type LoadError struct {
	Field   string    // CUE path of the offending field
	Message string    // human-readable description
	Pos     token.Pos // source position, if known
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// LoadFile reads a CUE keymap file and returns the default bindings
// overlaid with the file's bindings.
func LoadFile(path string) (*Keymap, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keymap: %w", err)
	}
	return Load(path, src)
}

// Load compiles CUE source and applies its bindings over Default().
// filename is used in error positions only.
func Load(filename string, src []byte) (*Keymap, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	bindings := v.LookupPath(cue.ParsePath("bindings"))
	if !bindings.Exists() {
		return nil, &LoadError{
			Field:   "bindings",
			Message: "bindings is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := bindings.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	k := Default()
	for iter.Next() {
		key := iter.Selector().Unquoted()
		action, err := iter.Value().String()
		if err != nil {
			return nil, &LoadError{
				Field:   "bindings." + key,
				Message: "action must be a string",
				Pos:     iter.Value().Pos(),
			}
		}
		if err := k.Bind(key, action); err != nil {
			return nil, &LoadError{
				Field:   "bindings." + key,
				Message: err.Error(),
				Pos:     iter.Value().Pos(),
			}
		}
	}
	return k, nil
}

// formatCUEError converts a CUE error into a LoadError carrying the first
// reported position.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	positions := errors.Positions(first)
	if len(positions) > 0 {
		return &LoadError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return &LoadError{Field: "cue", Message: first.Error()}
}
