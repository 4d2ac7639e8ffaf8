package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/tally/internal/engine"
	"github.com/roach88/tally/internal/keymap"
	"github.com/roach88/tally/internal/tape"
)

// calculator wires one engine to a keymap and, when a database is given,
// a tape recorder. The engine is only reached through its Guarded wrapper.
type calculator struct {
	engine   *engine.Guarded
	keymap   *keymap.Keymap
	store    *tape.Store
	recorder *tape.Recorder
	logger   *slog.Logger
}

// loadKeymap returns the default keymap, overlaid with the --keymap file
// when one is set.
func loadKeymap(opts *RootOptions) (*keymap.Keymap, error) {
	if opts.Keymap == "" {
		return keymap.Default(), nil
	}
	k, err := keymap.LoadFile(opts.Keymap)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load keymap", err)
	}
	return k, nil
}

// newCalculator builds a calculator. With a non-empty dbPath a new session
// labelled label is created and every Step is recorded to it.
func newCalculator(ctx context.Context, opts *RootOptions, dbPath, label string) (*calculator, error) {
	km, err := loadKeymap(opts)
	if err != nil {
		return nil, err
	}

	c := &calculator{keymap: km, logger: slog.Default()}
	eopts := []engine.EngineOption{engine.WithLogger(c.logger)}

	if dbPath != "" {
		st, err := tape.Open(dbPath)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to open database", err)
		}
		sess, err := st.CreateSession(ctx, label, 0)
		if err != nil {
			st.Close()
			return nil, WrapExitError(ExitCommandError, "failed to create session", err)
		}
		c.store = st
		c.recorder = tape.NewRecorder(ctx, st, sess.ID, c.logger)
		eopts = append(eopts, engine.WithObserver(c.recorder))
		c.logger.Debug("recording session", "db", dbPath, "session", sess.ID)
	}

	c.engine = engine.NewGuarded(engine.New(eopts...))
	return c, nil
}

// SessionID returns the recorded session, or "" when not recording.
func (c *calculator) SessionID() string {
	if c.recorder == nil {
		return ""
	}
	return c.recorder.SessionID()
}

// PressToken presses a key. A token that is not a bound key but is longer
// than one character is typed rune by rune, so "12+3=" works as one token.
// It returns the keys that were not bound.
func (c *calculator) PressToken(token string) ([]string, error) {
	if _, ok := c.keymap.Lookup(token); ok || len([]rune(token)) <= 1 {
		handled, err := c.press(token)
		if err != nil {
			return nil, err
		}
		if !handled {
			return []string{token}, nil
		}
		return nil, nil
	}

	var ignored []string
	for _, r := range token {
		key := string(r)
		handled, err := c.press(key)
		if err != nil {
			return ignored, err
		}
		if !handled {
			ignored = append(ignored, key)
		}
	}
	return ignored, nil
}

// PressLine presses every whitespace-separated token on line.
func (c *calculator) PressLine(line string) ([]string, error) {
	var ignored []string
	for _, token := range strings.Fields(line) {
		skipped, err := c.PressToken(token)
		ignored = append(ignored, skipped...)
		if err != nil {
			return ignored, err
		}
	}
	return ignored, nil
}

func (c *calculator) press(key string) (bool, error) {
	if c.recorder == nil {
		handled, err := c.keymap.Press(c.engine, key)
		c.logKey(key, handled)
		return handled, err
	}

	var handled bool
	err := c.recorder.Press(key, func() error {
		var err error
		handled, err = c.keymap.Press(c.engine, key)
		return err
	})
	if err != nil {
		return handled, fmt.Errorf("record key %q: %w", key, err)
	}
	c.logKey(key, handled)
	return handled, nil
}

func (c *calculator) logKey(key string, handled bool) {
	if !handled {
		c.logger.Debug("ignored unbound key", "key", key)
		return
	}
	display, shown := c.engine.Snapshot()
	c.logger.Debug("pressed", "key", key, "display", display, "result_shown", shown)
}

// State returns the current display as a PressResult.
func (c *calculator) State() PressResult {
	display, shown := c.engine.Snapshot()
	return PressResult{
		Display:     display,
		ResultShown: shown,
		SessionID:   c.SessionID(),
	}
}

// Close closes the tape, if any.
func (c *calculator) Close() error {
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}
