// Package engine implements the tally expression engine.
//
// The engine owns a single text buffer holding the expression typed so far
// and a flag recording whether that buffer is a freshly evaluated result.
// Every keypad command (digit, operator, decimal point, sign toggle, percent,
// delete, clear, evaluate) is a synchronous transition of that pair.
//
// STATE MACHINE:
//
// The ResultShown flag splits the engine into two logical states:
//   - Editing: the buffer is an expression under construction
//   - ResultShown: the buffer is the output of Evaluate (a number or "Error")
//
// From ResultShown a digit or decimal point starts a fresh number, an
// operator continues the expression from the shown value, and sign/percent
// rewrite the shown value in place. Evaluate lands in ResultShown unless the
// buffer held nothing but operators; Reset and DeleteLast land in Editing.
//
// INVARIANTS:
//   - The buffer is never empty; its minimum content is "0"
//   - The buffer never starts with a redundant leading zero ("05")
//   - Sign toggle and percent only ever target the trailing number
//
// Evaluation uses a small recursive-descent parser over the four operators
// and numeric literals (see Eval). Malformed expressions and non-finite
// results are never surfaced to the caller: both display as "Error".
//
// An Engine is not safe for concurrent use. Wrap it in a Guarded when
// commands arrive from more than one goroutine.
package engine
