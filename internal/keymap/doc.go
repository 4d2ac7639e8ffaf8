// Package keymap translates key and button labels into engine commands.
//
// The default map covers the calculator's on-screen buttons ("AC", "DEL",
// "±", "=", ...) and the keyboard names a terminal or browser front-end
// reports ("Enter", "Backspace", "Escape"). Labels are normalized with
// Unicode NFKC before lookup, so full-width input such as "５" or "＋"
// resolves like its ASCII form.
//
// # Configuration
//
// Additional bindings are read from CUE files:
//
//	bindings: {
//		"c": "reset"
//		"x": "*"
//		"n": "negate"
//	}
//
// Each value is an action name (see ParseAction). File bindings are laid
// over the defaults; a binding may replace a default key.
package keymap
