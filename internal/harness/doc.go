// Package harness runs scripted key sequences against the calculator engine
// and checks the displays they produce.
//
// A scenario is a YAML file naming a flow of key presses with optional
// per-press expectations, a final expectation, and trace assertions:
//
//	name: percent_of_fifty
//	description: "Percent divides the trailing number by 100"
//	flow:
//	  - press: "5"
//	  - press: "0"
//	  - press: "%"
//	    expect: "0.5"
//	expect:
//	  display: "0.5"
//	  result_shown: false
//	assertions:
//	  - type: trace_count
//	    command: percent
//	    count: 1
//
// # Execution
//
// Each Run gets a fresh engine, the default keymap (or the scenario's CUE
// keymap), and a private in-memory tape. Every press goes through the
// keymap and is recorded; the trace in the Result is read back from the
// tape, and the session is replayed to confirm it reproduces itself.
// Logs are discarded.
//
// # Golden files
//
// RunWithGolden compares the trace against testdata/golden/<name>.golden
// using goldie. Regenerate with:
//
//	go test ./internal/harness -update
package harness
