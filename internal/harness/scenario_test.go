package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", "percent_of_fifty.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "percent_of_fifty", s.Name)
	assert.Equal(t, "Percent divides the trailing number by 100", s.Description)
	require.Len(t, s.Flow, 3)
	assert.Equal(t, "%", s.Flow[2].Press)
	assert.Equal(t, "0.5", s.Flow[2].Expect)
	require.NotNil(t, s.Expect)
	assert.Equal(t, "0.5", s.Expect.Display)
	require.NotNil(t, s.Expect.ResultShown)
	assert.False(t, *s.Expect.ResultShown)
	require.Len(t, s.Assertions, 1)
	assert.Equal(t, AssertTraceCount, s.Assertions[0].Type)
}

func TestLoadScenario_ResolvesKeymap(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", "custom_keymap.yaml"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("testdata", "scenarios", "letters.cue"), s.Keymap)
}

func TestLoadScenario_MissingKeymap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: s
description: d
keymap: nope.cue
flow:
  - press: "1"
`), 0644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keymap file not found")
}

func TestLoadScenario_FileNotFound(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read scenario file")
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "unknown field",
			yaml: `
name: s
description: d
flow:
  - press: "1"
assertion:
  - type: trace_count
`,
			wantErr: "field assertion not found",
		},
		{
			name:    "missing name",
			yaml:    "description: d\nflow:\n  - press: \"1\"\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			yaml:    "name: s\nflow:\n  - press: \"1\"\n",
			wantErr: "description is required",
		},
		{
			name:    "empty flow",
			yaml:    "name: s\ndescription: d\nflow: []\n",
			wantErr: "flow list is required",
		},
		{
			name:    "empty press",
			yaml:    "name: s\ndescription: d\nflow:\n  - expect: \"1\"\n",
			wantErr: "flow[0]: press is required",
		},
		{
			name:    "empty final expect",
			yaml:    "name: s\ndescription: d\nflow:\n  - press: \"1\"\nexpect: {}\n",
			wantErr: "expect: display or result_shown is required",
		},
		{
			name: "unknown assertion type",
			yaml: `
name: s
description: d
flow:
  - press: "1"
assertions:
  - type: final_state
`,
			wantErr: `unknown assertion type "final_state"`,
		},
		{
			name: "trace_order without commands",
			yaml: `
name: s
description: d
flow:
  - press: "1"
assertions:
  - type: trace_order
`,
			wantErr: "commands list is required",
		},
		{
			name: "trace_count without command",
			yaml: `
name: s
description: d
flow:
  - press: "1"
assertions:
  - type: trace_count
    count: 1
`,
			wantErr: "command is required for trace_count",
		},
		{
			name: "negative count",
			yaml: `
name: s
description: d
flow:
  - press: "1"
assertions:
  - type: trace_count
    command: evaluate
    count: -1
`,
			wantErr: "count must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
