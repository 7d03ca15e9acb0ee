package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestParseCmd(t *testing.T) {
	out, err := run(t, "parse", ">compare", "nvda", "amd")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "cmd", got["kind"])
	assert.Equal(t, "compare", got["name"])
}

func TestScoreCmd(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr string
	}{
		{
			name: "weighted average",
			args: []string{"score", "-w", "growth=1", "-w", "moat=3", "-m", "growth=1", "-m", "moat=0"},
			want: "0.2500\n",
		},
		{
			name:    "malformed pair",
			args:    []string{"score", "-w", "growth"},
			wantErr: "expected key=value",
		},
		{
			name:    "non numeric value",
			args:    []string{"score", "-m", "growth=high"},
			wantErr: "growth=high",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestSvgCmd(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		out, err := run(t, "svg", "-t", "Chips <2026>", "-w", "growth=1", "-m", "growth=0.5")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "<svg"))
		assert.Contains(t, out, "Chips &lt;2026&gt;")
		assert.Contains(t, out, "growth")
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.svg")
		_, err := run(t, "svg", "-w", "growth=1", "-m", "growth=0.5", "-o", path)
		require.NoError(t, err)
		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(b), "</svg>")
	})
}
