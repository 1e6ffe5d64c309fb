package main

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunHelp - Per-command help
// ---------------------------------------------------------------------------

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args       []string
		wantStdout string
		wantStderr string
	}{
		{nil, "Commands:", ""},
		{[]string{"list"}, "--tag <tag>", ""},
		{[]string{"show"}, "Usage: mdblog show <slug>", ""},
		{[]string{"search"}, "Usage: mdblog search <query>", ""},
		{[]string{"check"}, "Exits 1 when any post fails", ""},
		{[]string{"completion"}, "Supported shells:", ""},
		{[]string{"nope"}, "", "Unknown command: nope"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv()
			runHelp(tt.args, env)

			if !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout should contain %q, got %q", tt.wantStdout, stdout.String())
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr should contain %q, got %q", tt.wantStderr, stderr.String())
			}
		})
	}

	t.Run("every command has help", func(t *testing.T) {
		t.Parallel()

		for _, cmd := range commands {
			env, _, stderr := newTestEnv()
			runHelp([]string{cmd}, env)
			if stderr.Len() != 0 {
				t.Errorf("help %s wrote to stderr: %q", cmd, stderr.String())
			}
		}
	})
}
