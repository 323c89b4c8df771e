package main

import (
	"testing"
)

// TestNewRootCmd verifies the command tree wiring.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("use is noticegen", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "noticegen" {
			t.Errorf("expected 'noticegen', got %q", cmd.Use)
		}
	})

	t.Run("has all subcommands", func(t *testing.T) {
		t.Parallel()
		want := map[string]bool{
			"generate": false,
			"compare":  false,
			"init":     false,
			"version":  false,
		}
		for _, sub := range cmd.Commands() {
			if _, ok := want[sub.Name()]; ok {
				want[sub.Name()] = true
			}
		}
		for name, found := range want {
			if !found {
				t.Errorf("expected subcommand %q to be registered", name)
			}
		}
	})

	t.Run("has persistent verbose flag", func(t *testing.T) {
		t.Parallel()
		if cmd.PersistentFlags().Lookup("verbose") == nil {
			t.Error("expected --verbose persistent flag")
		}
	})

	t.Run("errors are silenced for custom printing", func(t *testing.T) {
		t.Parallel()
		if !cmd.SilenceErrors || !cmd.SilenceUsage {
			t.Error("expected SilenceErrors and SilenceUsage so Execute controls output")
		}
	})
}
