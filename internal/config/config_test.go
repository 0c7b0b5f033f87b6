// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creachadair/jcursor"
	"github.com/creachadair/jcursor/internal/config"
	"github.com/google/go-cmp/cmp"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		input string
		want  *config.Config
	}{
		{"", config.Default()},
		{"# nothing\n", config.Default()},
		{"max_depth: 10\njwcc: true\n", &config.Config{MaxDepth: 10, JWCC: true, Output: "json"}},
		{"allow_comments: true\noutput: yaml\nindent: 4\n", &config.Config{
			AllowComments: true, Output: "yaml", Indent: 4,
		}},
	}
	for _, tc := range tests {
		got, err := config.Decode(strings.NewReader(tc.input))
		if err != nil {
			t.Errorf("Decode %q: unexpected error: %v", tc.input, err)
			continue
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Decode %q: (-want, +got)\n%s", tc.input, diff)
		}
	}
}

func TestDecode_errors(t *testing.T) {
	tests := []string{
		"bogus: 1\n",
		"max_depth: lots\n",
		"max_depth: -1\n",
		"output: xml\n",
		"indent: -2\n",
		"[1, 2]\n",
	}
	for _, input := range tests {
		if cfg, err := config.Decode(strings.NewReader(input)); err == nil {
			t.Errorf("Decode %q: got %+v, want error", input, cfg)
		} else {
			t.Logf("Decode %q: got expected error: %v", input, err)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jcq.yaml")
	if err := os.WriteFile(path, []byte("output: cbor\nmax_depth: 3\n"), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	want := &config.Config{Output: "cbor", MaxDepth: 3}

	t.Run("Path", func(t *testing.T) {
		t.Setenv(config.EnvVar, "")
		cfg, err := config.Load(path)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("Load: (-want, +got)\n%s", diff)
		}
	})
	t.Run("Env", func(t *testing.T) {
		t.Setenv(config.EnvVar, path)
		cfg, err := config.Load("")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("Load: (-want, +got)\n%s", diff)
		}
	})
	t.Run("Default", func(t *testing.T) {
		t.Setenv(config.EnvVar, "")
		cfg, err := config.Load("")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if diff := cmp.Diff(config.Default(), cfg); diff != "" {
			t.Errorf("Load: (-want, +got)\n%s", diff)
		}
	})
	t.Run("Missing", func(t *testing.T) {
		if cfg, err := config.Load(filepath.Join(dir, "nonesuch.yaml")); err == nil {
			t.Errorf("Load: got %+v, want error", cfg)
		}
	})
}

func TestIndexOptions(t *testing.T) {
	cfg := &config.Config{MaxDepth: 5, AllowComments: true, Output: "json"}
	want := &jcursor.Options{MaxDepth: 5, AllowComments: true}
	if diff := cmp.Diff(want, cfg.IndexOptions()); diff != "" {
		t.Errorf("IndexOptions: (-want, +got)\n%s", diff)
	}
}
