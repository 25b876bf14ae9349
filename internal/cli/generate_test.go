package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/basegen/pkg/errors"
	"github.com/matzehuels/basegen/pkg/pipeline"
)

func TestParseOverrides(t *testing.T) {
	overrides, err := parseOverrides([]string{"wall_taper=0.25", "ramp_width=10"})
	if err != nil {
		t.Fatalf("parseOverrides() error: %v", err)
	}
	if overrides["wall_taper"] != 0.25 {
		t.Errorf("wall_taper = %g, want 0.25", overrides["wall_taper"])
	}
	if overrides["ramp_width"] != 10 {
		t.Errorf("ramp_width = %g, want 10", overrides["ramp_width"])
	}
}

func TestParseOverridesEmpty(t *testing.T) {
	overrides, err := parseOverrides(nil)
	if err != nil {
		t.Fatalf("parseOverrides(nil) error: %v", err)
	}
	if overrides != nil {
		t.Errorf("parseOverrides(nil) = %v, want nil", overrides)
	}
}

func TestParseOverridesRejectsMalformed(t *testing.T) {
	tests := []string{"wall_taper", "wall_taper=abc"}
	for _, flag := range tests {
		_, err := parseOverrides([]string{flag})
		if !errors.Is(err, errors.ErrCodeInvalidOverride) {
			t.Errorf("parseOverrides(%q) error = %v, want INVALID_OVERRIDE", flag, err)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{pipeline.FormatOBJ}},
		{"json", []string{"json"}},
		{"obj,dot", []string{"obj", "dot"}},
	}
	for _, tt := range tests {
		got := parseFormats(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "base_pyramid_42")

	artifacts := map[string][]byte{
		"obj": []byte("o Exterior\n"),
		"mtl": []byte("newmtl Exterior\n"),
		"dot": []byte("graph Base {}\n"),
	}
	written, err := writeArtifacts(artifacts, output)
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}
	if len(written) != 3 {
		t.Fatalf("wrote %d files, want 3", len(written))
	}

	data, err := os.ReadFile(output + ".obj")
	if err != nil {
		t.Fatalf("read obj: %v", err)
	}
	if string(data) != "o Exterior\n" {
		t.Errorf("obj content = %q", data)
	}

	// The mtl lands next to the obj under the name the obj references.
	if _, err := os.Stat(filepath.Join(dir, "base.mtl")); err != nil {
		t.Errorf("base.mtl not written: %v", err)
	}
}

func TestWriteArtifactsBadPath(t *testing.T) {
	output := filepath.Join(t.TempDir(), "missing", "nested", "base")
	_, err := writeArtifacts(map[string][]byte{"obj": []byte("o X\n")}, output)
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("error = %v, want INVALID_PATH", err)
	}
}
