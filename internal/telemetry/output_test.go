package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOutputWritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	out, err := NewOutput(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := out.Write(GenerationStats{Generation: 0, Population: 2, Density: 0.5}); err != nil {
		t.Fatal(err)
	}
	if err := out.Write(GenerationStats{Generation: 1, Population: 1, Density: 0.25, Deaths: 1}); err != nil {
		t.Fatal(err)
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "generations.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	want := []string{
		"generation,population,density,births,deaths",
		"0,2,0.5,0,0",
		"1,1,0.25,0,1",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines: %q", len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestNilOutput(t *testing.T) {
	out, err := NewOutput("")
	if err != nil || out != nil {
		t.Fatalf("NewOutput(\"\") = %v, %v", out, err)
	}
	if err := out.Write(GenerationStats{}); err != nil {
		t.Fatal(err)
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}
}
