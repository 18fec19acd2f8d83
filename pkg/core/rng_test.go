package core

import (
	"slices"
	"testing"
)

func TestFillBinaryDeterministic(t *testing.T) {
	a := make([]uint8, 256)
	b := make([]uint8, 256)
	FillBinary(NewRNG(7).Source(), a)
	FillBinary(NewRNG(7).Source(), b)
	if !slices.Equal(a, b) {
		t.Fatal("same seed produced different cells")
	}
	for i, c := range a {
		if c > 1 {
			t.Fatalf("cell %d = %d, want 0 or 1", i, c)
		}
	}
}
