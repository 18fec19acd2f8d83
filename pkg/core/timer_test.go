package core

import (
	"testing"
	"time"
)

func TestFixedStepAccumulates(t *testing.T) {
	clock := time.Unix(100, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return clock }

	if !fs.ShouldStep() {
		t.Fatal("first ShouldStep should fire")
	}
	if fs.ShouldStep() {
		t.Fatal("ShouldStep fired without time passing")
	}
	clock = clock.Add(50 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("ShouldStep fired after half a tick")
	}
	clock = clock.Add(60 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("ShouldStep did not fire after a full tick")
	}
}

func TestFixedStepDefaultsTPS(t *testing.T) {
	fs := NewFixedStep(0)
	if fs.Step() != time.Second/60 {
		t.Fatalf("step = %v, want 1/60s", fs.Step())
	}
}
