package cell

import (
	"errors"
	"math"
	"testing"
)

func TestNewAllStatesPossible(t *testing.T) {
	c := New(4, 0.5)
	if c.Collapsed() {
		t.Error("new cell should not be collapsed")
	}
	if got, want := c.PopCount(), 4; got != want {
		t.Errorf("PopCount() = %d, want %d", got, want)
	}
	wantEntropy := math.Log2(4) + 0.5*jitterScale
	if math.Abs(c.Entropy()-wantEntropy) > 1e-12 {
		t.Errorf("Entropy() = %v, want %v", c.Entropy(), wantEntropy)
	}
}

func TestCollapseValid(t *testing.T) {
	c := New(3, 0)
	if err := c.Collapse(1); err != nil {
		t.Fatalf("Collapse(1): %v", err)
	}
	if !c.Collapsed() {
		t.Error("expected collapsed")
	}
	if got := c.CollapsedState(); got != 1 {
		t.Errorf("CollapsedState() = %d, want 1", got)
	}
	if got := c.Entropy(); got != 0 {
		t.Errorf("Entropy() after collapse = %v, want 0", got)
	}
}

func TestCollapseInvalid(t *testing.T) {
	c := New(3, 0)
	c.Constrain(func(s int) bool { return s != 1 })

	err := c.Collapse(1)
	var invalid *ErrInvalidCollapse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidCollapse, got %v", err)
	}
}

func TestConstrainRemovesAndShrinksEntropy(t *testing.T) {
	c := New(4, 0)
	changed := c.Constrain(func(s int) bool { return s < 2 })
	if !changed {
		t.Error("expected Constrain to report a change")
	}
	if got, want := c.PopCount(), 2; got != want {
		t.Errorf("PopCount() = %d, want %d", got, want)
	}
	wantEntropy := math.Log2(2)
	if math.Abs(c.Entropy()-wantEntropy) > 1e-9 {
		t.Errorf("Entropy() = %v, want %v", c.Entropy(), wantEntropy)
	}
}

func TestConstrainNoChange(t *testing.T) {
	c := New(2, 0)
	if changed := c.Constrain(func(int) bool { return true }); changed {
		t.Error("expected no change when predicate keeps everything")
	}
}

func TestConstrainToSingleStateCollapses(t *testing.T) {
	c := New(3, 0)
	c.ConstrainToStates(map[int]bool{2: true})
	if !c.Collapsed() {
		t.Error("expected cell to auto-collapse when exactly one state remains")
	}
	if got := c.CollapsedState(); got != 2 {
		t.Errorf("CollapsedState() = %d, want 2", got)
	}
}

func TestConstrainToEmptyIsContradiction(t *testing.T) {
	c := New(3, 0)
	c.ConstrainToStates(map[int]bool{})
	if c.PopCount() != 0 {
		t.Errorf("PopCount() = %d, want 0", c.PopCount())
	}
	if c.Collapsed() {
		t.Error("a zero-state cell must not report collapsed")
	}
}

func TestPossibleStatesSorted(t *testing.T) {
	c := New(5, 0)
	c.Constrain(func(s int) bool { return s == 0 || s == 3 })
	got := c.PossibleStates()
	want := []int{0, 3}
	if len(got) != len(want) {
		t.Fatalf("PossibleStates() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("PossibleStates() = %v, want %v", got, want)
		}
	}
}

func TestManyStatesAcrossWordBoundary(t *testing.T) {
	c := New(130, 0)
	if got := c.PopCount(); got != 130 {
		t.Fatalf("PopCount() = %d, want 130", got)
	}
	c.Constrain(func(s int) bool { return s != 64 && s != 127 })
	if c.PopCount() != 128 {
		t.Fatalf("PopCount() = %d, want 128", c.PopCount())
	}
	for _, s := range c.PossibleStates() {
		if s == 64 || s == 127 {
			t.Errorf("state %d should have been removed", s)
		}
	}
}
