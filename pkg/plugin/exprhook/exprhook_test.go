package exprhook

import (
	"testing"

	"github.com/hollowforge/wfcmap/pkg/plugin"
	"github.com/hollowforge/wfcmap/pkg/tileset"
)

func tiles() []tileset.TileDefinition {
	return []tileset.TileDefinition{
		{ID: "grass", Category: "ground"},
		{ID: "water", Category: "liquid"},
		{ID: "rock", Category: "ground"},
	}
}

func TestHookFiltersByCategory(t *testing.T) {
	h := NewHook(tiles(), `Category == "ground"`)
	ctx := plugin.NewContext(1, 1)

	got := h.OnBeforeCollapse(0, 0, []int{0, 1, 2}, ctx)
	want := []int{0, 2}
	if len(got) != len(want) {
		t.Fatalf("OnBeforeCollapse() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("OnBeforeCollapse() = %v, want %v", got, want)
		}
	}
}

func TestHookEmptyKeepIsNoop(t *testing.T) {
	h := NewHook(tiles(), "")
	ctx := plugin.NewContext(1, 1)
	in := []int{0, 1, 2}
	got := h.OnBeforeCollapse(0, 0, in, ctx)
	if len(got) != len(in) {
		t.Fatalf("expected passthrough, got %v", got)
	}
}

func TestHookBadExpressionFailsOpen(t *testing.T) {
	h := NewHook(tiles(), "this is not valid expr (((")
	ctx := plugin.NewContext(1, 1)
	in := []int{0, 1, 2}
	got := h.OnBeforeCollapse(0, 0, in, ctx)
	if len(got) != len(in) {
		t.Fatalf("expected fail-open passthrough, got %v", got)
	}
}

func TestHookUsesCoordinates(t *testing.T) {
	h := NewHook(tiles(), `X == 0 && Y == 0`)
	ctx := plugin.NewContext(1, 1)

	gotOrigin := h.OnBeforeCollapse(0, 0, []int{0, 1, 2}, ctx)
	if len(gotOrigin) != 3 {
		t.Fatalf("at origin expected all 3 kept, got %v", gotOrigin)
	}

	gotElsewhere := h.OnBeforeCollapse(1, 1, []int{0, 1, 2}, ctx)
	if len(gotElsewhere) != 0 {
		t.Fatalf("away from origin expected none kept, got %v", gotElsewhere)
	}
}
