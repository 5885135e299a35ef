package wizard

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"
)

func assertConsistent(t *testing.T, s *SelectionTracker) {
	t.Helper()

	ids := s.Selected()
	if len(ids) != s.Count() {
		t.Fatalf("order length %d does not match set size %d", len(ids), s.Count())
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			t.Fatalf("selection order contains duplicate %q", id)
		}
		seen[id] = struct{}{}
		if !s.Has(id) {
			t.Fatalf("ordered id %q is not in the selected set", id)
		}
	}
}

func TestSelectionInvariantUnderRandomToggles(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	s := NewSelectionTracker(3)

	ids := make([]string, 8)
	for i := range ids {
		ids[i] = fmt.Sprintf("asset-%d", i)
	}

	for i := 0; i < 500; i++ {
		s.Toggle(ids[rnd.Intn(len(ids))], rnd.Intn(2) == 0)
		assertConsistent(t, s)
		if s.Count() > s.Max() {
			t.Fatalf("selection grew past max: %d > %d", s.Count(), s.Max())
		}
	}
}

func TestToggleSelectsInOrder(t *testing.T) {
	s := NewSelectionTracker(3)
	s.Toggle("b", true)
	s.Toggle("a", true)
	s.Toggle("c", true)

	want := []string{"b", "a", "c"}
	if got := s.Selected(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected selection order %v, got %v", want, got)
	}
}

func TestToggleAtMaxIsNoOp(t *testing.T) {
	s := NewSelectionTracker(2)
	s.Toggle("a", true)
	s.Toggle("b", true)

	before := s.Selected()
	if changed := s.Toggle("c", true); changed {
		t.Fatal("expected saturation toggle to report no change")
	}
	if got := s.Selected(); !reflect.DeepEqual(got, before) {
		t.Fatalf("expected selection unchanged at max, got %v (was %v)", got, before)
	}
	if s.Has("c") {
		t.Fatal("asset selected past the maximum")
	}

	// Re-selecting an already selected id at max is also a no-op.
	if changed := s.Toggle("a", true); changed {
		t.Fatal("expected re-select of existing id to report no change")
	}
}

func TestDeselectPreservesRelativeOrder(t *testing.T) {
	s := NewSelectionTracker(4)
	for _, id := range []string{"a", "b", "c", "d"} {
		s.Toggle(id, true)
	}

	s.Toggle("b", false)
	assertConsistent(t, s)

	want := []string{"a", "c", "d"}
	if got := s.Selected(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected order %v after removal, got %v", want, got)
	}

	if changed := s.Toggle("b", false); changed {
		t.Fatal("expected deselect of unselected id to report no change")
	}
}

func TestReplaceKeepsPosition(t *testing.T) {
	s := NewSelectionTracker(3)
	for _, id := range []string{"a", "b", "c"} {
		s.Toggle(id, true)
	}

	if !s.Replace("b", "b2") {
		t.Fatal("expected replace to succeed")
	}
	assertConsistent(t, s)

	want := []string{"a", "b2", "c"}
	if got := s.Selected(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected order %v after replace, got %v", want, got)
	}
	if s.Has("b") {
		t.Fatal("old id still selected after replace")
	}
	if s.Count() != 3 {
		t.Fatalf("replace changed selection size: %d", s.Count())
	}
}

func TestReplaceRejectsBadArguments(t *testing.T) {
	s := NewSelectionTracker(2)
	s.Toggle("a", true)
	s.Toggle("b", true)

	if s.Replace("missing", "x") {
		t.Fatal("expected replace of unselected id to fail")
	}
	if s.Replace("a", "b") {
		t.Fatal("expected replace with already-selected id to fail")
	}
	want := []string{"a", "b"}
	if got := s.Selected(); !reflect.DeepEqual(got, want) {
		t.Fatalf("failed replace mutated selection: %v", got)
	}
}
