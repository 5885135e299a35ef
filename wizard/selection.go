package wizard

import "fmt"

// SelectionTracker is an ordered set of asset IDs with a maximum size.
// Selection order is independent of the order of the underlying result list:
// ids are appended as they are selected and keep their position until removed
// or replaced.
type SelectionTracker struct {
	max   int
	ids   map[string]struct{}
	order []string
}

// NewSelectionTracker creates a tracker that holds at most max ids.
func NewSelectionTracker(max int) *SelectionTracker {
	return &SelectionTracker{
		max: max,
		ids: make(map[string]struct{}),
	}
}

// Toggle sets the selection state of id. Selecting past the maximum is a
// silent no-op: saturation is a UX rule, not an error. Returns true if the
// selection changed.
func (s *SelectionTracker) Toggle(id string, desired bool) bool {
	defer s.mustBeConsistent()

	_, selected := s.ids[id]
	if desired {
		if selected {
			return false
		}
		if len(s.ids) >= s.max {
			return false
		}
		s.ids[id] = struct{}{}
		s.order = append(s.order, id)
		return true
	}

	if !selected {
		return false
	}
	delete(s.ids, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Replace swaps oldID for newID in place, keeping its position in the
// selection order. The swap is atomic from the caller's perspective: there is
// no intermediate state where the selection is smaller. Returns false if
// oldID is not selected or newID is already selected.
func (s *SelectionTracker) Replace(oldID, newID string) bool {
	defer s.mustBeConsistent()

	if _, ok := s.ids[oldID]; !ok {
		return false
	}
	if _, ok := s.ids[newID]; ok {
		return false
	}

	for i, existing := range s.order {
		if existing == oldID {
			s.order[i] = newID
			break
		}
	}
	delete(s.ids, oldID)
	s.ids[newID] = struct{}{}
	return true
}

// Has reports whether id is selected.
func (s *SelectionTracker) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Count returns the number of selected ids.
func (s *SelectionTracker) Count() int { return len(s.ids) }

// Max returns the maximum allowed selection size.
func (s *SelectionTracker) Max() int { return s.max }

// Selected returns the ids in selection order.
func (s *SelectionTracker) Selected() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// mustBeConsistent verifies the set and the order sequence describe the same
// selection. A violation is a bug in this type, not a caller error.
func (s *SelectionTracker) mustBeConsistent() {
	if len(s.ids) != len(s.order) {
		panic(fmt.Sprintf("selection tracker inconsistent: %d ids, %d ordered", len(s.ids), len(s.order)))
	}
	seen := make(map[string]struct{}, len(s.order))
	for _, id := range s.order {
		if _, dup := seen[id]; dup {
			panic(fmt.Sprintf("selection order contains duplicate id %q", id))
		}
		seen[id] = struct{}{}
		if _, ok := s.ids[id]; !ok {
			panic(fmt.Sprintf("selection order contains unselected id %q", id))
		}
	}
}
