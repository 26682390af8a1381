package sketch

// Entry is a committed primitive together with its display state.
type Entry struct {
	ID        ID        `json:"id"`
	Primitive Primitive `json:"primitive"`
	Selected  bool      `json:"selected"`
	// Hidden marks a primitive that has been extruded. It stays in the
	// store but is no longer drawn or hit-tested.
	Hidden bool `json:"hidden"`
}

// Store holds the primitives of the current sketch in creation order.
// At most one entry carries the selected flag. A Store is owned by a
// single session and is not safe for concurrent use.
type Store struct {
	entries []Entry
	index   map[ID]int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{index: make(map[ID]int)}
}

// Add commits p and returns its new ID.
func (s *Store) Add(p Primitive) ID {
	id := NewID()
	s.index[id] = len(s.entries)
	s.entries = append(s.entries, Entry{ID: id, Primitive: p})
	return id
}

// Clear removes every primitive and the selection.
func (s *Store) Clear() {
	s.entries = nil
	s.index = make(map[ID]int)
}

// Len returns the number of primitives, hidden ones included.
func (s *Store) Len() int {
	return len(s.entries)
}

// Entries returns a copy of all entries in creation order.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Visible returns the entries that have not been hidden.
func (s *Store) Visible() []Entry {
	var out []Entry
	for _, e := range s.entries {
		if !e.Hidden {
			out = append(out, e)
		}
	}
	return out
}

// Get returns the entry with the given ID.
func (s *Store) Get(id ID) (Entry, bool) {
	i, ok := s.index[id]
	if !ok {
		return Entry{}, false
	}
	return s.entries[i], true
}

// Select makes id the only selected entry. Every other selected flag is
// cleared first, even when id is unknown or hidden, in which case nothing
// ends up selected and Select returns false.
func (s *Store) Select(id ID) bool {
	s.ClearSelection()
	i, ok := s.index[id]
	if !ok || s.entries[i].Hidden {
		return false
	}
	s.entries[i].Selected = true
	return true
}

// ClearSelection removes the selected flag from every entry.
func (s *Store) ClearSelection() {
	for i := range s.entries {
		s.entries[i].Selected = false
	}
}

// Selected returns every entry carrying the selected flag. The store
// keeps this to zero or one entry.
func (s *Store) Selected() []Entry {
	var out []Entry
	for _, e := range s.entries {
		if e.Selected {
			out = append(out, e)
		}
	}
	return out
}

// SelectedID returns the ID of the selected entry, if any.
func (s *Store) SelectedID() (ID, bool) {
	for _, e := range s.entries {
		if e.Selected {
			return e.ID, true
		}
	}
	return ZeroID, false
}

// Hide retires the entry: it keeps its data but drops its selection and
// is skipped by Visible and by hit-testing.
func (s *Store) Hide(id ID) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.entries[i].Hidden = true
	s.entries[i].Selected = false
	return true
}
