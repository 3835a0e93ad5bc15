package simulator

// ComponentSet is a set of component IDs that remembers insertion order.
// The zero value and a nil *ComponentSet are both empty sets.
type ComponentSet struct {
	order   []string
	members map[string]struct{}
}

// NewComponentSet returns a set holding ids, duplicates dropped.
func NewComponentSet(ids ...string) *ComponentSet {
	s := &ComponentSet{members: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id and reports whether it was new.
func (s *ComponentSet) Add(id string) bool {
	if s.members == nil {
		s.members = make(map[string]struct{})
	}
	if _, ok := s.members[id]; ok {
		return false
	}
	s.members[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

// Contains reports whether id is in the set.
func (s *ComponentSet) Contains(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.members[id]
	return ok
}

// Len returns the number of IDs in the set.
func (s *ComponentSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// IDs returns the members in insertion order.
func (s *ComponentSet) IDs() []string {
	if s == nil {
		return []string{}
	}
	return append([]string{}, s.order...)
}
