package iam

import "sort"

// StringSet is an unordered set of names. The zero value is an empty set.
type StringSet struct {
	items map[string]struct{}
}

// NewStringSet returns a set holding the given names
func NewStringSet(names ...string) StringSet {
	s := StringSet{items: make(map[string]struct{}, len(names))}
	s.Add(names...)
	return s
}

// Add inserts names, absorbing duplicates
func (s *StringSet) Add(names ...string) {
	if s.items == nil {
		s.items = make(map[string]struct{}, len(names))
	}
	for _, name := range names {
		s.items[name] = struct{}{}
	}
}

// Has reports whether name is in the set
func (s StringSet) Has(name string) bool {
	_, ok := s.items[name]
	return ok
}

// Len returns the number of names
func (s StringSet) Len() int {
	return len(s.items)
}

// Items returns the names sorted ascending
func (s StringSet) Items() []string {
	out := make([]string, 0, len(s.items))
	for name := range s.items {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
