package domain

import (
	"slices"
	"strings"
	"unicode"
)

// SkipList is a set of dependency keys excluded from resolution regardless of manifests.
type SkipList struct {
	keys map[InternedString]struct{}
}

// NewSkipList builds a skip list from the given names. Empty names are ignored.
func NewSkipList(names ...string) SkipList {
	s := SkipList{keys: make(map[InternedString]struct{}, len(names))}
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			s.keys[NewInternedString(n)] = struct{}{}
		}
	}
	return s
}

// ParseSkipList parses a whitespace or comma separated list of keys,
// the format used by rosdep's --skip-keys and Dockerfile build arguments.
func ParseSkipList(s string) SkipList {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	return NewSkipList(fields...)
}

// Union returns a skip list containing the keys of both lists.
func (s SkipList) Union(other SkipList) SkipList {
	out := SkipList{keys: make(map[InternedString]struct{}, s.Len()+other.Len())}
	for k := range s.keys {
		out.keys[k] = struct{}{}
	}
	for k := range other.keys {
		out.keys[k] = struct{}{}
	}
	return out
}

// Contains reports whether key is skipped.
func (s SkipList) Contains(key InternedString) bool {
	_, ok := s.keys[key]
	return ok
}

// Len returns the number of skipped keys.
func (s SkipList) Len() int {
	return len(s.keys)
}

// Sorted returns the skipped keys in lexical order.
func (s SkipList) Sorted() []string {
	out := make([]string, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k.String())
	}
	slices.Sort(out)
	return out
}
