package reference

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Set is an immutable set of canonical channel names.
// The zero value is an empty set.
type Set struct {
	names map[string]struct{}
}

// NewSet builds a Set from names. Blank names are ignored.
func NewSet(names ...string) Set {
	s := Set{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		s.names[n] = struct{}{}
	}
	return s
}

// ParseSet reads one name per line from r, skipping blank lines.
func ParseSet(r io.Reader) (Set, error) {
	var names []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		names = append(names, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return Set{}, fmt.Errorf("reading reference list: %w", err)
	}
	return NewSet(names...), nil
}

// Contains reports whether name is in the set. The lookup is exact.
func (s Set) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Len returns the number of names in the set.
func (s Set) Len() int { return len(s.names) }

// Union returns a new Set holding the names of s and other.
func (s Set) Union(other Set) Set {
	out := Set{names: make(map[string]struct{}, len(s.names)+len(other.names))}
	for n := range s.names {
		out.names[n] = struct{}{}
	}
	for n := range other.names {
		out.names[n] = struct{}{}
	}
	return out
}

// Regional maps region names to their reference sets.
// Keys are kept in ascending order.
type Regional struct {
	sets map[string]Set
	keys []string
}

// NewRegional copies sets into a Regional. Empty region names are dropped.
func NewRegional(sets map[string]Set) Regional {
	r := Regional{sets: make(map[string]Set, len(sets))}
	for name, set := range sets {
		if name == "" {
			continue
		}
		r.sets[name] = set
		r.keys = append(r.keys, name)
	}
	slices.Sort(r.keys)
	return r
}

// Regions returns the region names in ascending order.
func (r Regional) Regions() []string {
	return slices.Clone(r.keys)
}

// Set returns the reference set for region; the empty set if unknown.
func (r Regional) Set(region string) Set {
	return r.sets[region]
}

// Len returns the number of regions.
func (r Regional) Len() int { return len(r.keys) }
