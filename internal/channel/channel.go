package channel

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrEmptyName = errors.New("channel name cannot be empty")
	ErrEmptyURL  = errors.New("channel url cannot be empty")
)

// Entry is a single (name, url) pair read from a source list.
// It is an immutable value object; the name is kept exactly as it appeared
// in the source (after surrounding whitespace is trimmed).
type Entry struct {
	name string
	url  string
}

// NewEntry creates a new Entry with the given name and url.
// Returns ErrEmptyName or ErrEmptyURL if either part is blank.
func NewEntry(name, url string) (Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Entry{}, ErrEmptyName
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return Entry{}, ErrEmptyURL
	}
	return Entry{name: name, url: url}, nil
}

// Name returns the raw channel label.
func (e Entry) Name() string {
	return e.name
}

// URL returns the stream address.
func (e Entry) URL() string {
	return e.url
}
