package playlist

import (
	"cmp"
	"maps"
	"slices"

	"github.com/alorle/iptv-aggregator/internal/classify"
)

// Aggregator collects classified entries and produces the final ordering:
// national (arrival order), satellite, regional groups by region name, other.
// Every group except national is stably sorted by channel name.
type Aggregator struct {
	national  []Entry
	satellite []Entry
	regional  map[string][]Entry
	other     []Entry
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{regional: make(map[string][]Entry)}
}

// Add appends e to the group for b.
func (a *Aggregator) Add(b classify.Bucket, e Entry) {
	switch b.Kind {
	case classify.KindNational:
		a.national = append(a.national, e)
	case classify.KindSatellite:
		a.satellite = append(a.satellite, e)
	case classify.KindRegional:
		a.regional[b.Region] = append(a.regional[b.Region], e)
	default:
		a.other = append(a.other, e)
	}
}

// Len returns the number of entries added so far.
func (a *Aggregator) Len() int {
	n := len(a.national) + len(a.satellite) + len(a.other)
	for _, group := range a.regional {
		n += len(group)
	}
	return n
}

// Entries returns all entries in playlist order. The Aggregator is not modified.
func (a *Aggregator) Entries() []Entry {
	out := make([]Entry, 0, a.Len())
	out = append(out, a.national...)
	out = append(out, sortedByChannel(a.satellite)...)
	for _, region := range slices.Sorted(maps.Keys(a.regional)) {
		out = append(out, sortedByChannel(a.regional[region])...)
	}
	out = append(out, sortedByChannel(a.other)...)
	return out
}

func sortedByChannel(entries []Entry) []Entry {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(x, y Entry) int {
		return cmp.Compare(x.Channel, y.Channel)
	})
	return sorted
}
