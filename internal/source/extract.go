package source

import (
	"iter"
	"strings"

	"github.com/alorle/iptv-aggregator/internal/channel"
)

// PlaceholderName labels playlist URLs that have no preceding #EXTINF name.
const PlaceholderName = "Unknown"

const extinfPrefix = "#EXTINF:"

// Extract returns the entries found in content, in the order they appear.
// The sequence is lazy and can be ranged over any number of times.
// Lines that do not fit the grammar are skipped.
func Extract(content []byte, format Format) iter.Seq[channel.Entry] {
	text := string(content)
	if format == FormatPlaylist {
		return func(yield func(channel.Entry) bool) {
			extractPlaylist(text, yield)
		}
	}
	return func(yield func(channel.Entry) bool) {
		extractSimple(text, yield)
	}
}

// extractSimple handles "name,url" lines, splitting on the first comma only.
func extractSimple(text string, yield func(channel.Entry) bool) {
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		name, url, found := strings.Cut(line, ",")
		if !found {
			continue
		}
		entry, err := channel.NewEntry(name, url)
		if err != nil {
			continue
		}
		if !yield(entry) {
			return
		}
	}
}

// extractPlaylist pairs each http(s) line with the most recent #EXTINF name.
func extractPlaylist(text string, yield func(channel.Entry) bool) {
	name := PlaceholderName
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)

		if strings.HasPrefix(line, extinfPrefix) {
			name = extinfName(line)
			continue
		}

		if !strings.HasPrefix(line, "http://") && !strings.HasPrefix(line, "https://") {
			continue
		}

		entry, err := channel.NewEntry(name, line)
		if err != nil {
			continue
		}
		if !yield(entry) {
			return
		}
	}
}

// extinfName returns the display name after the first comma of an #EXTINF line,
// or PlaceholderName when there is none.
func extinfName(line string) string {
	_, name, found := strings.Cut(line, ",")
	name = strings.TrimSpace(name)
	if !found || name == "" {
		return PlaceholderName
	}
	return name
}
