package source

import (
	"net/url"
	"strings"
)

// Format selects the grammar used to extract entries from a source.
type Format int

const (
	// FormatSimple is the line-delimited "name,url" grammar.
	FormatSimple Format = iota
	// FormatPlaylist is the #EXTINF metadata / URL line grammar.
	FormatPlaylist
)

func (f Format) String() string {
	switch f {
	case FormatSimple:
		return "simple"
	case FormatPlaylist:
		return "playlist"
	default:
		return "unknown"
	}
}

// FormatFromAddress infers the grammar from the address suffix.
// Addresses ending in .m3u or .m3u8 (query string ignored, any case) use the
// playlist grammar; everything else, .txt included, uses the simple grammar.
func FormatFromAddress(address string) Format {
	path := address
	if u, err := url.Parse(address); err == nil && u.Path != "" {
		path = u.Path
	}
	path = strings.ToLower(path)
	if strings.HasSuffix(path, ".m3u") || strings.HasSuffix(path, ".m3u8") {
		return FormatPlaylist
	}
	return FormatSimple
}
