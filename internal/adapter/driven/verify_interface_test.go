package driven

import (
	port "github.com/alorle/iptv-aggregator/internal/port/driven"
)

// Compile-time check that SourceHTTPFetcher implements SourceFetcher interface
var _ port.SourceFetcher = (*SourceHTTPFetcher)(nil)

// Compile-time check that SourceCacheBoltDB implements SourceCache interface
var _ port.SourceCache = (*SourceCacheBoltDB)(nil)

// Compile-time check that ReferenceFileLoader implements ReferenceLoader interface
var _ port.ReferenceLoader = (*ReferenceFileLoader)(nil)

// Compile-time check that StreamHTTPChecker implements StreamChecker interface
var _ port.StreamChecker = (*StreamHTTPChecker)(nil)

// Compile-time check that PlaylistFileWriter implements PlaylistWriter interface
var _ port.PlaylistWriter = (*PlaylistFileWriter)(nil)
