package classify

import (
	"strings"

	"github.com/alorle/iptv-aggregator/internal/reference"
)

const (
	DefaultSatelliteMarker = "卫视"
	DefaultLogoBaseURL     = "https://live.fanmingming.cn/tv/"
	DefaultLogoSuffix      = ".png"
)

// Options configure the literal matching and presentation rules.
type Options struct {
	SatelliteMarker string
	LogoBaseURL     string
	LogoSuffix      string
	Labels          Labels
}

// DefaultOptions returns the stock marker, logo location and labels.
func DefaultOptions() Options {
	return Options{
		SatelliteMarker: DefaultSatelliteMarker,
		LogoBaseURL:     DefaultLogoBaseURL,
		LogoSuffix:      DefaultLogoSuffix,
		Labels:          DefaultLabels(),
	}
}

// Classifier assigns channel names to buckets using the reference lists
// loaded for a run. It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	national reference.Set
	regional reference.Regional
	regions  []string
	opts     Options
}

// NewClassifier creates a Classifier over the given reference data.
func NewClassifier(national reference.Set, regional reference.Regional, opts Options) *Classifier {
	return &Classifier{
		national: national,
		regional: regional,
		regions:  regional.Regions(),
		opts:     opts,
	}
}

// Classify returns the single bucket for the raw channel name.
//
// Rules are tried in order and the first match wins:
//  1. national: the normalized name is in the national list
//  2. satellite: the raw name contains the satellite marker
//  3. regional: the first region (ascending) whose name occurs in the raw
//     name is chosen; the raw name must be listed for that region, otherwise
//     the entry is Other and no further region is tried
//  4. other
func (c *Classifier) Classify(name string) Bucket {
	if c.national.Contains(Normalize(name)) {
		return National
	}

	if c.opts.SatelliteMarker != "" && strings.Contains(name, c.opts.SatelliteMarker) {
		return Satellite
	}

	for _, region := range c.regions {
		if !strings.Contains(name, region) {
			continue
		}
		if c.regional.Set(region).Contains(name) {
			return Regional(region)
		}
		return Other
	}

	return Other
}

// Label returns the group title written for b.
func (c *Classifier) Label(b Bucket) string {
	return c.opts.Labels.For(b)
}

// LogoURL returns the logo address for the raw channel name.
func (c *Classifier) LogoURL(name string) string {
	return c.opts.LogoBaseURL + name + c.opts.LogoSuffix
}
