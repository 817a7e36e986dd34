package classify

// Kind identifies one of the four category groups.
type Kind int

const (
	KindNational Kind = iota
	KindSatellite
	KindRegional
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNational:
		return "national"
	case KindSatellite:
		return "satellite"
	case KindRegional:
		return "regional"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// Bucket is the category an entry is assigned to.
// Region is set only for KindRegional.
type Bucket struct {
	Kind   Kind
	Region string
}

var (
	National  = Bucket{Kind: KindNational}
	Satellite = Bucket{Kind: KindSatellite}
	Other     = Bucket{Kind: KindOther}
)

// Regional returns the bucket for the named region.
func Regional(region string) Bucket {
	return Bucket{Kind: KindRegional, Region: region}
}

// Labels are the group titles written for the fixed buckets.
// Regional buckets are labelled with their region name.
type Labels struct {
	National  string
	Satellite string
	Other     string
}

// DefaultLabels returns the stock group titles.
func DefaultLabels() Labels {
	return Labels{
		National:  "央视频道",
		Satellite: "卫视频道",
		Other:     "其他频道",
	}
}

// For returns the display label of b.
func (l Labels) For(b Bucket) string {
	switch b.Kind {
	case KindNational:
		return l.National
	case KindSatellite:
		return l.Satellite
	case KindRegional:
		return b.Region
	default:
		return l.Other
	}
}
