package classify

import "regexp"

var cctvNumber = regexp.MustCompile(`CCTV-?(\d+)`)

// Normalize folds the optional dash between the CCTV prefix and its channel
// number, so "CCTV-7" and "CCTV7" compare equal. Normalize(Normalize(s)) == Normalize(s).
func Normalize(name string) string {
	return cctvNumber.ReplaceAllString(name, "CCTV$1")
}
