package m3u

import (
	"io"
	"strconv"
	"strings"
)

// Channel is a single #EXTINF entry followed by its stream URI.
type Channel struct {
	Title    string
	URI      string
	Duration float64
	TVGTags  *TVGTags
}

// lineBreaks are flattened so every entry stays on exactly two lines.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

func (c *Channel) encode(w io.Writer) error {
	var b strings.Builder
	b.WriteString("#EXTINF:")
	b.WriteString(strconv.FormatFloat(c.Duration, 'f', 0, 64))

	if c.TVGTags != nil {
		b.WriteByte(' ')
		if err := c.TVGTags.encode(&b); err != nil {
			return err
		}
	}

	b.WriteByte(',')
	b.WriteString(lineBreaks.Replace(c.Title))
	b.WriteByte('\n')
	b.WriteString(lineBreaks.Replace(c.URI))
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}
