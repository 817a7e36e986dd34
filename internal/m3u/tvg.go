package m3u

import (
	"io"
	"strings"
)

// TVGTags are the player attributes written inside an #EXTINF line.
type TVGTags struct {
	ID         string
	Name       string
	Logo       string
	GroupTitle string
}

// attrValue keeps tag values verbatim except for characters that would end
// the quoted attribute or the line.
var attrValue = strings.NewReplacer(`"`, `'`, "\r\n", " ", "\r", " ", "\n", " ")

func (t *TVGTags) encode(w io.Writer) error {
	var b strings.Builder
	for _, a := range []struct{ key, value string }{
		{"tvg-id", t.ID},
		{"tvg-name", t.Name},
		{"tvg-logo", t.Logo},
		{"group-title", t.GroupTitle},
	} {
		if a.value == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(a.key)
		b.WriteString(`="`)
		b.WriteString(attrValue.Replace(a.value))
		b.WriteByte('"')
	}

	_, err := io.WriteString(w, b.String())
	return err
}
