package source

import (
	"slices"
	"testing"

	"github.com/alorle/iptv-aggregator/internal/channel"
)

type pair struct {
	name string
	url  string
}

func collect(t *testing.T, content string, format Format) []pair {
	t.Helper()
	var out []pair
	for e := range Extract([]byte(content), format) {
		out = append(out, pair{name: e.Name(), url: e.URL()})
	}
	return out
}

func TestExtract_Simple(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []pair
	}{
		{
			name:    "skips lines without comma and empty name",
			content: "CCTV-1,http://a.test/1\nBadLineNoComma\n,http://x\n",
			want:    []pair{{"CCTV-1", "http://a.test/1"}},
		},
		{
			name:    "splits on first comma only",
			content: "News,http://a.test/s?x=1,2\n",
			want:    []pair{{"News", "http://a.test/s?x=1,2"}},
		},
		{
			name:    "blank and whitespace lines ignored",
			content: "\n   \n\tA,http://a\n\n",
			want:    []pair{{"A", "http://a"}},
		},
		{
			name:    "windows line endings",
			content: "A,http://a\r\nB,http://b\r\n",
			want:    []pair{{"A", "http://a"}, {"B", "http://b"}},
		},
		{
			name:    "empty url half skipped",
			content: "A,\nB,http://b",
			want:    []pair{{"B", "http://b"}},
		},
		{
			name:    "source order preserved",
			content: "Z,http://z\nA,http://a\nM,http://m\n",
			want:    []pair{{"Z", "http://z"}, {"A", "http://a"}, {"M", "http://m"}},
		},
		{
			name:    "empty content",
			content: "",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(t, tt.content, FormatSimple)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Extract() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtract_Playlist(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []pair
	}{
		{
			name: "pairs url with preceding metadata",
			content: "#EXTM3U\n" +
				"#EXTINF:-1 tvg-name=\"CCTV1\" group-title=\"央视\",CCTV-1\n" +
				"http://a.test/1\n" +
				"#EXTINF:-1,东方卫视\n" +
				"https://a.test/dragon\n",
			want: []pair{{"CCTV-1", "http://a.test/1"}, {"东方卫视", "https://a.test/dragon"}},
		},
		{
			name:    "url without metadata uses placeholder",
			content: "#EXTM3U\nhttp://a.test/orphan\n",
			want:    []pair{{PlaceholderName, "http://a.test/orphan"}},
		},
		{
			name:    "metadata without name falls back to placeholder",
			content: "#EXTINF:-1\nhttp://a.test/1\n#EXTINF:-1,   \nhttp://a.test/2\n",
			want:    []pair{{PlaceholderName, "http://a.test/1"}, {PlaceholderName, "http://a.test/2"}},
		},
		{
			name:    "name persists across consecutive urls",
			content: "#EXTINF:-1,Sports\nhttp://a.test/1\nhttp://b.test/1\n",
			want:    []pair{{"Sports", "http://a.test/1"}, {"Sports", "http://b.test/1"}},
		},
		{
			name:    "non-http lines ignored",
			content: "#EXTINF:-1,Ace\nacestream://abc\n#EXTVLCOPT:network-caching=1000\nrtmp://x\n",
			want:    nil,
		},
		{
			name:    "metadata alone emits nothing",
			content: "#EXTINF:-1,Lonely\n",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(t, tt.content, FormatPlaylist)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Extract() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtract_Restartable(t *testing.T) {
	seq := Extract([]byte("A,http://a\nB,http://b\n"), FormatSimple)

	first := slices.Collect(seq)
	second := slices.Collect(seq)

	if len(first) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(first))
	}
	if !slices.Equal(first, second) {
		t.Errorf("second pass = %v, want %v", second, first)
	}
}

func TestExtract_StopsEarly(t *testing.T) {
	var seen []channel.Entry
	for e := range Extract([]byte("A,http://a\nB,http://b\nC,http://c\n"), FormatSimple) {
		seen = append(seen, e)
		if len(seen) == 2 {
			break
		}
	}
	if len(seen) != 2 {
		t.Errorf("expected iteration to stop after 2 entries, got %d", len(seen))
	}
}

func TestFormatFromAddress(t *testing.T) {
	tests := []struct {
		address string
		want    Format
	}{
		{"https://live.example/iptv.m3u", FormatPlaylist},
		{"https://live.example/iptv.m3u8", FormatPlaylist},
		{"https://live.example/IPTV.M3U", FormatPlaylist},
		{"https://live.example/list.m3u?token=abc", FormatPlaylist},
		{"https://live.example/iptv.txt", FormatSimple},
		{"https://live.example/feed", FormatSimple},
		{"http://175.178.251.183:6689/live.m3u", FormatPlaylist},
		{"local/list.m3u", FormatPlaylist},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			if got := FormatFromAddress(tt.address); got != tt.want {
				t.Errorf("FormatFromAddress(%q) = %v, want %v", tt.address, got, tt.want)
			}
		})
	}
}
