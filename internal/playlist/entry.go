package playlist

// Entry is one line pair of the generated playlist.
type Entry struct {
	Channel    string
	URL        string
	LogoURL    string
	GroupTitle string
}
