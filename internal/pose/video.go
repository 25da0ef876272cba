package pose

import (
	"net/url"
	"strings"
)

const embedPrefix = "https://www.youtube.com/embed/"

// EmbedURL converts a YouTube watch or short link into its embed form.
// Other URLs, including ones already in embed form, are returned unchanged.
func EmbedURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	switch host {
	case "youtu.be":
		if id := strings.Trim(u.Path, "/"); id != "" {
			return embedPrefix + id
		}
	case "youtube.com", "m.youtube.com":
		if id := u.Query().Get("v"); id != "" {
			return embedPrefix + id
		}
	}
	return raw
}
