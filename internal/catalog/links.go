package catalog

import (
	"regexp"
	"strings"
)

var driveFileID = regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`)

// DirectImageURL rewrites a Google Drive share link into a direct view link.
// Other values are returned unchanged.
func DirectImageURL(link string) string {
	if !strings.Contains(link, "drive.google.com") {
		return link
	}
	m := driveFileID.FindStringSubmatch(link)
	if m == nil {
		return link
	}
	return "https://drive.google.com/uc?export=view&id=" + m[1]
}
