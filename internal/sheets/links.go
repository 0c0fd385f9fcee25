package sheets

import (
	"fmt"
	"regexp"
)

var (
	sheetIDPattern = regexp.MustCompile(`/d/([a-zA-Z0-9-_]+)`)
	gidPattern     = regexp.MustCompile(`gid=([0-9]+)`)
)

// CSVExportURL converts a Google Sheets share link into its CSV export link.
// The first tab is used when the link carries no gid. Links that are not
// Sheets links are returned unchanged with ok set to false.
func CSVExportURL(shareLink string) (url string, ok bool) {
	id := sheetIDPattern.FindStringSubmatch(shareLink)
	if id == nil {
		return shareLink, false
	}

	gid := "0"
	if m := gidPattern.FindStringSubmatch(shareLink); m != nil {
		gid = m[1]
	}

	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv&gid=%s", id[1], gid), true
}
