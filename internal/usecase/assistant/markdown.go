package assistant

import (
	"regexp"
	"strings"
)

var (
	mdHeading   = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	mdBullet    = regexp.MustCompile(`(?m)^\s*[*+]\s+`)
	mdBold      = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	mdItalic    = regexp.MustCompile(`\*([^*\n]+)\*`)
	mdCode      = regexp.MustCompile("`([^`]+)`")
	mdBlankRuns = regexp.MustCompile(`\n{3,}`)
)

// StripMarkdown removes common markdown formatting from model output so
// summaries read as plain text. Bullet markers become a uniform dash.
// Bullets go first so the italic pattern cannot pair their stars.
func StripMarkdown(s string) string {
	s = mdHeading.ReplaceAllString(s, "")
	s = mdBullet.ReplaceAllString(s, "- ")
	s = mdBold.ReplaceAllString(s, "$1")
	s = mdItalic.ReplaceAllString(s, "$1")
	s = mdCode.ReplaceAllString(s, "$1")
	s = mdBlankRuns.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
