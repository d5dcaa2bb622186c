package testutil

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Redaction is one text substitution applied to captured fixtures.
type Redaction struct {
	Pattern     *regexp.Regexp
	Replacement string
	Description string
}

// DefaultRedactions strip secrets that tend to appear in inline scripts.
var DefaultRedactions = []Redaction{
	{
		regexp.MustCompile(`(?i)(token|csrf|session)["\s:=]+["']?[a-zA-Z0-9_-]{20,}["']?`),
		`$1="REDACTED"`,
		"Token",
	},
	{
		regexp.MustCompile(`(?i)document\.cookie\s*=\s*["'][^"']+["']`),
		`document.cookie="REDACTED"`,
		"Cookie",
	},
	{
		regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`),
		"user@example.com",
		"Email address",
	},
}

// SanitizeReport lists what SanitizeFixture changed.
type SanitizeReport struct {
	ClearedControls int
	Matches         map[string]int
}

// SanitizeFixture empties whatever a user typed into the captured form
// controls and applies the redactions to the remaining markup. Control
// structure (ids, names, types, options) is kept so the fixture still
// classifies the same way.
func SanitizeFixture(html string, redactions []Redaction) (string, SanitizeReport, error) {
	report := SanitizeReport{Matches: map[string]int{}}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", report, fmt.Errorf("parse fixture: %w", err)
	}

	doc.Find("input").Each(func(_ int, s *goquery.Selection) {
		switch strings.ToLower(s.AttrOr("type", "text")) {
		case "checkbox", "radio", "submit", "button", "reset", "image", "hidden":
			return
		}
		if _, ok := s.Attr("value"); ok {
			s.RemoveAttr("value")
			report.ClearedControls++
		}
	})
	doc.Find("textarea").Each(func(_ int, s *goquery.Selection) {
		if s.Text() != "" {
			s.SetText("")
			report.ClearedControls++
		}
	})
	doc.Find("[contenteditable]").Each(func(_ int, s *goquery.Selection) {
		if strings.EqualFold(s.AttrOr("contenteditable", "true"), "false") {
			return
		}
		if s.Text() != "" {
			s.SetText("")
			report.ClearedControls++
		}
	})

	out, err := doc.Html()
	if err != nil {
		return "", report, fmt.Errorf("render fixture: %w", err)
	}

	for _, r := range redactions {
		if n := len(r.Pattern.FindAllStringIndex(out, -1)); n > 0 {
			out = r.Pattern.ReplaceAllString(out, r.Replacement)
			report.Matches[r.Description] += n
		}
	}
	return out, report, nil
}
