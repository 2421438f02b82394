package coerce

import (
	"regexp"
	"strings"
)

// Boilerplate section titles that upstream models tend to emit and students
// don't need. Any line containing one of these is dropped.
var boilerplateTitles = []string{
	"Key Content Analysis",
	"Main Themes Identified",
	"Important Insights",
	"Key Takeaways",
	"Overview",
	"Processing Time",
	"Status: Complete",
	"File Processed:",
}

// Runs of 3+ newlines (possibly with blank padding) collapse to exactly 2.
var blankRuns = regexp.MustCompile(`\n[ \t]*\n(?:[ \t]*\n)+`)

// CleanupNotes applies the deterministic cosmetic pass to generated notes:
// strip boilerplate title lines, then collapse excess blank lines. The pass
// is idempotent.
func CleanupNotes(text string) string {
	if text == "" {
		return ""
	}

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if containsBoilerplate(line) {
			continue
		}
		kept = append(kept, line)
	}

	cleaned := strings.Join(kept, "\n")
	return blankRuns.ReplaceAllString(cleaned, "\n\n")
}

func containsBoilerplate(line string) bool {
	lower := strings.ToLower(line)
	for _, title := range boilerplateTitles {
		if strings.Contains(lower, strings.ToLower(title)) {
			return true
		}
	}
	return false
}
