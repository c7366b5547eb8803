package mapper

import (
	"regexp"
	"strconv"
	"strings"

	"talent-match/internal/domain/matching"
)

var yearsRe = regexp.MustCompile(`(?i)(\d+)\s*(?:y|năm|year)`)

// PreviewField extracts the value of a "Label: value" line from a remote
// matching preview.
func PreviewField(text, label string) string {
	if text == "" || label == "" {
		return ""
	}
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(label) + `:\s*([^\n]+)`)
	if err != nil {
		return ""
	}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// PreviewExperience guesses years of experience and a level from free text.
func PreviewExperience(text string) (int, string) {
	years := 0
	if m := yearsRe.FindStringSubmatch(text); m != nil {
		years, _ = strconv.Atoi(m[1])
	}

	lower := strings.ToLower(text)
	switch {
	case years >= 5 || strings.Contains(lower, "senior"):
		return years, matching.LevelSenior
	case years <= 1 || strings.Contains(lower, "fresher") || strings.Contains(lower, "intern"):
		return years, matching.LevelJunior
	default:
		return years, matching.LevelMid
	}
}
