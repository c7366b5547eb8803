package matching

import "strings"

const (
	LevelIntern  = "Intern"
	LevelFresher = "Fresher"
	LevelJunior  = "Junior"
	LevelMid     = "Mid-Level"
	LevelSenior  = "Senior"
)

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// uniqueSkills drops blanks and case-insensitive duplicates, keeping the first
// spelling seen.
func uniqueSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		key := normalize(s)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(s))
	}
	return out
}

func skillSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		key := normalize(s)
		if key == "" {
			continue
		}
		set[key] = struct{}{}
	}
	return set
}

func intersectSkills(target []string, have map[string]struct{}) []string {
	out := make([]string, 0, len(target))
	for _, s := range target {
		if _, ok := have[normalize(s)]; ok {
			out = append(out, s)
		}
	}
	return out
}

func containsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func sameLevel(a, b string) bool {
	na, nb := normalize(a), normalize(b)
	return na != "" && na == nb
}

func joinSkills(skills []string) string {
	if len(skills) <= reasonSkillLimit {
		return strings.Join(skills, ", ")
	}
	return strings.Join(skills[:reasonSkillLimit], ", ") + "..."
}
