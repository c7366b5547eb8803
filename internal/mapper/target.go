package mapper

import (
	"strings"

	"talent-match/internal/domain/cv"
	"talent-match/internal/domain/job"
	"talent-match/internal/domain/matching"
	"talent-match/internal/domain/requirement"
)

func JobTarget(j job.Job) matching.JobTarget {
	return matching.JobTarget{
		Title:           j.Title,
		Skills:          j.SkillNames(),
		ExperienceLevel: j.Seniority,
		Location:        j.Location.Display(),
		Tags:            j.Tags,
	}
}

func Resume(c cv.CV) *matching.Resume {
	title := c.TargetRole
	if strings.TrimSpace(title) == "" {
		title = c.Headline
	}
	return &matching.Resume{
		Title:           title,
		Skills:          c.SkillNames(),
		ExperienceLevel: ExperienceLevel(c),
		Location:        c.Location.Display(),
	}
}

func RequirementTarget(r requirement.Requirement) matching.RequirementTarget {
	return matching.RequirementTarget{
		Title:           r.Title,
		Skills:          r.Skills,
		ExperienceLevel: r.ExperienceLevel,
		Location:        r.Location,
	}
}

func Candidate(c cv.CV) *matching.Candidate {
	headline := c.Headline
	if strings.TrimSpace(headline) == "" {
		headline = c.TargetRole
	}
	return &matching.Candidate{
		Headline:        headline,
		Skills:          c.SkillNames(),
		ExperienceLevel: ExperienceLevel(c),
		Location:        c.Location.Display(),
		Availability:    c.Availability,
	}
}

// ExperienceLevel returns the explicit level of a CV, or derives one from its
// years of experience (falling back to the number of listed positions).
func ExperienceLevel(c cv.CV) string {
	if lvl := strings.TrimSpace(c.ExperienceLevel); lvl != "" {
		return lvl
	}

	years := c.ExperienceCount
	if c.ExperienceYears != nil {
		years = *c.ExperienceYears
	}

	switch {
	case years >= 5:
		return matching.LevelSenior
	case years >= 2:
		return matching.LevelMid
	case years >= 1:
		return matching.LevelJunior
	case hasIntern(c.EmploymentType):
		return matching.LevelIntern
	default:
		return matching.LevelFresher
	}
}

func hasIntern(types []string) bool {
	for _, t := range types {
		if strings.EqualFold(strings.TrimSpace(t), "intern") || strings.EqualFold(strings.TrimSpace(t), "internship") {
			return true
		}
	}
	return false
}
