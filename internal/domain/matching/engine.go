package matching

import (
	"fmt"
	"math"
	"strings"
)

type JobTarget struct {
	Title           string
	Skills          []string
	ExperienceLevel string
	Location        string
	Tags            []string
}

type Resume struct {
	Title           string
	Skills          []string
	ExperienceLevel string
	Location        string
}

type Breakdown struct {
	Skills     float64 `json:"skills"`
	Title      float64 `json:"title"`
	Experience float64 `json:"experience"`
	Location   float64 `json:"location"`
	Other      float64 `json:"other"`
}

func (b Breakdown) Total() float64 {
	return b.Skills + b.Title + b.Experience + b.Location + b.Other
}

type Result struct {
	Score         int       `json:"score"`
	MatchedSkills []string  `json:"matchedSkills"`
	Reason        string    `json:"reason"`
	Breakdown     Breakdown `json:"detailScores"`
}

// Weights is a rubric. Each field is the maximum number of points a criterion
// can contribute; a rubric is expected to sum to 100.
type Weights struct {
	Skills     float64
	Title      float64
	Experience float64
	Location   float64
	Other      float64
}

var jobRubric = Weights{Skills: 50, Title: 20, Experience: 15, Location: 10, Other: 5}

const (
	ReasonMissingCV      = "Missing CV data"
	ReasonGeneralProfile = "General profile match"

	reasonSkillLimit = 3
)

func JobWeights() Weights {
	return jobRubric
}

// ScoreJob ranks a CV against a job posting. A nil CV scores zero.
func ScoreJob(job JobTarget, cv *Resume) Result {
	if cv == nil {
		return Result{Score: 0, MatchedSkills: []string{}, Reason: ReasonMissingCV}
	}

	w := jobRubric
	var b Breakdown

	targetSkills := uniqueSkills(job.Skills)
	cvSkills := skillSet(cv.Skills)
	matched := intersectSkills(targetSkills, cvSkills)
	b.Skills = skillsScore(len(matched), len(targetSkills), w.Skills)

	cvTitle := normalize(cv.Title)
	if containsEither(normalize(job.Title), cvTitle) {
		b.Title = w.Title
	}

	if sameLevel(job.ExperienceLevel, cv.ExperienceLevel) {
		b.Experience = w.Experience
	}

	if containsEither(normalize(job.Location), normalize(cv.Location)) {
		b.Location = w.Location
	}

	if anyTagMatches(job.Tags, cvSkills, cvTitle) {
		b.Other = w.Other
	}

	reason := ReasonGeneralProfile
	switch {
	case len(matched) > 0:
		reason = fmt.Sprintf("Matched %d skills: %s", len(matched), joinSkills(matched))
	case b.Title > 0:
		reason = "Title matched: " + strings.TrimSpace(cv.Title)
	case b.Experience > 0:
		reason = "Experience level matched: " + strings.TrimSpace(cv.ExperienceLevel)
	}

	return Result{
		Score:         finalScore(b),
		MatchedSkills: matched,
		Reason:        reason,
		Breakdown:     b,
	}
}

func skillsScore(matched, total int, weight float64) float64 {
	if total == 0 {
		return weight * 0.5
	}
	return weight * (float64(matched) / float64(total))
}

func anyTagMatches(tags []string, cvSkills map[string]struct{}, cvTitle string) bool {
	for _, t := range tags {
		t = normalize(t)
		if t == "" {
			continue
		}
		if _, ok := cvSkills[t]; ok {
			return true
		}
		if cvTitle != "" && strings.Contains(cvTitle, t) {
			return true
		}
	}
	return false
}

func finalScore(b Breakdown) int {
	score := int(math.Round(b.Total()))
	return clampInt(score, 0, 100)
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
