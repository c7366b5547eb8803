package matching

import (
	"strings"
)

type RequirementTarget struct {
	Title           string
	Skills          []string
	ExperienceLevel string
	Location        string
}

type Candidate struct {
	Headline        string
	Skills          []string
	ExperienceLevel string
	Location        string
	Availability    string
}

var candidateRubric = Weights{Skills: 55, Title: 10, Experience: 15, Location: 10, Other: 10}

const (
	ReasonMissingCandidate = "Missing candidate data"

	AvailabilityImmediate = "Immediate"
	LocationRemote        = "Remote"

	// candidate reasons only cite skills once the overlap is meaningful
	candidateReasonMinSkills = 3
)

func CandidateWeights() Weights {
	return candidateRubric
}

// ScoreCandidate ranks a candidate against a hiring requirement. Overqualified
// candidates (Senior against Junior or Mid-Level) keep full experience credit;
// the reverse earns nothing.
func ScoreCandidate(req RequirementTarget, c *Candidate) Result {
	if c == nil {
		return Result{Score: 0, MatchedSkills: []string{}, Reason: ReasonMissingCandidate}
	}

	w := candidateRubric
	var b Breakdown

	reqSkills := uniqueSkills(req.Skills)
	matched := intersectSkills(reqSkills, skillSet(c.Skills))
	b.Skills = skillsScore(len(matched), len(reqSkills), w.Skills)

	if experienceCovers(req.ExperienceLevel, c.ExperienceLevel) {
		b.Experience = w.Experience
	}

	if containsEither(normalize(req.Title), normalize(c.Headline)) {
		b.Title = w.Title
	}

	candLocation := normalize(c.Location)
	if candLocation == normalize(LocationRemote) || containsEither(normalize(req.Location), candLocation) {
		b.Location = w.Location
	}

	if normalize(c.Availability) == normalize(AvailabilityImmediate) {
		b.Other = w.Other
	} else {
		b.Other = w.Other / 2
	}

	reason := ReasonGeneralProfile
	switch {
	case len(matched) >= candidateReasonMinSkills:
		reason = "Skills matched: " + joinSkills(matched)
	case b.Title > 0:
		reason = "Title matched: " + strings.TrimSpace(c.Headline)
	case b.Experience > 0:
		reason = "Experience level matched: " + strings.TrimSpace(c.ExperienceLevel)
	}

	return Result{
		Score:         finalScore(b),
		MatchedSkills: matched,
		Reason:        reason,
		Breakdown:     b,
	}
}

func experienceCovers(required, actual string) bool {
	if sameLevel(required, actual) {
		return true
	}
	if normalize(actual) != normalize(LevelSenior) {
		return false
	}
	switch normalize(required) {
	case normalize(LevelJunior), normalize(LevelMid):
		return true
	default:
		return false
	}
}
