package seed

import (
	"testing"

	"talent-match/internal/domain/matching"
	"talent-match/internal/mapper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixturesAreFresh(t *testing.T) {
	a := CVs()
	a[0].Skills[0].Name = "mutated"
	a[0].Fullname = "mutated"

	b := CVs()
	assert.Equal(t, "React", b[0].Skills[0].Name)
	assert.Equal(t, "Frontend Developer CV", b[0].Fullname)

	r := Requirements()
	r[0].Skills[0] = "mutated"
	assert.Equal(t, "React", Requirements()[0].Skills[0])
}

func TestIDsAreStableAndDistinct(t *testing.T) {
	assert.Equal(t, ID("cv_1"), ID("cv_1"))
	assert.NotEqual(t, ID("cv_1"), ID("cv_2"))

	seen := map[string]bool{}
	for _, c := range append(CVs(), Candidates()...) {
		require.False(t, seen[c.ID.String()], "duplicate id %s", c.ID)
		seen[c.ID.String()] = true
	}
}

func TestSeniorFrontendCandidateRanksFirstForReactRequirement(t *testing.T) {
	req := mapper.RequirementTarget(Requirements()[0])

	best, bestScore := "", -1
	for _, c := range Candidates() {
		res := matching.ScoreCandidate(req, mapper.Candidate(c))
		if res.Score > bestScore {
			best, bestScore = c.Fullname, res.Score
		}
	}

	assert.Equal(t, "Nguyễn Văn A", best)
	assert.Equal(t, 90, bestScore)
}
