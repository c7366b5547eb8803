package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestScoreJobAgainstCV(t *testing.T) {
	dir := t.TempDir()
	jobFile := writeFile(t, dir, "job.json", `{"title":"Frontend Developer","skills":[{"name":"React"},"TypeScript"],"seniority":"Senior","location":"Hà Nội"}`)
	cvFile := writeFile(t, dir, "cv.json", `{"fullname":"A","targetRole":"Frontend Developer","skills":["React","TypeScript","CSS"],"experienceLevel":"Senior","location":{"city":"Hà Nội"}}`)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"score", "--job", jobFile, "--cv", cvFile})
	require.NoError(t, cmd.Execute())

	var res struct {
		Score         int      `json:"score"`
		MatchedSkills []string `json:"matchedSkills"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, 95, res.Score)
	assert.Equal(t, []string{"React", "TypeScript"}, res.MatchedSkills)
}

func TestScoreDefaultsToDemoFixtures(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"score"})
	require.NoError(t, cmd.Execute())

	var rankings []requirementRanking
	require.NoError(t, json.Unmarshal(out.Bytes(), &rankings))
	require.NotEmpty(t, rankings)
	require.NotEmpty(t, rankings[0].Candidates)
	assert.Equal(t, "Nguyễn Văn A", rankings[0].Candidates[0].Name)
	assert.Equal(t, 90, rankings[0].Candidates[0].Result.Score)
}

func TestScoreRejectsInvalidPayload(t *testing.T) {
	dir := t.TempDir()
	jobFile := writeFile(t, dir, "job.json", `[1,2,3]`)
	cvFile := writeFile(t, dir, "cv.json", `{}`)

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"score", "--job", jobFile, "--cv", cvFile})
	assert.Error(t, cmd.Execute())
}

func TestScoreRequiresPairedFlags(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"score", "--job", "job.json"})
	assert.Error(t, cmd.Execute())
}
