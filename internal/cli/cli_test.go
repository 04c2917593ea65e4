package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go-jobboard-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullProfile = `
full_name: Ada Lovelace
email: ada@example.com
phone: "+15125550100"
date_of_birth: 1990-05-01
address: 1 Main St
city: Austin
professional_summary: Backend engineer
objective: Build things
skills:
  - Go
  - name: SQL
    proficiency: advanced
experiences:
  - title: Engineer
    company: Acme
    start_date: 2018-01-01
educations:
  - institution: UT
    degree: BSc
`

const jobList = `
- id: 1
  title: Backend Engineer
  location: Austin, TX
  required_skills: [Go, PostgreSQL]
- id: 2
  title: Rust Developer
  location: Remote
  required_skills: [Rust]
- id: 3
  title: Closed Role
  location: Austin, TX
  required_skills: [Go]
  is_active: false
- id: 4
  title: Java Developer
  location: Berlin
  required_skills: [Java]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCompleteness(t *testing.T) {
	t.Run("full profile", func(t *testing.T) {
		out, err := execute(t, "completeness", "-p", writeFile(t, "p.yaml", fullProfile))
		require.NoError(t, err)
		assert.Equal(t, "completeness: 100%\ncomplete: true\n", out)
	})

	t.Run("partial profile as json", func(t *testing.T) {
		path := writeFile(t, "p.yaml", "full_name: Ada\nemail: ada@example.com\n")
		out, err := execute(t, "completeness", "--json", "-p", path)
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, float64(25), got["completeness"])
		assert.Equal(t, false, got["complete"])
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, "completeness", "-p", filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestMatch(t *testing.T) {
	profile := writeFile(t, "p.yaml", fullProfile)
	job := writeFile(t, "j.yaml", "title: Backend\nlocation: Austin, TX\nrequired_skills: [Go, PostgreSQL]\n")

	out, err := execute(t, "match", "-p", profile, "-j", job)
	require.NoError(t, err)
	// city 25 + two skills 20 + experience 20 + education 15
	assert.Equal(t, "match score: 80\n", out)
}

func TestRecommend(t *testing.T) {
	profile := writeFile(t, "p.yaml", fullProfile)
	jobs := writeFile(t, "jobs.yaml", jobList)

	t.Run("default threshold", func(t *testing.T) {
		out, err := execute(t, "recommend", "--json", "--at", "2025-06-02T09:00:00Z", "-p", profile, "-j", jobs)
		require.NoError(t, err)

		var got []domain.JobMatchResult
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		require.Len(t, got, 3)
		assert.Equal(t, int64(1), got[0].Job.ID)
		assert.Equal(t, 80, got[0].MatchScore)
		assert.Equal(t, int64(2), got[1].Job.ID)
		assert.Equal(t, 55, got[1].MatchScore)
		assert.Equal(t, int64(4), got[2].Job.ID)
		assert.Equal(t, 35, got[2].MatchScore)
	})

	t.Run("threshold and limit", func(t *testing.T) {
		out, err := execute(t, "recommend", "-p", profile, "-j", jobs, "--threshold", "40", "--limit", "1")
		require.NoError(t, err)
		assert.Equal(t, "1. [80] Backend Engineer (Austin, TX)\n", out)
	})

	t.Run("bad time", func(t *testing.T) {
		_, err := execute(t, "recommend", "--at", "yesterday", "-p", profile, "-j", jobs)
		assert.ErrorContains(t, err, "invalid --at value")
	})
}

func TestTransitions(t *testing.T) {
	out, err := execute(t, "transitions", "--json")
	require.NoError(t, err)

	var got map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"interview_scheduled", "accepted", "hired", "rejected"}, got["shortlisted"])
	assert.Empty(t, got["hired"])
	assert.Empty(t, got["withdrawn"])
}
