package scoring

import (
	"sort"
	"strings"
	"time"

	"go-jobboard-backend/internal/domain"
)

const (
	cityMatchPoints   = 25
	remoteMatchPoints = 20
	pointsPerSkill    = 10
	maxSkillPoints    = 40
	experiencePoints  = 20
	educationPoints   = 15
	remoteKeyword     = "remote"
)

// DefaultMatchCutoff is the score a job must exceed to be recommended
const DefaultMatchCutoff = 30

// JobMatch returns the heuristic fit of a candidate for a job in [0, 100].
// A nil candidate or job scores 0.
func JobMatch(c *domain.CandidateProfile, j *domain.Job) int {
	if c == nil || j == nil {
		return 0
	}
	score := locationPoints(c.City, j.Location)
	score += skillPoints(c.SkillNames(), j.RequiredSkills)
	if len(c.Experiences) > 0 {
		score += experiencePoints
	}
	if len(c.Educations) > 0 {
		score += educationPoints
	}
	return clamp(score)
}

// locationPoints awards the city bonus when the job location names the
// candidate's city, otherwise the remote bonus. Both need a city and a location.
func locationPoints(city, location string) int {
	loc := strings.ToLower(strings.TrimSpace(location))
	c := strings.ToLower(strings.TrimSpace(city))
	if loc == "" || c == "" {
		return 0
	}
	if strings.Contains(loc, c) {
		return cityMatchPoints
	}
	if strings.Contains(loc, remoteKeyword) {
		return remoteMatchPoints
	}
	return 0
}

// skillPoints counts candidate skills that appear inside any required skill name
func skillPoints(candidateSkills, requiredSkills []string) int {
	if len(candidateSkills) == 0 || len(requiredSkills) == 0 {
		return 0
	}
	required := make([]string, 0, len(requiredSkills))
	for _, r := range requiredSkills {
		if r = strings.ToLower(strings.TrimSpace(r)); r != "" {
			required = append(required, r)
		}
	}

	matching := 0
	for _, s := range candidateSkills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		for _, r := range required {
			if strings.Contains(r, s) {
				matching++
				break
			}
		}
	}
	return min(matching*pointsPerSkill, maxSkillPoints)
}

// RecommendOptions controls RecommendJobs
type RecommendOptions struct {
	// Scores at or below Threshold are dropped
	Threshold int
	// Limit caps the result size, 0 means no cap
	Limit int
	Now   time.Time
}

// RecommendJobs scores open jobs for a candidate and returns those above the
// threshold, best first. Equal scores keep their input order.
func RecommendJobs(c *domain.CandidateProfile, jobs []domain.Job, opts RecommendOptions) []domain.JobMatchResult {
	if c == nil {
		return []domain.JobMatchResult{}
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	results := make([]domain.JobMatchResult, 0, len(jobs))
	for i := range jobs {
		if !jobs[i].IsOpen(now) {
			continue
		}
		score := JobMatch(c, &jobs[i])
		if score <= opts.Threshold {
			continue
		}
		results = append(results, domain.JobMatchResult{Job: jobs[i], MatchScore: score})
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].MatchScore > results[b].MatchScore
	})
	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results
}

// RankCandidates orders applications for a job by the applicant's match score.
// Applications whose candidate is missing from candidates score 0.
func RankCandidates(job *domain.Job, apps []domain.Application, candidates map[int64]*domain.CandidateProfile) []domain.RankedApplicant {
	ranked := make([]domain.RankedApplicant, 0, len(apps))
	for _, app := range apps {
		c := candidates[app.CandidateID]
		r := domain.RankedApplicant{
			Application:  app,
			MatchScore:   JobMatch(c, job),
			Completeness: ProfileCompleteness(c),
		}
		if c != nil {
			r.CandidateName = c.FullName
		}
		ranked = append(ranked, r)
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].MatchScore > ranked[b].MatchScore
	})
	return ranked
}
