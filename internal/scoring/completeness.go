// Package scoring computes the profile completeness and job match heuristics.
// Every function is pure and treats nil or empty inputs as contributing zero.
package scoring

import (
	"strings"

	"go-jobboard-backend/internal/domain"
)

// DefaultCompleteThreshold is the completeness at which a profile counts as complete
const DefaultCompleteThreshold = 80

type completenessField struct {
	weight int
	filled func(p *domain.CandidateProfile) bool
}

// Weights sum to 100.
var completenessFields = []completenessField{
	{15, func(p *domain.CandidateProfile) bool { return present(p.FullName) }},
	{10, func(p *domain.CandidateProfile) bool { return present(p.Email) }},
	{10, func(p *domain.CandidateProfile) bool { return present(p.Phone) }},
	{10, func(p *domain.CandidateProfile) bool { return p.DateOfBirth != nil && !p.DateOfBirth.IsZero() }},
	{10, func(p *domain.CandidateProfile) bool { return present(p.Address) && present(p.City) }},
	{15, func(p *domain.CandidateProfile) bool { return present(p.ProfessionalSummary) }},
	{10, func(p *domain.CandidateProfile) bool { return present(p.Objective) }},
	{10, func(p *domain.CandidateProfile) bool { return len(p.SkillNames()) > 0 }},
	{5, func(p *domain.CandidateProfile) bool { return len(p.Experiences) > 0 }},
	{5, func(p *domain.CandidateProfile) bool { return len(p.Educations) > 0 }},
}

// ProfileCompleteness returns the weighted completion percentage of a profile in [0, 100]
func ProfileCompleteness(p *domain.CandidateProfile) int {
	if p == nil {
		return 0
	}
	score := 0
	for _, f := range completenessFields {
		if f.filled(p) {
			score += f.weight
		}
	}
	return clamp(score)
}

// IsProfileComplete reports whether the profile reaches threshold
func IsProfileComplete(p *domain.CandidateProfile, threshold int) bool {
	if threshold <= 0 {
		threshold = DefaultCompleteThreshold
	}
	return ProfileCompleteness(p) >= threshold
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
