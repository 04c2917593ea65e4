package validation

import (
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateProfileValidation(t *testing.T) {
	now = func() time.Time { return time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = time.Now })
	v := New()

	dob := func(y int, m time.Month, d int) *time.Time {
		t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &t
	}

	valid := domain.CandidateProfile{
		FullName:    "Jordan O'Neil",
		Email:       "jordan@example.com",
		Phone:       "+15125550100",
		DateOfBirth: dob(2010, time.October, 16),
		Skills:      []domain.Skill{{Name: "Go", Proficiency: "expert"}},
	}
	require.NoError(t, v.Struct(valid))

	tests := []struct {
		name   string
		mutate func(p *domain.CandidateProfile)
		want   string
	}{
		{"one day short of sixteen", func(p *domain.CandidateProfile) { p.DateOfBirth = dob(2010, time.October, 17) }, "at least 16 years old"},
		{"emoji in name", func(p *domain.CandidateProfile) { p.FullName = "Jordan 🚀" }, "Full name"},
		{"bad phone", func(p *domain.CandidateProfile) { p.Phone = "12-34" }, "invalid phone number"},
		{"unknown proficiency", func(p *domain.CandidateProfile) { p.Skills[0].Proficiency = "guru" }, "must be one of"},
		{"missing email", func(p *domain.CandidateProfile) { p.Email = "" }, "Email: is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			p.Skills = append([]domain.Skill(nil), valid.Skills...)
			tt.mutate(&p)
			err := v.Struct(p)
			require.Error(t, err)
			msgs := FormatValidationErrors(err)
			require.NotEmpty(t, msgs)
			assert.Contains(t, msgs[0], tt.want)
		})
	}
}

func TestFormatCamelCase(t *testing.T) {
	assert.Equal(t, "Pincode", getFieldLabel("Pincode"))
	assert.Equal(t, "Cover letter", getFieldLabel("CoverLetter"))
	assert.Equal(t, "Special Instructions", getFieldLabel("SpecialInstructions"))
}
