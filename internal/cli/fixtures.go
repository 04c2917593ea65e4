package cli

import (
	"fmt"
	"os"
	"time"

	"go-jobboard-backend/internal/domain"

	"gopkg.in/yaml.v3"
)

type profileFile struct {
	FullName            string           `yaml:"full_name"`
	Email               string           `yaml:"email"`
	Phone               string           `yaml:"phone"`
	DateOfBirth         *time.Time       `yaml:"date_of_birth"`
	Address             string           `yaml:"address"`
	City                string           `yaml:"city"`
	ProfessionalSummary string           `yaml:"professional_summary"`
	Objective           string           `yaml:"objective"`
	Skills              []skillFile      `yaml:"skills"`
	Experiences         []experienceFile `yaml:"experiences"`
	Educations          []educationFile  `yaml:"educations"`
}

type skillFile struct {
	Name        string `yaml:"name"`
	Proficiency string `yaml:"proficiency"`
}

// UnmarshalYAML accepts either a bare skill name or a name/proficiency mapping
func (s *skillFile) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		s.Name = node.Value
		return nil
	}
	type plain skillFile
	return node.Decode((*plain)(s))
}

type experienceFile struct {
	Title     string     `yaml:"title"`
	Company   string     `yaml:"company"`
	StartDate time.Time  `yaml:"start_date"`
	EndDate   *time.Time `yaml:"end_date"`
}

type educationFile struct {
	Institution string `yaml:"institution"`
	Degree      string `yaml:"degree"`
	StartYear   int    `yaml:"start_year"`
}

type jobFile struct {
	ID              int64      `yaml:"id"`
	Title           string     `yaml:"title"`
	Location        string     `yaml:"location"`
	RequiredSkills  []string   `yaml:"required_skills"`
	ExperienceLevel string     `yaml:"experience_level"`
	IsActive        *bool      `yaml:"is_active"`
	ClosingDate     *time.Time `yaml:"closing_date"`
}

func (f profileFile) toDomain() *domain.CandidateProfile {
	p := &domain.CandidateProfile{
		FullName:            f.FullName,
		Email:               f.Email,
		Phone:               f.Phone,
		DateOfBirth:         f.DateOfBirth,
		Address:             f.Address,
		City:                f.City,
		ProfessionalSummary: f.ProfessionalSummary,
		Objective:           f.Objective,
		IsActive:            true,
	}
	for _, s := range f.Skills {
		p.Skills = append(p.Skills, domain.Skill{Name: s.Name, Proficiency: s.Proficiency})
	}
	for _, e := range f.Experiences {
		p.Experiences = append(p.Experiences, domain.Experience{Title: e.Title, Company: e.Company, StartDate: e.StartDate, EndDate: e.EndDate})
	}
	for _, e := range f.Educations {
		p.Educations = append(p.Educations, domain.Education{Institution: e.Institution, Degree: e.Degree, StartYear: e.StartYear})
	}
	return p
}

func (f jobFile) toDomain() domain.Job {
	active := true
	if f.IsActive != nil {
		active = *f.IsActive
	}
	return domain.Job{
		ID:              f.ID,
		Title:           f.Title,
		Location:        f.Location,
		RequiredSkills:  f.RequiredSkills,
		ExperienceLevel: domain.ExperienceLevel(f.ExperienceLevel),
		IsActive:        active,
		ClosingDate:     f.ClosingDate,
	}
}

func decodeFile(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func loadProfile(path string) (*domain.CandidateProfile, error) {
	var f profileFile
	if err := decodeFile(path, &f); err != nil {
		return nil, err
	}
	return f.toDomain(), nil
}

func loadJob(path string) (*domain.Job, error) {
	var f jobFile
	if err := decodeFile(path, &f); err != nil {
		return nil, err
	}
	job := f.toDomain()
	return &job, nil
}

// loadJobs reads a YAML sequence of jobs
func loadJobs(path string) ([]domain.Job, error) {
	var files []jobFile
	if err := decodeFile(path, &files); err != nil {
		return nil, err
	}
	jobs := make([]domain.Job, 0, len(files))
	for _, f := range files {
		jobs = append(jobs, f.toDomain())
	}
	return jobs, nil
}
