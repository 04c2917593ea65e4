package domain

import "context"

// Recruiter is a company-affiliated reviewer
type Recruiter struct {
	ID        int64  `json:"id"`
	UserID    string `json:"user_id"`
	CompanyID int64  `json:"company_id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
}

type RecruiterRepository interface {
	GetByUserID(ctx context.Context, userID string) (*Recruiter, error)
}
