package domain

import "context"

// Role of an authenticated user
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

// Principal is the identity an operation is performed on behalf of.
// It is passed explicitly into every authorization-sensitive call and
// compared by identifier only.
type Principal struct {
	UserID      string `json:"user_id"`
	Role        Role   `json:"role"`
	CandidateID int64  `json:"candidate_id,omitempty"`
	RecruiterID int64  `json:"recruiter_id,omitempty"`
	CompanyID   int64  `json:"company_id,omitempty"`
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsCandidate() bool {
	return p.Role == RoleCandidate && p.CandidateID != 0
}

func (p Principal) IsRecruiter() bool {
	return p.Role == RoleRecruiter && p.RecruiterID != 0
}

// OwnsCandidate reports whether the principal is the given candidate
func (p Principal) OwnsCandidate(candidateID int64) bool {
	return p.IsCandidate() && p.CandidateID == candidateID
}

// CanManageCompany reports whether the principal may act on a job of the given company
func (p Principal) CanManageCompany(companyID int64) bool {
	if p.IsAdmin() {
		return true
	}
	return p.IsRecruiter() && p.CompanyID == companyID
}

// PrincipalResolver loads the principal for an authenticated user id
type PrincipalResolver interface {
	Resolve(ctx context.Context, userID string, role Role) (Principal, error)
}
