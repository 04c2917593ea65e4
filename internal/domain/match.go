package domain

import "context"

// JobMatchResult is a job scored against one candidate
type JobMatchResult struct {
	Job        Job `json:"job"`
	MatchScore int `json:"match_score"`
}

// RecommendationCache stores per-candidate recommendation lists
type RecommendationCache interface {
	Get(ctx context.Context, candidateID int64) ([]JobMatchResult, bool, error)
	Set(ctx context.Context, candidateID int64, results []JobMatchResult) error
	Invalidate(ctx context.Context, candidateID int64) error
}
