package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Standing is a user's derived performance in one pool. It is recomputed on read and never stored.
type Standing struct {
	Ranking            int             `json:"ranking"`
	UserID             uint            `json:"user_id"`
	PoolID             uint            `json:"pool_id"`
	TotalPredictions   int             `json:"total_predictions"`
	TotalPoints        decimal.Decimal `json:"total_points"`
	ExactScoreCount    int             `json:"exact_score_count"`
	CorrectResultCount int             `json:"correct_result_count"`
	PointsRatio        decimal.Decimal `json:"points_ratio"`
	CorrectResultRatio decimal.Decimal `json:"correct_result_ratio"`
	SubmittedRatio     decimal.Decimal `json:"submitted_ratio"`
	FirstSubmittedAt   time.Time       `json:"first_submitted_at"`
}
