package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Prediction struct {
	ID                    uint             `json:"id"`
	PoolID                uint             `json:"pool_id"`
	MatchID               uint             `json:"match_id"`
	UserID                uint             `json:"user_id"`
	PredictedHomeScore    int              `json:"predicted_home_score"`
	PredictedAwayScore    int              `json:"predicted_away_score"`
	PredictedHasExtraTime bool             `json:"predicted_has_extra_time"`
	PredictedHasPenalties bool             `json:"predicted_has_penalties"`
	PredictedPenaltyHome  *int             `json:"predicted_penalty_home_score"`
	PredictedPenaltyAway  *int             `json:"predicted_penalty_away_score"`
	SubmittedAt           time.Time        `json:"submitted_at"`
	UpdatedAt             *time.Time       `json:"updated_at"`
	PointsEarned          *decimal.Decimal `json:"points_earned"`
}

// PredictionDraft is the guess a participant submits when creating a prediction.
type PredictionDraft struct {
	PredictedHomeScore    int
	PredictedAwayScore    int
	PredictedHasExtraTime bool
	PredictedHasPenalties bool
	PredictedPenaltyHome  *int
	PredictedPenaltyAway  *int
}

type PredictionPatch struct {
	PredictedHomeScore    *int
	PredictedAwayScore    *int
	PredictedHasExtraTime *bool
	PredictedHasPenalties *bool
	PredictedPenaltyHome  *int
	PredictedPenaltyAway  *int
}
