package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/pronos-api/internal/domain"
)

type CreatePredictionRequest struct {
	MatchID               uint `json:"match_id"`
	PredictedHomeScore    *int `json:"predicted_home_score"`
	PredictedAwayScore    *int `json:"predicted_away_score"`
	PredictedHasExtraTime bool `json:"predicted_has_extra_time"`
	PredictedHasPenalties bool `json:"predicted_has_penalties"`
	PredictedPenaltyHome  *int `json:"predicted_penalty_home_score"`
	PredictedPenaltyAway  *int `json:"predicted_penalty_away_score"`
}

func (req *CreatePredictionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.MatchID, validation.Required),
		validation.Field(&req.PredictedHomeScore, validation.NotNil),
		validation.Field(&req.PredictedAwayScore, validation.NotNil),
	)
}

// ToDraft must only be called after Validate succeeded.
func (req *CreatePredictionRequest) ToDraft() domain.PredictionDraft {
	return domain.PredictionDraft{
		PredictedHomeScore:    *req.PredictedHomeScore,
		PredictedAwayScore:    *req.PredictedAwayScore,
		PredictedHasExtraTime: req.PredictedHasExtraTime,
		PredictedHasPenalties: req.PredictedHasPenalties,
		PredictedPenaltyHome:  req.PredictedPenaltyHome,
		PredictedPenaltyAway:  req.PredictedPenaltyAway,
	}
}

type UpdatePredictionRequest struct {
	PredictedHomeScore    *int  `json:"predicted_home_score"`
	PredictedAwayScore    *int  `json:"predicted_away_score"`
	PredictedHasExtraTime *bool `json:"predicted_has_extra_time"`
	PredictedHasPenalties *bool `json:"predicted_has_penalties"`
	PredictedPenaltyHome  *int  `json:"predicted_penalty_home_score"`
	PredictedPenaltyAway  *int  `json:"predicted_penalty_away_score"`
}

func (req *UpdatePredictionRequest) ToPatch() domain.PredictionPatch {
	return domain.PredictionPatch{
		PredictedHomeScore:    req.PredictedHomeScore,
		PredictedAwayScore:    req.PredictedAwayScore,
		PredictedHasExtraTime: req.PredictedHasExtraTime,
		PredictedHasPenalties: req.PredictedHasPenalties,
		PredictedPenaltyHome:  req.PredictedPenaltyHome,
		PredictedPenaltyAway:  req.PredictedPenaltyAway,
	}
}
