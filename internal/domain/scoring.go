package domain

import "github.com/shopspring/decimal"

// ScoringRuleSet is the point configuration of a single pool. It is fixed once the pool exists.
type ScoringRuleSet struct {
	ID                          uint            `json:"-"`
	PoolID                      uint            `json:"-"`
	ExactScorePoints            int             `json:"exact_score_points"`
	CorrectWinnerPoints         int             `json:"correct_winner_points"`
	CorrectDrawPoints           int             `json:"correct_draw_points"`
	CorrectWinnerGoalDiffPoints int             `json:"correct_winner_goal_diff_points"`
	SpecialEventPoints          int             `json:"special_event_points"`
	KnockoutMultiplier          decimal.Decimal `json:"knockout_multiplier"`
	FinalMultiplier             decimal.Decimal `json:"final_multiplier"`
}

func DefaultScoringRuleSet() ScoringRuleSet {
	return ScoringRuleSet{
		ExactScorePoints:            3,
		CorrectWinnerPoints:         1,
		CorrectDrawPoints:           1,
		CorrectWinnerGoalDiffPoints: 1,
		SpecialEventPoints:          1,
		KnockoutMultiplier:          decimal.NewFromFloat(1.5),
		FinalMultiplier:             decimal.NewFromInt(2),
	}
}

// Multiplier returns the factor applied to a match total for the given stage.
func (r ScoringRuleSet) Multiplier(stage MatchStage) decimal.Decimal {
	switch {
	case stage == StageFinal:
		return r.FinalMultiplier
	case stage.IsKnockout():
		return r.KnockoutMultiplier
	default:
		return decimal.NewFromInt(1)
	}
}
