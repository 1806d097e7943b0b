package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/shopspring/decimal"

	"github.com/vietanh2810/pronos-api/internal/domain"
)

type CreatePoolRequest struct {
	TournamentID         uint                 `json:"tournament_id"`
	Name                 string               `json:"name"`
	IsPrivate            bool                 `json:"is_private"`
	InviteCode           string               `json:"invite_code"`
	MaxParticipants      *int                 `json:"max_participants"`
	RegistrationDeadline *time.Time           `json:"registration_deadline"`
	ScoringRules         *ScoringRulesRequest `json:"scoring_rules"`
}

// ScoringRulesRequest overrides the default rule set field by field.
type ScoringRulesRequest struct {
	ExactScorePoints            *int             `json:"exact_score_points"`
	CorrectWinnerPoints         *int             `json:"correct_winner_points"`
	CorrectDrawPoints           *int             `json:"correct_draw_points"`
	CorrectWinnerGoalDiffPoints *int             `json:"correct_winner_goal_diff_points"`
	SpecialEventPoints          *int             `json:"special_event_points"`
	KnockoutMultiplier          *decimal.Decimal `json:"knockout_multiplier"`
	FinalMultiplier             *decimal.Decimal `json:"final_multiplier"`
}

func (req *CreatePoolRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TournamentID, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.InviteCode, validation.Length(6, 32), is.Alphanumeric),
	)
}

func (req *CreatePoolRequest) ToDomain() domain.Pool {
	return domain.Pool{
		TournamentID:         req.TournamentID,
		Name:                 req.Name,
		IsPrivate:            req.IsPrivate,
		InviteCode:           req.InviteCode,
		MaxParticipants:      req.MaxParticipants,
		RegistrationDeadline: req.RegistrationDeadline,
		ScoringRules:         req.ScoringRules.ToDomain(),
	}
}

// ToDomain is safe on a nil receiver and then yields the default rule set.
func (req *ScoringRulesRequest) ToDomain() domain.ScoringRuleSet {
	rs := domain.DefaultScoringRuleSet()
	if req == nil {
		return rs
	}

	overrideInt(&rs.ExactScorePoints, req.ExactScorePoints)
	overrideInt(&rs.CorrectWinnerPoints, req.CorrectWinnerPoints)
	overrideInt(&rs.CorrectDrawPoints, req.CorrectDrawPoints)
	overrideInt(&rs.CorrectWinnerGoalDiffPoints, req.CorrectWinnerGoalDiffPoints)
	overrideInt(&rs.SpecialEventPoints, req.SpecialEventPoints)
	if req.KnockoutMultiplier != nil {
		rs.KnockoutMultiplier = *req.KnockoutMultiplier
	}
	if req.FinalMultiplier != nil {
		rs.FinalMultiplier = *req.FinalMultiplier
	}

	return rs
}

func overrideInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

type JoinPoolRequest struct {
	InviteCode string `json:"invite_code"`
}

func (req *JoinPoolRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.InviteCode, validation.Length(0, 32)),
	)
}
