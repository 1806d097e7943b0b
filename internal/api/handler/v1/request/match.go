package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/pronos-api/internal/domain"
)

var (
	matchStages   = values(domain.MatchStages)
	matchStatuses = values(domain.MatchStatuses)
)

func values[T ~string](in []T) []interface{} {
	out := make([]interface{}, 0, len(in))
	for _, v := range in {
		out = append(out, string(v))
	}
	return out
}

type CreateMatchRequest struct {
	TournamentID  uint      `json:"tournament_id"`
	HomeTeamID    uint      `json:"home_team_id"`
	AwayTeamID    uint      `json:"away_team_id"`
	MatchDatetime time.Time `json:"match_datetime"`
	Stadium       string    `json:"stadium"`
	Stage         string    `json:"stage"`
}

func (req *CreateMatchRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TournamentID, validation.Required),
		validation.Field(&req.HomeTeamID, validation.Required),
		validation.Field(&req.AwayTeamID, validation.Required),
		validation.Field(&req.MatchDatetime, validation.Required),
		validation.Field(&req.Stadium, validation.Length(0, 100)),
		validation.Field(&req.Stage, validation.Required, validation.In(matchStages...)),
	)
}

func (req *CreateMatchRequest) ToDomain() domain.Match {
	return domain.Match{
		TournamentID:  req.TournamentID,
		HomeTeamID:    req.HomeTeamID,
		AwayTeamID:    req.AwayTeamID,
		MatchDatetime: req.MatchDatetime,
		Stadium:       req.Stadium,
		Stage:         domain.MatchStage(req.Stage),
	}
}

// UpdateMatchRequest only carries the fields the caller wants to change.
type UpdateMatchRequest struct {
	Status           *string    `json:"status"`
	Stage            *string    `json:"stage"`
	MatchDatetime    *time.Time `json:"match_datetime"`
	Stadium          *string    `json:"stadium"`
	HomeScore        *int       `json:"home_score"`
	AwayScore        *int       `json:"away_score"`
	HasExtraTime     *bool      `json:"has_extra_time"`
	HasPenalties     *bool      `json:"has_penalties"`
	PenaltyHomeScore *int       `json:"penalty_home_score"`
	PenaltyAwayScore *int       `json:"penalty_away_score"`
}

func (req *UpdateMatchRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.In(matchStatuses...)),
		validation.Field(&req.Stage, validation.In(matchStages...)),
		validation.Field(&req.Stadium, validation.Length(0, 100)),
	)
}

func (req *UpdateMatchRequest) ToPatch() domain.MatchPatch {
	patch := domain.MatchPatch{
		MatchDatetime:    req.MatchDatetime,
		Stadium:          req.Stadium,
		HomeScore:        req.HomeScore,
		AwayScore:        req.AwayScore,
		HasExtraTime:     req.HasExtraTime,
		HasPenalties:     req.HasPenalties,
		PenaltyHomeScore: req.PenaltyHomeScore,
		PenaltyAwayScore: req.PenaltyAwayScore,
	}
	if req.Status != nil {
		status := domain.MatchStatus(*req.Status)
		patch.Status = &status
	}
	if req.Stage != nil {
		stage := domain.MatchStage(*req.Stage)
		patch.Stage = &stage
	}
	return patch
}
