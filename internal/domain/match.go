package domain

import "time"

type MatchStage string

const (
	StageGroup        MatchStage = "GROUP"
	StageRoundOf16    MatchStage = "ROUND_OF_16"
	StageQuarterFinal MatchStage = "QUARTER_FINAL"
	StageSemiFinal    MatchStage = "SEMI_FINAL"
	StageThirdPlace   MatchStage = "THIRD_PLACE"
	StageFinal        MatchStage = "FINAL"
	StageLosersMatch  MatchStage = "LOSERS_MATCH"
)

var MatchStages = []MatchStage{
	StageGroup, StageRoundOf16, StageQuarterFinal, StageSemiFinal, StageThirdPlace, StageFinal, StageLosersMatch,
}

// IsKnockout reports whether the stage is anything but the group phase.
func (s MatchStage) IsKnockout() bool {
	return s != StageGroup
}

type MatchStatus string

const (
	MatchScheduled  MatchStatus = "SCHEDULED"
	MatchInProgress MatchStatus = "IN_PROGRESS"
	MatchCompleted  MatchStatus = "COMPLETED"
	MatchPostponed  MatchStatus = "POSTPONED"
)

var MatchStatuses = []MatchStatus{MatchScheduled, MatchInProgress, MatchCompleted, MatchPostponed}

type Match struct {
	ID               uint        `json:"id"`
	TournamentID     uint        `json:"tournament_id"`
	HomeTeamID       uint        `json:"home_team_id"`
	AwayTeamID       uint        `json:"away_team_id"`
	HomeTeam         *Team       `json:"home_team,omitempty"`
	AwayTeam         *Team       `json:"away_team,omitempty"`
	MatchDatetime    time.Time   `json:"match_datetime"`
	Stadium          string      `json:"stadium"`
	Stage            MatchStage  `json:"stage"`
	Status           MatchStatus `json:"status"`
	HomeScore        *int        `json:"home_score"`
	AwayScore        *int        `json:"away_score"`
	HasExtraTime     bool        `json:"has_extra_time"`
	HasPenalties     bool        `json:"has_penalties"`
	PenaltyHomeScore *int        `json:"penalty_home_score"`
	PenaltyAwayScore *int        `json:"penalty_away_score"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// MatchPatch carries the fields an update wants to change. Nil means "keep the current value".
type MatchPatch struct {
	Status           *MatchStatus
	Stage            *MatchStage
	MatchDatetime    *time.Time
	Stadium          *string
	HomeScore        *int
	AwayScore        *int
	HasExtraTime     *bool
	HasPenalties     *bool
	PenaltyHomeScore *int
	PenaltyAwayScore *int
}

// TouchesResult reports whether the patch sets any score, extra time or penalty value.
func (p MatchPatch) TouchesResult() bool {
	return p.HomeScore != nil || p.AwayScore != nil ||
		(p.HasExtraTime != nil && *p.HasExtraTime) ||
		(p.HasPenalties != nil && *p.HasPenalties) ||
		p.PenaltyHomeScore != nil || p.PenaltyAwayScore != nil
}
