package rules

import (
	"slices"
	"time"

	"github.com/vietanh2810/pronos-api/internal/domain"
)

var allowedMatchTransitions = map[domain.MatchStatus][]domain.MatchStatus{
	domain.MatchScheduled:  {domain.MatchInProgress, domain.MatchCompleted, domain.MatchPostponed},
	domain.MatchInProgress: {domain.MatchCompleted, domain.MatchPostponed},
	domain.MatchPostponed:  {domain.MatchScheduled, domain.MatchInProgress},
	domain.MatchCompleted:  {},
}

func isValidMatchTransition(current, next domain.MatchStatus) bool {
	return current == next || slices.Contains(allowedMatchTransitions[current], next)
}

// ValidateNewMatch checks a match created by an admin. New matches always start SCHEDULED with no result.
func ValidateNewMatch(m domain.Match, tournament *domain.Tournament, now time.Time) (domain.Match, error) {
	if tournament == nil {
		return domain.Match{}, NotFound("tournament")
	}
	if m.HomeTeamID == 0 || m.AwayTeamID == 0 {
		return domain.Match{}, newError(KindValidation, "both teams are required")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return domain.Match{}, newError(KindValidation, "a team cannot play against itself")
	}
	if !slices.Contains(domain.MatchStages, m.Stage) {
		return domain.Match{}, newError(KindValidation, "unknown stage %q", m.Stage)
	}
	if !m.MatchDatetime.After(now) {
		return domain.Match{}, matchUpdateErr("match date cannot be in the past")
	}

	m.TournamentID = tournament.ID
	m.Status = domain.MatchScheduled
	m.HomeScore, m.AwayScore = nil, nil
	m.HasExtraTime, m.HasPenalties = false, false
	m.PenaltyHomeScore, m.PenaltyAwayScore = nil, nil
	return m, nil
}

// ApplyMatchPatch merges the patch over the current match without validating anything.
func ApplyMatchPatch(current domain.Match, patch domain.MatchPatch) domain.Match {
	candidate := current
	if patch.Status != nil {
		candidate.Status = *patch.Status
	}
	if patch.Stage != nil {
		candidate.Stage = *patch.Stage
	}
	if patch.MatchDatetime != nil {
		candidate.MatchDatetime = *patch.MatchDatetime
	}
	if patch.Stadium != nil {
		candidate.Stadium = *patch.Stadium
	}
	if patch.HomeScore != nil {
		candidate.HomeScore = intPtr(*patch.HomeScore)
	}
	if patch.AwayScore != nil {
		candidate.AwayScore = intPtr(*patch.AwayScore)
	}
	if patch.HasExtraTime != nil {
		candidate.HasExtraTime = *patch.HasExtraTime
	}
	if patch.HasPenalties != nil {
		candidate.HasPenalties = *patch.HasPenalties
	}
	if patch.PenaltyHomeScore != nil {
		candidate.PenaltyHomeScore = intPtr(*patch.PenaltyHomeScore)
	}
	if patch.PenaltyAwayScore != nil {
		candidate.PenaltyAwayScore = intPtr(*patch.PenaltyAwayScore)
	}
	return candidate
}

// ValidateMatchUpdate resolves the patch against the current match and returns the match to persist.
// Rules run in a fixed order and the first violation is returned as a MatchUpdateError.
func ValidateMatchUpdate(current domain.Match, patch domain.MatchPatch, now time.Time) (domain.Match, error) {
	candidate := ApplyMatchPatch(current, patch)

	if candidate.Status == domain.MatchScheduled && patch.TouchesResult() {
		return domain.Match{}, matchUpdateErr("cannot set score, extra time, or penalties for a scheduled match")
	}

	if (patch.HomeScore != nil && *patch.HomeScore < 0) || (patch.AwayScore != nil && *patch.AwayScore < 0) {
		return domain.Match{}, matchUpdateErr("scores must be greater than or equal to 0")
	}

	if candidate.HasExtraTime && candidate.Stage == domain.StageGroup {
		return domain.Match{}, matchUpdateErr("extra time is not allowed for group stage matches")
	}

	if candidate.HasPenalties {
		if candidate.Stage == domain.StageGroup {
			return domain.Match{}, matchUpdateErr("penalties are not allowed for group stage matches")
		}
		if !candidate.HasExtraTime {
			return domain.Match{}, matchUpdateErr("penalties require extra time")
		}
		if msg := checkShootout(candidate.HomeScore, candidate.AwayScore, candidate.PenaltyHomeScore, candidate.PenaltyAwayScore); msg != "" {
			return domain.Match{}, &Error{Kind: KindMatchUpdate, Detail: msg}
		}
	}

	if patch.MatchDatetime != nil && patch.MatchDatetime.Before(now) {
		return domain.Match{}, matchUpdateErr("match date cannot be in the past")
	}

	if !isValidMatchTransition(current.Status, candidate.Status) {
		return domain.Match{}, matchUpdateErr("invalid status transition from %s to %s", current.Status, candidate.Status)
	}

	if candidate.Status == domain.MatchCompleted && (candidate.HomeScore == nil || candidate.AwayScore == nil) {
		return domain.Match{}, matchUpdateErr("a completed match requires both scores")
	}

	if candidate.Status == domain.MatchScheduled {
		candidate.HomeScore = nil
		candidate.AwayScore = nil
		candidate.HasExtraTime = false
		candidate.HasPenalties = false
	}
	if !candidate.HasPenalties {
		candidate.PenaltyHomeScore = nil
		candidate.PenaltyAwayScore = nil
	}

	return candidate, nil
}

// checkShootout returns an empty string when the tied score and shootout result are consistent.
func checkShootout(home, away, penHome, penAway *int) string {
	switch {
	case home == nil || away == nil:
		return "penalties require both scores to be set"
	case *home != *away:
		return "penalties are only possible when the score is tied"
	case penHome == nil || penAway == nil:
		return "both penalty scores are required when penalties are set"
	case *penHome < 0 || *penAway < 0:
		return "penalty scores must be greater than or equal to 0"
	case *penHome == *penAway:
		return "a penalty shootout cannot end in a tie"
	}
	return ""
}

func intPtr(v int) *int {
	return &v
}
