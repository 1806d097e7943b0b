package rules

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vietanh2810/pronos-api/internal/domain"
)

var one = decimal.NewFromInt(1)

func ValidateRuleSet(rs domain.ScoringRuleSet) error {
	points := []struct {
		name  string
		value int
	}{
		{"exact_score_points", rs.ExactScorePoints},
		{"correct_winner_points", rs.CorrectWinnerPoints},
		{"correct_draw_points", rs.CorrectDrawPoints},
		{"correct_winner_goal_diff_points", rs.CorrectWinnerGoalDiffPoints},
		{"special_event_points", rs.SpecialEventPoints},
	}
	for _, p := range points {
		if p.value < 0 {
			return newError(KindValidation, "%s must be greater than or equal to 0", p.name)
		}
	}
	if rs.KnockoutMultiplier.LessThan(one) {
		return newError(KindValidation, "knockout_multiplier must be at least 1")
	}
	if rs.FinalMultiplier.LessThan(one) {
		return newError(KindValidation, "final_multiplier must be at least 1")
	}
	return nil
}

// ValidateNewPool checks a pool before it is created. Public pools lose any invite code.
func ValidateNewPool(pool domain.Pool, tournament *domain.Tournament, now time.Time) (domain.Pool, error) {
	if tournament == nil {
		return domain.Pool{}, NotFound("tournament")
	}
	pool.Name = strings.TrimSpace(pool.Name)
	if pool.Name == "" {
		return domain.Pool{}, newError(KindValidation, "pool name is required")
	}
	if tournament.Status == domain.TournamentCompleted {
		return domain.Pool{}, newError(KindValidation, "tournament %d is already completed", tournament.ID)
	}
	if pool.IsPrivate && pool.InviteCode == "" {
		return domain.Pool{}, newError(KindValidation, "a private pool requires an invite code")
	}
	if !pool.IsPrivate {
		pool.InviteCode = ""
	}
	if pool.MaxParticipants != nil && *pool.MaxParticipants < 2 {
		return domain.Pool{}, newError(KindValidation, "max_participants must be at least 2")
	}
	if pool.RegistrationDeadline != nil && pool.RegistrationDeadline.Before(now) {
		return domain.Pool{}, newError(KindValidation, "registration deadline cannot be in the past")
	}
	if err := ValidateRuleSet(pool.ScoringRules); err != nil {
		return domain.Pool{}, err
	}
	pool.TournamentID = tournament.ID
	return pool, nil
}

func ValidateJoin(pool *domain.Pool, participants []uint, userID uint, inviteCode string, now time.Time) error {
	if pool == nil {
		return NotFound("pool")
	}
	if pool.IsPrivate && pool.InviteCode != inviteCode {
		return newError(KindUnauthorized, "invalid invite code for pool %d", pool.ID)
	}
	for _, id := range participants {
		if id == userID {
			return newError(KindConflict, "user %d already participates in pool %d", userID, pool.ID)
		}
	}
	if pool.DeadlinePassed(now) {
		return newError(KindConflict, "registration for pool %d is closed", pool.ID)
	}
	if pool.MaxParticipants != nil && len(participants) >= *pool.MaxParticipants {
		return newError(KindConflict, "pool %d is full", pool.ID)
	}
	return nil
}

func ValidateLeave(pool *domain.Pool, participants []uint, userID uint) error {
	if pool == nil {
		return NotFound("pool")
	}
	if pool.CreatorID == userID {
		return newError(KindConflict, "the creator cannot leave pool %d", pool.ID)
	}
	for _, id := range participants {
		if id == userID {
			return nil
		}
	}
	return newError(KindNotParticipant, "user %d is not a participant of pool %d", userID, pool.ID)
}
