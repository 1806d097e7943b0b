package rules

import (
	"time"

	"github.com/vietanh2810/pronos-api/internal/domain"
)

// PredictionCreateInput is everything the caller loaded before a participant submits a guess.
// Nil pointers mean the lookup found nothing.
type PredictionCreateInput struct {
	User         *domain.User
	Pool         *domain.Pool
	Match        *domain.Match
	Participants []uint
	Existing     *domain.Prediction
	Draft        domain.PredictionDraft
}

type PredictionUpdateInput struct {
	ActorID  uint
	Existing *domain.Prediction
	Match    *domain.Match
	Pool     *domain.Pool
	Patch    domain.PredictionPatch
}

// ValidatePredictionCreate returns the prediction to insert or the first rule it breaks.
func ValidatePredictionCreate(in PredictionCreateInput, now time.Time) (domain.Prediction, error) {
	if in.User == nil {
		return domain.Prediction{}, NotFound("user")
	}
	if in.Pool == nil {
		return domain.Prediction{}, NotFound("pool")
	}
	if in.Match == nil || in.Match.TournamentID != in.Pool.TournamentID {
		return domain.Prediction{}, &Error{Kind: KindResourceNotFound, Detail: "Match not found in the pool"}
	}
	if !IsPoolMember(*in.Pool, in.Participants, in.User.ID) {
		return domain.Prediction{}, newError(KindNotParticipant, "user %d is not a participant of pool %d", in.User.ID, in.Pool.ID)
	}
	if in.Match.Status != domain.MatchScheduled {
		return domain.Prediction{}, newError(KindMatchStatus, "predictions can only be made for scheduled matches, match is %s", in.Match.Status)
	}
	if !in.Match.MatchDatetime.After(now) {
		return domain.Prediction{}, newError(KindMatchStatus, "the match has already started")
	}
	if in.Pool.DeadlinePassed(now) {
		return domain.Prediction{}, predictionErr("the registration deadline of this pool has passed")
	}
	if in.Existing != nil {
		return domain.Prediction{}, ErrPredictionExists
	}

	candidate := domain.Prediction{
		PoolID:                in.Pool.ID,
		MatchID:               in.Match.ID,
		UserID:                in.User.ID,
		PredictedHomeScore:    in.Draft.PredictedHomeScore,
		PredictedAwayScore:    in.Draft.PredictedAwayScore,
		PredictedHasExtraTime: in.Draft.PredictedHasExtraTime,
		PredictedHasPenalties: in.Draft.PredictedHasPenalties,
		PredictedPenaltyHome:  copyInt(in.Draft.PredictedPenaltyHome),
		PredictedPenaltyAway:  copyInt(in.Draft.PredictedPenaltyAway),
		SubmittedAt:           now,
	}
	if err := checkPredictedResult(&candidate, in.Match.Stage); err != nil {
		return domain.Prediction{}, err
	}

	return candidate, nil
}

// ValidatePredictionUpdate checks ownership and timing, merges the patch and re-checks the guess
// against the match's current stage.
func ValidatePredictionUpdate(in PredictionUpdateInput, now time.Time) (domain.Prediction, error) {
	if in.Existing == nil {
		return domain.Prediction{}, NotFound("prediction")
	}
	if in.Existing.UserID != in.ActorID {
		return domain.Prediction{}, newError(KindUnauthorized, "user %d does not own prediction %d", in.ActorID, in.Existing.ID)
	}
	if in.Match == nil {
		return domain.Prediction{}, NotFound("match")
	}
	if in.Pool == nil {
		return domain.Prediction{}, NotFound("pool")
	}
	if in.Match.Status != domain.MatchScheduled {
		return domain.Prediction{}, newError(KindMatchStatus, "predictions can only be updated for scheduled matches, match is %s", in.Match.Status)
	}
	if !in.Match.MatchDatetime.After(now) {
		return domain.Prediction{}, newError(KindMatchStatus, "cannot update a prediction once the match has started")
	}
	if in.Pool.DeadlinePassed(now) {
		return domain.Prediction{}, predictionErr("the registration deadline of this pool has passed")
	}

	candidate := ApplyPredictionPatch(*in.Existing, in.Patch)
	if err := checkPredictedResult(&candidate, in.Match.Stage); err != nil {
		return domain.Prediction{}, err
	}
	candidate.UpdatedAt = &now

	return candidate, nil
}

func ApplyPredictionPatch(current domain.Prediction, patch domain.PredictionPatch) domain.Prediction {
	candidate := current
	if patch.PredictedHomeScore != nil {
		candidate.PredictedHomeScore = *patch.PredictedHomeScore
	}
	if patch.PredictedAwayScore != nil {
		candidate.PredictedAwayScore = *patch.PredictedAwayScore
	}
	if patch.PredictedHasExtraTime != nil {
		candidate.PredictedHasExtraTime = *patch.PredictedHasExtraTime
	}
	if patch.PredictedHasPenalties != nil {
		candidate.PredictedHasPenalties = *patch.PredictedHasPenalties
	}
	if patch.PredictedPenaltyHome != nil {
		candidate.PredictedPenaltyHome = copyInt(patch.PredictedPenaltyHome)
	}
	if patch.PredictedPenaltyAway != nil {
		candidate.PredictedPenaltyAway = copyInt(patch.PredictedPenaltyAway)
	}
	return candidate
}

// checkPredictedResult applies the match consistency rules to the predicted values and
// drops penalty scores when no shootout is predicted.
func checkPredictedResult(p *domain.Prediction, stage domain.MatchStage) error {
	if p.PredictedHomeScore < 0 || p.PredictedAwayScore < 0 {
		return newError(KindInvalidScore, "predicted scores must be greater than or equal to 0")
	}
	if p.PredictedHasExtraTime && stage == domain.StageGroup {
		return predictionErr("extra time can only be predicted for knockout matches")
	}
	if p.PredictedHasPenalties {
		if !p.PredictedHasExtraTime {
			return predictionErr("predicting penalties requires predicting extra time")
		}
		home, away := p.PredictedHomeScore, p.PredictedAwayScore
		if msg := checkShootout(&home, &away, p.PredictedPenaltyHome, p.PredictedPenaltyAway); msg != "" {
			return &Error{Kind: KindPrediction, Detail: msg}
		}
	} else {
		p.PredictedPenaltyHome = nil
		p.PredictedPenaltyAway = nil
	}
	return nil
}

// IsPoolMember treats the pool creator as a member even without a participant row.
func IsPoolMember(pool domain.Pool, participants []uint, userID uint) bool {
	if pool.CreatorID == userID {
		return true
	}
	for _, id := range participants {
		if id == userID {
			return true
		}
	}
	return false
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	return intPtr(*v)
}
