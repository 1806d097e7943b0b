package rules

import (
	"github.com/shopspring/decimal"

	"github.com/vietanh2810/pronos-api/internal/domain"
)

type Outcome int

const (
	OutcomeDraw Outcome = iota
	OutcomeHomeWin
	OutcomeAwayWin
)

// ScoreResult is the points one prediction earned on one completed match.
type ScoreResult struct {
	Points        decimal.Decimal
	BasePoints    int
	BonusPoints   int
	Exact         bool
	CorrectResult bool
}

// Score computes the points a prediction earns on a completed match. It is pure: identical inputs
// always give identical output.
func Score(match domain.Match, p domain.Prediction, rs domain.ScoringRuleSet) (ScoreResult, error) {
	if match.Status != domain.MatchCompleted {
		return ScoreResult{}, newError(KindMatchStatus, "match %d is not completed and cannot be scored", match.ID)
	}
	if match.HomeScore == nil || match.AwayScore == nil {
		return ScoreResult{}, newError(KindMatchStatus, "match %d has no final score", match.ID)
	}
	home, away := *match.HomeScore, *match.AwayScore

	actual := MatchOutcome(match)
	predicted := PredictionOutcome(p)

	var res ScoreResult
	switch {
	case p.PredictedHomeScore == home && p.PredictedAwayScore == away:
		res.BasePoints = rs.ExactScorePoints
		res.Exact = true
		res.CorrectResult = true
	case predicted != actual:
		// wrong outcome, no base points
	case actual == OutcomeDraw:
		res.BasePoints = rs.CorrectDrawPoints
		res.CorrectResult = true
	default:
		res.BasePoints = rs.CorrectWinnerPoints
		if abs(p.PredictedHomeScore-p.PredictedAwayScore) == abs(home-away) {
			res.BasePoints += rs.CorrectWinnerGoalDiffPoints
		}
		res.CorrectResult = true
	}

	if match.HasPenalties && p.PredictedHasPenalties {
		if winner, ok := shootoutWinner(match.PenaltyHomeScore, match.PenaltyAwayScore); ok {
			if guess, ok := shootoutWinner(p.PredictedPenaltyHome, p.PredictedPenaltyAway); ok && guess == winner {
				res.BonusPoints = rs.SpecialEventPoints
			}
		}
	}

	res.Points = decimal.NewFromInt(int64(res.BasePoints + res.BonusPoints)).Mul(rs.Multiplier(match.Stage))
	return res, nil
}

// MaxPoints is the best score any prediction could reach on a completed match.
func MaxPoints(match domain.Match, rs domain.ScoringRuleSet) decimal.Decimal {
	best := rs.ExactScorePoints
	if MatchOutcome(match) == OutcomeDraw {
		best = max(best, rs.CorrectDrawPoints)
	} else {
		best = max(best, rs.CorrectWinnerPoints+rs.CorrectWinnerGoalDiffPoints)
	}
	if match.HasPenalties {
		best += rs.SpecialEventPoints
	}
	return decimal.NewFromInt(int64(best)).Mul(rs.Multiplier(match.Stage))
}

// MatchOutcome reads the definitive result, letting a shootout decide a tied score.
func MatchOutcome(m domain.Match) Outcome {
	if m.HomeScore == nil || m.AwayScore == nil {
		return OutcomeDraw
	}
	return outcome(*m.HomeScore, *m.AwayScore, m.HasPenalties, m.PenaltyHomeScore, m.PenaltyAwayScore)
}

func PredictionOutcome(p domain.Prediction) Outcome {
	return outcome(p.PredictedHomeScore, p.PredictedAwayScore, p.PredictedHasPenalties, p.PredictedPenaltyHome, p.PredictedPenaltyAway)
}

func outcome(home, away int, penalties bool, penHome, penAway *int) Outcome {
	switch {
	case home > away:
		return OutcomeHomeWin
	case home < away:
		return OutcomeAwayWin
	}
	if penalties {
		if winner, ok := shootoutWinner(penHome, penAway); ok {
			return winner
		}
	}
	return OutcomeDraw
}

func shootoutWinner(home, away *int) (Outcome, bool) {
	if home == nil || away == nil || *home == *away {
		return OutcomeDraw, false
	}
	if *home > *away {
		return OutcomeHomeWin, true
	}
	return OutcomeAwayWin, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
