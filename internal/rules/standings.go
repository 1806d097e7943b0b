package rules

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vietanh2810/pronos-api/internal/domain"
)

// PoolSnapshot is the read-only data a standings computation folds over.
type PoolSnapshot struct {
	Pool        domain.Pool
	Matches     []domain.Match
	Predictions []domain.Prediction
}

type userTally struct {
	userID             uint
	totalPredictions   int
	completedSubmitted int
	points             decimal.Decimal
	exact              int
	correct            int
	firstSubmitted     time.Time
	scoring            bool
}

// ComputeStandings ranks every user holding at least one prediction on a completed match.
// The result does not depend on the order of the input predictions.
func ComputeStandings(s PoolSnapshot) []domain.Standing {
	rs := s.Pool.ScoringRules

	matches := make(map[uint]domain.Match, len(s.Matches))
	completed := 0
	maxPossible := decimal.Zero
	for _, m := range s.Matches {
		if m.TournamentID != s.Pool.TournamentID {
			continue
		}
		matches[m.ID] = m
		if m.Status == domain.MatchCompleted {
			completed++
			maxPossible = maxPossible.Add(MaxPoints(m, rs))
		}
	}
	if completed == 0 || len(s.Predictions) == 0 {
		return []domain.Standing{}
	}

	tallies := make(map[uint]*userTally)
	for _, p := range s.Predictions {
		if p.PoolID != s.Pool.ID {
			continue
		}
		m, ok := matches[p.MatchID]
		if !ok {
			continue
		}

		t, ok := tallies[p.UserID]
		if !ok {
			t = &userTally{userID: p.UserID, points: decimal.Zero, firstSubmitted: p.SubmittedAt}
			tallies[p.UserID] = t
		}
		t.totalPredictions++
		if p.SubmittedAt.Before(t.firstSubmitted) {
			t.firstSubmitted = p.SubmittedAt
		}

		if m.Status != domain.MatchCompleted {
			continue
		}
		res, err := Score(m, p, rs)
		if err != nil {
			continue
		}
		t.scoring = true
		t.completedSubmitted++
		t.points = t.points.Add(res.Points)
		if res.Exact {
			t.exact++
		}
		if res.CorrectResult {
			t.correct++
		}
	}

	completedCount := decimal.NewFromInt(int64(completed))
	standings := make([]domain.Standing, 0, len(tallies))
	for _, t := range tallies {
		if !t.scoring {
			continue
		}
		standings = append(standings, domain.Standing{
			UserID:             t.userID,
			PoolID:             s.Pool.ID,
			TotalPredictions:   t.totalPredictions,
			TotalPoints:        t.points,
			ExactScoreCount:    t.exact,
			CorrectResultCount: t.correct,
			PointsRatio:        ratio(t.points, maxPossible),
			CorrectResultRatio: ratio(decimal.NewFromInt(int64(t.correct)), completedCount),
			SubmittedRatio:     ratio(decimal.NewFromInt(int64(t.completedSubmitted)), completedCount),
			FirstSubmittedAt:   t.firstSubmitted,
		})
	}

	slices.SortFunc(standings, compareStandings)
	for i := range standings {
		if i > 0 && sameScore(standings[i-1], standings[i]) {
			standings[i].Ranking = standings[i-1].Ranking
			continue
		}
		standings[i].Ranking = i + 1
	}

	return standings
}

// ComputeUserStandings returns the user's row from every pool snapshot where the user scored.
func ComputeUserStandings(userID uint, snapshots []PoolSnapshot) []domain.Standing {
	result := make([]domain.Standing, 0, len(snapshots))
	for _, s := range snapshots {
		for _, st := range ComputeStandings(s) {
			if st.UserID == userID {
				result = append(result, st)
				break
			}
		}
	}
	return result
}

func compareStandings(a, b domain.Standing) int {
	if c := b.TotalPoints.Cmp(a.TotalPoints); c != 0 {
		return c
	}
	if c := cmp.Compare(b.ExactScoreCount, a.ExactScoreCount); c != 0 {
		return c
	}
	if c := a.FirstSubmittedAt.Compare(b.FirstSubmittedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.UserID, b.UserID)
}

// sameScore decides rank ties; submission time orders rows but never splits a rank.
func sameScore(a, b domain.Standing) bool {
	return a.TotalPoints.Equal(b.TotalPoints) && a.ExactScoreCount == b.ExactScoreCount
}

func ratio(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole)
}
