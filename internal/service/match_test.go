package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/pronos-api/internal/domain"
	"github.com/vietanh2810/pronos-api/internal/rules"
)

func newMatchService(s *store, notifier StandingsNotifier) *MatchService {
	svc := NewMatchService(fakeMatches{s}, fakeTournaments{s}, &fakePredictions{store: s}, &fakePools{store: s}, notifier)
	svc.now = fixedClock
	return svc
}

func TestMatchService_CreateMatch(t *testing.T) {
	s := seed()
	svc := newMatchService(s, nil)

	created, err := svc.CreateMatch(context.Background(), domain.Match{
		TournamentID:  10,
		HomeTeamID:    1,
		AwayTeamID:    2,
		MatchDatetime: now.Add(24 * time.Hour),
		Stadium:       "Estadio Azteca",
		Stage:         domain.StageGroup,
		HomeScore:     ptr(4),
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, domain.MatchScheduled, created.Status)
	assert.Nil(t, created.HomeScore)
	assert.Contains(t, s.matches, created.ID)
}

func TestMatchService_CreateMatch_UnknownReferences(t *testing.T) {
	svc := newMatchService(seed(), nil)
	base := domain.Match{
		TournamentID:  10,
		HomeTeamID:    1,
		AwayTeamID:    2,
		MatchDatetime: now.Add(24 * time.Hour),
		Stage:         domain.StageGroup,
	}

	unknownTeam := base
	unknownTeam.AwayTeamID = 42
	_, err := svc.CreateMatch(context.Background(), unknownTeam)
	assert.ErrorIs(t, err, rules.ErrResourceNotFound)
	assert.EqualError(t, err, "team not found")

	unknownTournament := base
	unknownTournament.TournamentID = 11
	_, err = svc.CreateMatch(context.Background(), unknownTournament)
	assert.EqualError(t, err, "tournament not found")
}

func TestMatchService_UpdateMatch_NotFound(t *testing.T) {
	svc := newMatchService(seed(), nil)

	_, err := svc.UpdateMatch(context.Background(), 404, domain.MatchPatch{})

	assert.ErrorIs(t, err, rules.ErrResourceNotFound)
}

func TestMatchService_UpdateMatch_RejectsInvalidPatch(t *testing.T) {
	s := seed()
	s.matches[1] = domain.Match{ID: 1, TournamentID: 10, HomeTeamID: 1, AwayTeamID: 2, Stage: domain.StageGroup, Status: domain.MatchScheduled, MatchDatetime: now.Add(time.Hour)}
	svc := newMatchService(s, nil)

	_, err := svc.UpdateMatch(context.Background(), 1, domain.MatchPatch{HomeScore: ptr(1)})

	assert.ErrorIs(t, err, rules.ErrMatchUpdate)
	assert.Nil(t, s.matches[1].HomeScore)
}

func TestMatchService_UpdateMatch_CompletionScoresPredictions(t *testing.T) {
	s := seed()
	s.matches[1] = domain.Match{ID: 1, TournamentID: 10, HomeTeamID: 1, AwayTeamID: 2, Stage: domain.StageGroup, Status: domain.MatchInProgress, MatchDatetime: now.Add(-time.Hour)}

	custom := domain.DefaultScoringRuleSet()
	custom.ExactScorePoints = 5
	custom.CorrectWinnerPoints = 2
	s.pools[2] = domain.Pool{ID: 2, TournamentID: 10, CreatorID: 8, Name: "Family", ScoringRules: custom}

	s.predictions[1] = domain.Prediction{ID: 1, PoolID: 1, MatchID: 1, UserID: 7, PredictedHomeScore: 2, PredictedAwayScore: 1}
	s.predictions[2] = domain.Prediction{ID: 2, PoolID: 2, MatchID: 1, UserID: 8, PredictedHomeScore: 1, PredictedAwayScore: 0}
	s.predictions[3] = domain.Prediction{ID: 3, PoolID: 1, MatchID: 1, UserID: 99, PredictedHomeScore: 0, PredictedAwayScore: 0}
	s.predictions[4] = domain.Prediction{ID: 4, PoolID: 1, MatchID: 2, UserID: 7, PredictedHomeScore: 1, PredictedAwayScore: 0}

	notifier := &recordingNotifier{}
	svc := newMatchService(s, notifier)

	completed := domain.MatchCompleted
	updated, err := svc.UpdateMatch(context.Background(), 1, domain.MatchPatch{
		Status:    &completed,
		HomeScore: ptr(2),
		AwayScore: ptr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MatchCompleted, updated.Status)

	points := func(id uint) string {
		p := s.predictions[id]
		require.NotNil(t, p.PointsEarned, "prediction %d", id)
		return p.PointsEarned.String()
	}
	assert.Equal(t, "3", points(1))
	assert.Equal(t, "3", points(2))
	assert.Equal(t, "0", points(3))
	assert.Nil(t, s.predictions[4].PointsEarned)

	assert.Equal(t, []uint{1, 2}, notifier.pools)
}

func TestMatchService_UpdateMatch_RescoresCorrection(t *testing.T) {
	s := seed()
	s.matches[1] = domain.Match{ID: 1, TournamentID: 10, HomeTeamID: 1, AwayTeamID: 2, Stage: domain.StageGroup, Status: domain.MatchCompleted, HomeScore: ptr(2), AwayScore: ptr(1), MatchDatetime: now.Add(-3 * time.Hour)}
	stale := decimal.NewFromInt(3)
	s.predictions[1] = domain.Prediction{ID: 1, PoolID: 1, MatchID: 1, UserID: 7, PredictedHomeScore: 2, PredictedAwayScore: 1, PointsEarned: &stale}
	svc := newMatchService(s, nil)

	_, err := svc.UpdateMatch(context.Background(), 1, domain.MatchPatch{AwayScore: ptr(2)})
	require.NoError(t, err)

	assert.Equal(t, "0", s.predictions[1].PointsEarned.String())
}

func TestMatchService_UpdateMatch_KickoffDoesNotScore(t *testing.T) {
	s := seed()
	s.matches[1] = domain.Match{ID: 1, TournamentID: 10, HomeTeamID: 1, AwayTeamID: 2, Stage: domain.StageGroup, Status: domain.MatchScheduled, MatchDatetime: now.Add(-time.Minute)}
	s.predictions[1] = domain.Prediction{ID: 1, PoolID: 1, MatchID: 1, UserID: 7}
	notifier := &recordingNotifier{}
	svc := newMatchService(s, notifier)

	started := domain.MatchInProgress
	updated, err := svc.UpdateMatch(context.Background(), 1, domain.MatchPatch{Status: &started})
	require.NoError(t, err)

	assert.Equal(t, domain.MatchInProgress, updated.Status)
	assert.Nil(t, s.predictions[1].PointsEarned)
	assert.Empty(t, notifier.pools)
}

func TestMatchService_UpdateMatch_ScoringFailureKeepsResult(t *testing.T) {
	s := seed()
	s.matches[1] = domain.Match{ID: 1, TournamentID: 10, HomeTeamID: 1, AwayTeamID: 2, Stage: domain.StageGroup, Status: domain.MatchInProgress, MatchDatetime: now.Add(-time.Hour)}
	s.predictions[1] = domain.Prediction{ID: 1, PoolID: 1, MatchID: 1, UserID: 7, PredictedHomeScore: 2, PredictedAwayScore: 1}
	notifier := &recordingNotifier{}

	svc := NewMatchService(fakeMatches{s}, fakeTournaments{s}, &fakePredictions{store: s, pointsErr: assert.AnError}, &fakePools{store: s}, notifier)
	svc.now = fixedClock

	completed := domain.MatchCompleted
	updated, err := svc.UpdateMatch(context.Background(), 1, domain.MatchPatch{
		Status:    &completed,
		HomeScore: ptr(2),
		AwayScore: ptr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MatchCompleted, updated.Status)
	assert.Equal(t, domain.MatchCompleted, s.matches[1].Status)
	assert.Nil(t, s.predictions[1].PointsEarned)
	assert.Empty(t, notifier.pools)
}
