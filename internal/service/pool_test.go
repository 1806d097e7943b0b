package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/pronos-api/internal/domain"
	"github.com/vietanh2810/pronos-api/internal/repository"
	"github.com/vietanh2810/pronos-api/internal/rules"
)

func newPoolService(s *store) (*PoolService, *fakePools) {
	pools := &fakePools{store: s}
	svc := NewPoolService(pools, fakeTournaments{s}, fakeMatches{s}, &fakePredictions{store: s})
	svc.now = fixedClock
	svc.inviteCode = func() string { return "KICKOFF26" }
	return svc, pools
}

func privatePool(s *store) domain.Pool {
	p := domain.Pool{ID: 5, TournamentID: 10, CreatorID: 99, Name: "Secret", IsPrivate: true, InviteCode: "KICKOFF26", ScoringRules: domain.DefaultScoringRuleSet()}
	s.pools[5] = p
	s.participants[5] = []uint{99}
	return p
}

func TestPoolService_CreatePool(t *testing.T) {
	s := seed()
	svc, _ := newPoolService(s)

	created, err := svc.CreatePool(context.Background(), 8, domain.Pool{
		TournamentID: 10,
		Name:         "  Friday league ",
		IsPrivate:    true,
		ScoringRules: domain.DefaultScoringRuleSet(),
	})
	require.NoError(t, err)

	assert.Equal(t, uint(8), created.CreatorID)
	assert.Equal(t, "Friday league", created.Name)
	assert.Equal(t, "KICKOFF26", created.InviteCode)
	assert.Equal(t, []uint{8}, s.participants[created.ID])
}

func TestPoolService_CreatePool_Errors(t *testing.T) {
	t.Run("unknown tournament", func(t *testing.T) {
		svc, _ := newPoolService(seed())
		_, err := svc.CreatePool(context.Background(), 8, domain.Pool{TournamentID: 11, Name: "x", ScoringRules: domain.DefaultScoringRuleSet()})
		assert.ErrorIs(t, err, rules.ErrResourceNotFound)
	})

	t.Run("invalid rule set", func(t *testing.T) {
		svc, _ := newPoolService(seed())
		rs := domain.DefaultScoringRuleSet()
		rs.KnockoutMultiplier = decimal.NewFromFloat(0.5)
		_, err := svc.CreatePool(context.Background(), 8, domain.Pool{TournamentID: 10, Name: "x", ScoringRules: rs})
		assert.ErrorIs(t, err, rules.ErrValidation)
	})

	t.Run("invite code taken", func(t *testing.T) {
		svc, pools := newPoolService(seed())
		pools.createErr = repository.ErrInviteCodeExists
		_, err := svc.CreatePool(context.Background(), 8, domain.Pool{TournamentID: 10, Name: "x", IsPrivate: true, ScoringRules: domain.DefaultScoringRuleSet()})
		assert.ErrorIs(t, err, rules.ErrConflict)
	})
}

func TestPoolService_GetPool_Visibility(t *testing.T) {
	s := seed()
	privatePool(s)
	s.participants[5] = append(s.participants[5], 7)
	svc, _ := newPoolService(s)
	ctx := context.Background()

	_, err := svc.GetPool(ctx, 5, 8)
	assert.ErrorIs(t, err, rules.ErrNotParticipant)

	member, err := svc.GetPool(ctx, 5, 7)
	require.NoError(t, err)
	assert.Empty(t, member.InviteCode)

	creator, err := svc.GetPool(ctx, 5, 99)
	require.NoError(t, err)
	assert.Equal(t, "KICKOFF26", creator.InviteCode)

	_, err = svc.GetPool(ctx, 1, 8)
	assert.NoError(t, err, "public pools are visible to anyone")

	_, err = svc.GetPool(ctx, 404, 7)
	assert.ErrorIs(t, err, rules.ErrResourceNotFound)
}

func TestPoolService_JoinPool(t *testing.T) {
	s := seed()
	privatePool(s)
	svc, _ := newPoolService(s)
	ctx := context.Background()

	_, err := svc.JoinPool(ctx, 5, 7, "WRONG")
	assert.ErrorIs(t, err, rules.ErrUnauthorized)

	joined, err := svc.JoinPool(ctx, 5, 7, "KICKOFF26")
	require.NoError(t, err)
	assert.Empty(t, joined.InviteCode)
	assert.Equal(t, []uint{99, 7}, s.participants[5])

	_, err = svc.JoinPool(ctx, 5, 7, "KICKOFF26")
	assert.ErrorIs(t, err, rules.ErrConflict)

	_, err = svc.JoinPool(ctx, 404, 7, "")
	assert.ErrorIs(t, err, rules.ErrResourceNotFound)
}

func TestPoolService_JoinPool_LosesRaceForLastSeat(t *testing.T) {
	s := seed()
	svc, pools := newPoolService(s)
	pools.addErr = repository.ErrPoolFull

	_, err := svc.JoinPool(context.Background(), 1, 8, "")

	assert.ErrorIs(t, err, rules.ErrConflict)
}

func TestPoolService_JoinPool_AfterDeadline(t *testing.T) {
	s := seed()
	p := s.pools[1]
	p.RegistrationDeadline = ptr(now.Add(-time.Minute))
	s.pools[1] = p
	svc, _ := newPoolService(s)

	_, err := svc.JoinPool(context.Background(), 1, 8, "")

	assert.ErrorIs(t, err, rules.ErrConflict)
}

func TestPoolService_LeavePool(t *testing.T) {
	s := seed()
	svc, _ := newPoolService(s)
	ctx := context.Background()

	assert.ErrorIs(t, svc.LeavePool(ctx, 1, 99), rules.ErrConflict)
	assert.ErrorIs(t, svc.LeavePool(ctx, 1, 8), rules.ErrNotParticipant)

	require.NoError(t, svc.LeavePool(ctx, 1, 7))
	assert.Equal(t, []uint{99}, s.participants[1])
}

func TestPoolService_ListParticipants(t *testing.T) {
	svc, _ := newPoolService(seed())
	ctx := context.Background()

	list, err := svc.ListParticipants(ctx, 1, 7)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = svc.ListParticipants(ctx, 1, 8)
	assert.ErrorIs(t, err, rules.ErrNotParticipant)
}

func standingsStore() *store {
	s := seed()
	s.matches[1] = domain.Match{ID: 1, TournamentID: 10, Stage: domain.StageGroup, Status: domain.MatchCompleted, HomeScore: ptr(2), AwayScore: ptr(1), MatchDatetime: now.Add(-24 * time.Hour)}
	s.matches[2] = domain.Match{ID: 2, TournamentID: 10, Stage: domain.StageGroup, Status: domain.MatchScheduled, MatchDatetime: now.Add(24 * time.Hour)}
	s.predictions[1] = domain.Prediction{ID: 1, PoolID: 1, MatchID: 1, UserID: 7, PredictedHomeScore: 2, PredictedAwayScore: 1, SubmittedAt: now.Add(-48 * time.Hour)}
	s.predictions[2] = domain.Prediction{ID: 2, PoolID: 1, MatchID: 1, UserID: 99, PredictedHomeScore: 0, PredictedAwayScore: 2, SubmittedAt: now.Add(-49 * time.Hour)}
	s.predictions[3] = domain.Prediction{ID: 3, PoolID: 1, MatchID: 2, UserID: 7, PredictedHomeScore: 1, PredictedAwayScore: 1, SubmittedAt: now.Add(-48 * time.Hour)}

	s.pools[2] = domain.Pool{ID: 2, TournamentID: 10, CreatorID: 7, Name: "Solo", ScoringRules: domain.DefaultScoringRuleSet()}
	s.participants[2] = []uint{7}
	s.predictions[4] = domain.Prediction{ID: 4, PoolID: 2, MatchID: 1, UserID: 7, PredictedHomeScore: 1, PredictedAwayScore: 0, SubmittedAt: now.Add(-48 * time.Hour)}
	return s
}

func TestPoolService_GetStandings(t *testing.T) {
	svc, _ := newPoolService(standingsStore())

	standings, err := svc.GetStandings(context.Background(), 1, 7)
	require.NoError(t, err)

	require.Len(t, standings, 2)
	assert.Equal(t, uint(7), standings[0].UserID)
	assert.Equal(t, 1, standings[0].Ranking)
	assert.Equal(t, "3", standings[0].TotalPoints.String())
	assert.Equal(t, 2, standings[0].TotalPredictions)
	assert.Equal(t, uint(99), standings[1].UserID)
	assert.Equal(t, 2, standings[1].Ranking)
	assert.True(t, standings[1].TotalPoints.IsZero())
}

func TestPoolService_GetUserStandings(t *testing.T) {
	svc, _ := newPoolService(standingsStore())

	standings, err := svc.GetUserStandings(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, standings, 2)
	byPool := map[uint]string{}
	for _, st := range standings {
		assert.Equal(t, uint(7), st.UserID)
		assert.Equal(t, 1, st.Ranking)
		byPool[st.PoolID] = st.TotalPoints.String()
	}
	assert.Equal(t, map[uint]string{1: "3", 2: "2"}, byPool)
}
