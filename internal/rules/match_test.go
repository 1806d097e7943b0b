package rules_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/pronos-api/internal/domain"
	"github.com/vietanh2810/pronos-api/internal/rules"
)

func scheduledMatch(stage domain.MatchStage) domain.Match {
	return domain.Match{
		ID:            1,
		TournamentID:  10,
		HomeTeamID:    1,
		AwayTeamID:    2,
		MatchDatetime: now.Add(48 * time.Hour),
		Stadium:       "Estadio Azteca",
		Stage:         stage,
		Status:        domain.MatchScheduled,
	}
}

func liveMatch(stage domain.MatchStage) domain.Match {
	m := scheduledMatch(stage)
	m.MatchDatetime = now.Add(-90 * time.Minute)
	m.Status = domain.MatchInProgress
	return m
}

func TestValidateMatchUpdate_Violations(t *testing.T) {
	completedWithPenalties := liveMatch(domain.StageQuarterFinal)
	completedWithPenalties.Status = domain.MatchCompleted
	completedWithPenalties.HomeScore = ptr(1)
	completedWithPenalties.AwayScore = ptr(1)
	completedWithPenalties.HasExtraTime = true
	completedWithPenalties.HasPenalties = true
	completedWithPenalties.PenaltyHomeScore = ptr(4)
	completedWithPenalties.PenaltyAwayScore = ptr(3)

	tests := []struct {
		name    string
		current domain.Match
		patch   domain.MatchPatch
		detail  string
	}{
		{
			name:    "score on a scheduled match",
			current: scheduledMatch(domain.StageGroup),
			patch:   domain.MatchPatch{HomeScore: ptr(1)},
			detail:  "cannot set score, extra time, or penalties for a scheduled match",
		},
		{
			name:    "extra time kept while stage moves to group",
			current: liveMatch(domain.StageFinal),
			patch:   domain.MatchPatch{Status: ptr(domain.MatchPostponed), HasExtraTime: ptr(true), Stage: ptr(domain.StageGroup)},
			detail:  "extra time is not allowed for group stage matches",
		},
		{
			name:    "negative score",
			current: liveMatch(domain.StageGroup),
			patch:   domain.MatchPatch{HomeScore: ptr(-1), AwayScore: ptr(0)},
			detail:  "scores must be greater than or equal to 0",
		},
		{
			name:    "extra time in group stage",
			current: liveMatch(domain.StageGroup),
			patch:   domain.MatchPatch{HasExtraTime: ptr(true)},
			detail:  "extra time is not allowed for group stage matches",
		},
		{
			name: "stage moved to group keeps extra time",
			current: func() domain.Match {
				m := liveMatch(domain.StageRoundOf16)
				m.HasExtraTime = true
				return m
			}(),
			patch:  domain.MatchPatch{Stage: ptr(domain.StageGroup)},
			detail: "extra time is not allowed for group stage matches",
		},
		{
			name:    "penalties in group stage",
			current: liveMatch(domain.StageGroup),
			patch:   domain.MatchPatch{HasPenalties: ptr(true)},
			detail:  "penalties are not allowed for group stage matches",
		},
		{
			name:    "penalties without extra time",
			current: liveMatch(domain.StageSemiFinal),
			patch: domain.MatchPatch{
				HomeScore: ptr(1), AwayScore: ptr(1), HasPenalties: ptr(true),
				PenaltyHomeScore: ptr(4), PenaltyAwayScore: ptr(2),
			},
			detail: "penalties require extra time",
		},
		{
			name:    "penalties on an untied score",
			current: liveMatch(domain.StageSemiFinal),
			patch: domain.MatchPatch{
				HomeScore: ptr(2), AwayScore: ptr(1), HasExtraTime: ptr(true), HasPenalties: ptr(true),
				PenaltyHomeScore: ptr(4), PenaltyAwayScore: ptr(2),
			},
			detail: "penalties are only possible when the score is tied",
		},
		{
			name:    "penalties without scores",
			current: liveMatch(domain.StageSemiFinal),
			patch: domain.MatchPatch{
				HasExtraTime: ptr(true), HasPenalties: ptr(true), PenaltyHomeScore: ptr(4), PenaltyAwayScore: ptr(2),
			},
			detail: "penalties require both scores to be set",
		},
		{
			name:    "missing penalty score",
			current: liveMatch(domain.StageFinal),
			patch: domain.MatchPatch{
				HomeScore: ptr(0), AwayScore: ptr(0), HasExtraTime: ptr(true), HasPenalties: ptr(true),
				PenaltyHomeScore: ptr(4),
			},
			detail: "both penalty scores are required when penalties are set",
		},
		{
			name:    "negative penalty score",
			current: liveMatch(domain.StageFinal),
			patch: domain.MatchPatch{
				HomeScore: ptr(0), AwayScore: ptr(0), HasExtraTime: ptr(true), HasPenalties: ptr(true),
				PenaltyHomeScore: ptr(-1), PenaltyAwayScore: ptr(3),
			},
			detail: "penalty scores must be greater than or equal to 0",
		},
		{
			name:    "tied shootout",
			current: liveMatch(domain.StageFinal),
			patch: domain.MatchPatch{
				HomeScore: ptr(2), AwayScore: ptr(2), HasExtraTime: ptr(true), HasPenalties: ptr(true),
				PenaltyHomeScore: ptr(5), PenaltyAwayScore: ptr(5),
			},
			detail: "a penalty shootout cannot end in a tie",
		},
		{
			name:    "kickoff moved into the past",
			current: scheduledMatch(domain.StageGroup),
			patch:   domain.MatchPatch{MatchDatetime: ptr(now.Add(-time.Minute))},
			detail:  "match date cannot be in the past",
		},
		{
			name:    "completed match reopened",
			current: completedWithPenalties,
			patch:   domain.MatchPatch{Status: ptr(domain.MatchInProgress)},
			detail:  "invalid status transition from COMPLETED to IN_PROGRESS",
		},
		{
			name:    "completed without a result",
			current: liveMatch(domain.StageGroup),
			patch:   domain.MatchPatch{Status: ptr(domain.MatchCompleted)},
			detail:  "a completed match requires both scores",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rules.ValidateMatchUpdate(tt.current, tt.patch, now)

			rerr := requireKind(t, err, rules.KindMatchUpdate)
			assert.Equal(t, tt.detail, rerr.Detail)
			assert.ErrorIs(t, err, rules.ErrMatchUpdate)
		})
	}
}

func TestValidateMatchUpdate_CompletesWithPenalties(t *testing.T) {
	current := liveMatch(domain.StageFinal)

	got, err := rules.ValidateMatchUpdate(current, domain.MatchPatch{
		Status:           ptr(domain.MatchCompleted),
		HomeScore:        ptr(1),
		AwayScore:        ptr(1),
		HasExtraTime:     ptr(true),
		HasPenalties:     ptr(true),
		PenaltyHomeScore: ptr(5),
		PenaltyAwayScore: ptr(4),
	}, now)
	require.NoError(t, err)

	assert.Equal(t, domain.MatchCompleted, got.Status)
	assert.Equal(t, 1, *got.HomeScore)
	assert.Equal(t, 1, *got.AwayScore)
	assert.True(t, got.HasExtraTime)
	assert.True(t, got.HasPenalties)
	assert.Equal(t, 5, *got.PenaltyHomeScore)
	assert.Equal(t, 4, *got.PenaltyAwayScore)
	assert.Equal(t, current.Stadium, got.Stadium)
	assert.Equal(t, current.MatchDatetime, got.MatchDatetime)
	assert.Equal(t, domain.MatchInProgress, current.Status, "current match must not be mutated")
}

func TestValidateMatchUpdate_ResultCorrectionDropsShootout(t *testing.T) {
	current := liveMatch(domain.StageRoundOf16)
	current.Status = domain.MatchCompleted
	current.HomeScore = ptr(2)
	current.AwayScore = ptr(2)
	current.HasExtraTime = true
	current.HasPenalties = true
	current.PenaltyHomeScore = ptr(3)
	current.PenaltyAwayScore = ptr(1)

	got, err := rules.ValidateMatchUpdate(current, domain.MatchPatch{
		HomeScore:    ptr(3),
		HasPenalties: ptr(false),
	}, now)
	require.NoError(t, err)

	assert.False(t, got.HasPenalties)
	assert.Nil(t, got.PenaltyHomeScore)
	assert.Nil(t, got.PenaltyAwayScore)
	assert.Equal(t, 3, *got.HomeScore)
}

func TestValidateMatchUpdate_RescheduleClearsResult(t *testing.T) {
	current := liveMatch(domain.StageSemiFinal)
	current.Status = domain.MatchPostponed
	current.HomeScore = ptr(1)
	current.AwayScore = ptr(0)
	current.HasExtraTime = true

	newKickoff := now.Add(72 * time.Hour)
	got, err := rules.ValidateMatchUpdate(current, domain.MatchPatch{
		Status:        ptr(domain.MatchScheduled),
		MatchDatetime: &newKickoff,
	}, now)
	require.NoError(t, err)

	assert.Equal(t, domain.MatchScheduled, got.Status)
	assert.Nil(t, got.HomeScore)
	assert.Nil(t, got.AwayScore)
	assert.False(t, got.HasExtraTime)
	assert.False(t, got.HasPenalties)
	assert.Equal(t, newKickoff, got.MatchDatetime)
}

func TestValidateMatchUpdate_GroupMatchesNeverCarryExtraTime(t *testing.T) {
	patches := []domain.MatchPatch{
		{Status: ptr(domain.MatchCompleted), HomeScore: ptr(2), AwayScore: ptr(2)},
		{Status: ptr(domain.MatchCompleted), HomeScore: ptr(2), AwayScore: ptr(2), HasExtraTime: ptr(true)},
		{Status: ptr(domain.MatchCompleted), HomeScore: ptr(2), AwayScore: ptr(2), HasExtraTime: ptr(true), HasPenalties: ptr(true), PenaltyHomeScore: ptr(3), PenaltyAwayScore: ptr(2)},
		{HasPenalties: ptr(true), PenaltyHomeScore: ptr(3), PenaltyAwayScore: ptr(2)},
	}

	for _, patch := range patches {
		got, err := rules.ValidateMatchUpdate(liveMatch(domain.StageGroup), patch, now)
		if err != nil {
			assert.ErrorIs(t, err, rules.ErrMatchUpdate)
			continue
		}
		assert.False(t, got.HasExtraTime)
		assert.False(t, got.HasPenalties)
	}
}

func TestApplyMatchPatch_CopiesPointers(t *testing.T) {
	home := 2
	got := rules.ApplyMatchPatch(liveMatch(domain.StageGroup), domain.MatchPatch{HomeScore: &home})
	home = 7

	assert.Equal(t, 2, *got.HomeScore)
}

func TestValidateNewMatch(t *testing.T) {
	tournament := &domain.Tournament{ID: 10, Status: domain.TournamentActive}
	draft := domain.Match{
		HomeTeamID:    1,
		AwayTeamID:    2,
		MatchDatetime: now.Add(time.Hour),
		Stage:         domain.StageQuarterFinal,
		Status:        domain.MatchCompleted,
		HomeScore:     ptr(3),
	}

	got, err := rules.ValidateNewMatch(draft, tournament, now)
	require.NoError(t, err)
	assert.Equal(t, uint(10), got.TournamentID)
	assert.Equal(t, domain.MatchScheduled, got.Status)
	assert.Nil(t, got.HomeScore)

	sameTeams := draft
	sameTeams.AwayTeamID = 1
	_, err = rules.ValidateNewMatch(sameTeams, tournament, now)
	requireKind(t, err, rules.KindValidation)

	unknownStage := draft
	unknownStage.Stage = "PLAYOFF"
	_, err = rules.ValidateNewMatch(unknownStage, tournament, now)
	requireKind(t, err, rules.KindValidation)

	past := draft
	past.MatchDatetime = now.Add(-time.Hour)
	_, err = rules.ValidateNewMatch(past, tournament, now)
	requireKind(t, err, rules.KindMatchUpdate)

	_, err = rules.ValidateNewMatch(draft, nil, now)
	requireKind(t, err, rules.KindResourceNotFound)
}
