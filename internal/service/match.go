package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vietanh2810/pronos-api/internal/domain"
	"github.com/vietanh2810/pronos-api/internal/repository"
	"github.com/vietanh2810/pronos-api/internal/rules"
)

var (
	ErrMatchNotFound = repository.ErrMatchNotFound
)

type MatchRepository interface {
	Create(ctx context.Context, m domain.Match) (domain.Match, error)
	FindByID(ctx context.Context, id uint) (domain.Match, error)
	FindByTournamentID(ctx context.Context, tournamentID uint) ([]domain.Match, error)
	Update(ctx context.Context, id uint, m domain.Match) (domain.Match, error)
}

type MatchTournamentRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Tournament, error)
	FindTeamByID(ctx context.Context, id uint) (domain.Team, error)
}

type ScoredPredictionRepository interface {
	FindByMatchID(ctx context.Context, matchID uint) ([]domain.Prediction, error)
	UpdatePoints(ctx context.Context, points map[uint]decimal.Decimal) error
}

type RuleSetRepository interface {
	GetScoringRuleSet(ctx context.Context, poolID uint) (domain.ScoringRuleSet, error)
}

// StandingsNotifier is told which pools have new standings after a match is scored.
type StandingsNotifier interface {
	Notify(poolID uint)
}

type MatchService struct {
	matches     MatchRepository
	tournaments MatchTournamentRepository
	predictions ScoredPredictionRepository
	ruleSets    RuleSetRepository
	notifier    StandingsNotifier
	now         func() time.Time
}

func NewMatchService(
	matches MatchRepository,
	tournaments MatchTournamentRepository,
	predictions ScoredPredictionRepository,
	ruleSets RuleSetRepository,
	notifier StandingsNotifier,
) *MatchService {
	return &MatchService{
		matches:     matches,
		tournaments: tournaments,
		predictions: predictions,
		ruleSets:    ruleSets,
		notifier:    notifier,
		now:         time.Now,
	}
}

func (s *MatchService) CreateMatch(ctx context.Context, m domain.Match) (domain.Match, error) {
	t, err := s.tournaments.FindByID(ctx, m.TournamentID)
	tournament, err := optional(t, err, repository.ErrTournamentNotFound)
	if err != nil {
		return domain.Match{}, fmt.Errorf("s.tournaments.FindByID -> %w", err)
	}

	for _, teamID := range []uint{m.HomeTeamID, m.AwayTeamID} {
		if teamID == 0 {
			continue
		}
		if _, err := s.tournaments.FindTeamByID(ctx, teamID); err != nil {
			if errors.Is(err, repository.ErrTeamNotFound) {
				return domain.Match{}, rules.NotFound("team")
			}
			return domain.Match{}, fmt.Errorf("s.tournaments.FindTeamByID -> %w", err)
		}
	}

	validated, err := rules.ValidateNewMatch(m, tournament, s.now())
	if err != nil {
		return domain.Match{}, err
	}

	created, err := s.matches.Create(ctx, validated)
	if err != nil {
		return domain.Match{}, fmt.Errorf("s.matches.Create -> %w", err)
	}

	return created, nil
}

func (s *MatchService) GetMatch(ctx context.Context, id uint) (domain.Match, error) {
	m, err := s.matches.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return domain.Match{}, rules.NotFound("match")
		}
		return domain.Match{}, fmt.Errorf("s.matches.FindByID -> %w", err)
	}

	return m, nil
}

func (s *MatchService) ListByTournament(ctx context.Context, tournamentID uint) ([]domain.Match, error) {
	matches, err := s.matches.FindByTournamentID(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("s.matches.FindByTournamentID -> %w", err)
	}

	return matches, nil
}

// UpdateMatch validates and stores a match change. Completing a match scores every prediction
// made on it and tells the notifier which pools moved. Scoring failures are logged, not returned.
func (s *MatchService) UpdateMatch(ctx context.Context, id uint, patch domain.MatchPatch) (domain.Match, error) {
	current, err := s.GetMatch(ctx, id)
	if err != nil {
		return domain.Match{}, err
	}

	validated, err := rules.ValidateMatchUpdate(current, patch, s.now())
	if err != nil {
		return domain.Match{}, err
	}

	updated, err := s.matches.Update(ctx, id, validated)
	if err != nil {
		return domain.Match{}, fmt.Errorf("s.matches.Update -> %w", err)
	}

	if updated.Status != domain.MatchCompleted {
		return updated, nil
	}

	// The match change is already stored; pointsEarned stays stale until the next correction.
	pools, err := s.scorePredictions(ctx, updated)
	if err != nil {
		zap.L().Error("failed to score match predictions", zap.Uint("match_id", updated.ID), zap.Error(err))
		return updated, nil
	}
	if s.notifier != nil {
		for _, poolID := range pools {
			s.notifier.Notify(poolID)
		}
	}

	return updated, nil
}

// scorePredictions writes pointsEarned for every prediction on the match and returns the
// affected pool IDs in ascending order.
func (s *MatchService) scorePredictions(ctx context.Context, match domain.Match) ([]uint, error) {
	predictions, err := s.predictions.FindByMatchID(ctx, match.ID)
	if err != nil {
		return nil, fmt.Errorf("s.predictions.FindByMatchID -> %w", err)
	}

	ruleSets := make(map[uint]domain.ScoringRuleSet)
	points := make(map[uint]decimal.Decimal, len(predictions))
	pools := make([]uint, 0)
	for _, p := range predictions {
		rs, ok := ruleSets[p.PoolID]
		if !ok {
			rs, err = s.ruleSets.GetScoringRuleSet(ctx, p.PoolID)
			if err != nil {
				return nil, fmt.Errorf("s.ruleSets.GetScoringRuleSet -> %w", err)
			}
			ruleSets[p.PoolID] = rs
			pools = append(pools, p.PoolID)
		}

		result, err := rules.Score(match, p, rs)
		if err != nil {
			return nil, err
		}
		points[p.ID] = result.Points
	}

	if len(points) > 0 {
		if err := s.predictions.UpdatePoints(ctx, points); err != nil {
			return nil, fmt.Errorf("s.predictions.UpdatePoints -> %w", err)
		}
	}
	slices.Sort(pools)

	zap.L().Info("match scored",
		zap.Uint("match_id", match.ID),
		zap.Int("predictions", len(points)),
		zap.Int("pools", len(pools)),
	)

	return pools, nil
}
