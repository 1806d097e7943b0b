package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vietanh2810/pronos-api/internal/domain"
	"github.com/vietanh2810/pronos-api/internal/repository"
	"github.com/vietanh2810/pronos-api/internal/rules"
)

var (
	ErrPredictionNotFound = repository.ErrPredictionNotFound
)

type PredictionRepository interface {
	Create(ctx context.Context, p domain.Prediction) (domain.Prediction, error)
	FindByID(ctx context.Context, id uint) (domain.Prediction, error)
	FindByUserMatchPool(ctx context.Context, userID, matchID, poolID uint) (domain.Prediction, error)
	Update(ctx context.Context, id uint, p domain.Prediction) (domain.Prediction, error)
	FindByPoolAndUser(ctx context.Context, poolID, userID uint) ([]domain.Prediction, error)
}

type PredictionPoolRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Pool, error)
	GetParticipants(ctx context.Context, poolID uint) ([]uint, error)
}

type PredictionMatchRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Match, error)
}

type PredictionService struct {
	predictions PredictionRepository
	users       UserRepository
	pools       PredictionPoolRepository
	matches     PredictionMatchRepository
	now         func() time.Time
}

func NewPredictionService(
	predictions PredictionRepository,
	users UserRepository,
	pools PredictionPoolRepository,
	matches PredictionMatchRepository,
) *PredictionService {
	return &PredictionService{
		predictions: predictions,
		users:       users,
		pools:       pools,
		matches:     matches,
		now:         time.Now,
	}
}

// CreatePrediction records userID's guess for a match of the pool.
func (s *PredictionService) CreatePrediction(ctx context.Context, userID, poolID, matchID uint, draft domain.PredictionDraft) (domain.Prediction, error) {
	in := rules.PredictionCreateInput{Draft: draft}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.users.FindByID(gctx, userID)
		in.User, err = optional(u, err, repository.ErrUserNotFound)
		if err != nil {
			return fmt.Errorf("s.users.FindByID -> %w", err)
		}
		return nil
	})
	g.Go(func() error {
		p, err := s.pools.FindByID(gctx, poolID)
		in.Pool, err = optional(p, err, repository.ErrPoolNotFound)
		if err != nil {
			return fmt.Errorf("s.pools.FindByID -> %w", err)
		}
		return nil
	})
	g.Go(func() error {
		m, err := s.matches.FindByID(gctx, matchID)
		in.Match, err = optional(m, err, repository.ErrMatchNotFound)
		if err != nil {
			return fmt.Errorf("s.matches.FindByID -> %w", err)
		}
		return nil
	})
	g.Go(func() error {
		participants, err := s.pools.GetParticipants(gctx, poolID)
		if err != nil {
			return fmt.Errorf("s.pools.GetParticipants -> %w", err)
		}
		in.Participants = participants
		return nil
	})
	g.Go(func() error {
		p, err := s.predictions.FindByUserMatchPool(gctx, userID, matchID, poolID)
		in.Existing, err = optional(p, err, repository.ErrPredictionNotFound)
		if err != nil {
			return fmt.Errorf("s.predictions.FindByUserMatchPool -> %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.Prediction{}, err
	}

	validated, err := rules.ValidatePredictionCreate(in, s.now())
	if err != nil {
		return domain.Prediction{}, err
	}

	created, err := s.predictions.Create(ctx, validated)
	if err != nil {
		if errors.Is(err, repository.ErrPredictionExists) {
			return domain.Prediction{}, rules.ErrPredictionExists
		}
		return domain.Prediction{}, fmt.Errorf("s.predictions.Create -> %w", err)
	}

	return created, nil
}

// UpdatePrediction lets the owner change a guess until the match kicks off.
func (s *PredictionService) UpdatePrediction(ctx context.Context, actorID, predictionID uint, patch domain.PredictionPatch) (domain.Prediction, error) {
	p, err := s.predictions.FindByID(ctx, predictionID)
	existing, err := optional(p, err, repository.ErrPredictionNotFound)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("s.predictions.FindByID -> %w", err)
	}

	in := rules.PredictionUpdateInput{ActorID: actorID, Existing: existing, Patch: patch}
	if existing != nil {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			m, err := s.matches.FindByID(gctx, existing.MatchID)
			in.Match, err = optional(m, err, repository.ErrMatchNotFound)
			if err != nil {
				return fmt.Errorf("s.matches.FindByID -> %w", err)
			}
			return nil
		})
		g.Go(func() error {
			pool, err := s.pools.FindByID(gctx, existing.PoolID)
			in.Pool, err = optional(pool, err, repository.ErrPoolNotFound)
			if err != nil {
				return fmt.Errorf("s.pools.FindByID -> %w", err)
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			return domain.Prediction{}, err
		}
	}

	validated, err := rules.ValidatePredictionUpdate(in, s.now())
	if err != nil {
		return domain.Prediction{}, err
	}

	updated, err := s.predictions.Update(ctx, predictionID, validated)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("s.predictions.Update -> %w", err)
	}

	return updated, nil
}

func (s *PredictionService) GetPrediction(ctx context.Context, actorID, predictionID uint) (domain.Prediction, error) {
	p, err := s.predictions.FindByID(ctx, predictionID)
	if err != nil {
		if errors.Is(err, repository.ErrPredictionNotFound) {
			return domain.Prediction{}, rules.NotFound("prediction")
		}
		return domain.Prediction{}, fmt.Errorf("s.predictions.FindByID -> %w", err)
	}
	if p.UserID != actorID {
		return domain.Prediction{}, &rules.Error{Kind: rules.KindUnauthorized, Detail: "you do not own this prediction"}
	}

	return p, nil
}

// ListUserPredictions returns the caller's own predictions in a pool they belong to.
func (s *PredictionService) ListUserPredictions(ctx context.Context, poolID, userID uint) ([]domain.Prediction, error) {
	pool, err := s.pools.FindByID(ctx, poolID)
	if err != nil {
		if errors.Is(err, repository.ErrPoolNotFound) {
			return nil, rules.NotFound("pool")
		}
		return nil, fmt.Errorf("s.pools.FindByID -> %w", err)
	}

	participants, err := s.pools.GetParticipants(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("s.pools.GetParticipants -> %w", err)
	}
	if err := requireMember(pool, participants, userID); err != nil {
		return nil, err
	}

	predictions, err := s.predictions.FindByPoolAndUser(ctx, poolID, userID)
	if err != nil {
		return nil, fmt.Errorf("s.predictions.FindByPoolAndUser -> %w", err)
	}

	return predictions, nil
}
