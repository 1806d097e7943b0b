package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vietanh2810/pronos-api/internal/domain"
	"github.com/vietanh2810/pronos-api/internal/repository"
	"github.com/vietanh2810/pronos-api/internal/rules"
)

var (
	ErrPoolNotFound = repository.ErrPoolNotFound
)

// standingsFanOut bounds how many pools are loaded at once for a user's standings.
const standingsFanOut = 4

type PoolRepository interface {
	Create(ctx context.Context, pool domain.Pool) (domain.Pool, error)
	FindByID(ctx context.Context, id uint) (domain.Pool, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Pool, error)
	GetParticipants(ctx context.Context, poolID uint) ([]uint, error)
	ListParticipants(ctx context.Context, poolID uint) ([]domain.PoolParticipant, error)
	AddParticipant(ctx context.Context, pool domain.Pool, userID uint, joinedAt time.Time) error
	RemoveParticipant(ctx context.Context, poolID, userID uint) error
}

type PoolTournamentRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Tournament, error)
}

type PoolMatchRepository interface {
	FindByTournamentID(ctx context.Context, tournamentID uint) ([]domain.Match, error)
}

type PoolPredictionRepository interface {
	FindByPoolID(ctx context.Context, poolID uint) ([]domain.Prediction, error)
}

type PoolService struct {
	pools       PoolRepository
	tournaments PoolTournamentRepository
	matches     PoolMatchRepository
	predictions PoolPredictionRepository
	now         func() time.Time
	inviteCode  func() string
}

func NewPoolService(
	pools PoolRepository,
	tournaments PoolTournamentRepository,
	matches PoolMatchRepository,
	predictions PoolPredictionRepository,
) *PoolService {
	return &PoolService{
		pools:       pools,
		tournaments: tournaments,
		matches:     matches,
		predictions: predictions,
		now:         time.Now,
		inviteCode:  newInviteCode,
	}
}

func newInviteCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

// CreatePool stores a pool owned by creatorID. Private pools without a code get a generated one.
func (s *PoolService) CreatePool(ctx context.Context, creatorID uint, pool domain.Pool) (domain.Pool, error) {
	t, err := s.tournaments.FindByID(ctx, pool.TournamentID)
	tournament, err := optional(t, err, repository.ErrTournamentNotFound)
	if err != nil {
		return domain.Pool{}, fmt.Errorf("s.tournaments.FindByID -> %w", err)
	}

	pool.CreatorID = creatorID
	if pool.IsPrivate && pool.InviteCode == "" {
		pool.InviteCode = s.inviteCode()
	}

	validated, err := rules.ValidateNewPool(pool, tournament, s.now())
	if err != nil {
		return domain.Pool{}, err
	}

	created, err := s.pools.Create(ctx, validated)
	if err != nil {
		if errors.Is(err, repository.ErrInviteCodeExists) {
			return domain.Pool{}, conflict("invite code is already in use")
		}
		return domain.Pool{}, fmt.Errorf("s.pools.Create -> %w", err)
	}

	return created, nil
}

// GetPool returns a pool as seen by userID. Private pools are visible to members only and
// the invite code is shown to the creator alone.
func (s *PoolService) GetPool(ctx context.Context, poolID, userID uint) (domain.Pool, error) {
	pool, participants, err := s.loadPool(ctx, poolID)
	if err != nil {
		return domain.Pool{}, err
	}
	if pool.IsPrivate {
		if err := requireMember(pool, participants, userID); err != nil {
			return domain.Pool{}, err
		}
	}

	return redactInviteCode(pool, userID), nil
}

func (s *PoolService) ListUserPools(ctx context.Context, userID uint) ([]domain.Pool, error) {
	pools, err := s.pools.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.pools.FindByUserID -> %w", err)
	}

	for i := range pools {
		pools[i] = redactInviteCode(pools[i], userID)
	}

	return pools, nil
}

func (s *PoolService) JoinPool(ctx context.Context, poolID, userID uint, inviteCode string) (domain.Pool, error) {
	p, err := s.pools.FindByID(ctx, poolID)
	pool, err := optional(p, err, repository.ErrPoolNotFound)
	if err != nil {
		return domain.Pool{}, fmt.Errorf("s.pools.FindByID -> %w", err)
	}

	var participants []uint
	if pool != nil {
		participants, err = s.pools.GetParticipants(ctx, poolID)
		if err != nil {
			return domain.Pool{}, fmt.Errorf("s.pools.GetParticipants -> %w", err)
		}
	}

	now := s.now()
	if err := rules.ValidateJoin(pool, participants, userID, inviteCode, now); err != nil {
		return domain.Pool{}, err
	}

	if err := s.pools.AddParticipant(ctx, *pool, userID, now); err != nil {
		switch {
		case errors.Is(err, repository.ErrPoolFull):
			return domain.Pool{}, conflict(fmt.Sprintf("pool %d is full", poolID))
		case errors.Is(err, repository.ErrParticipantExists):
			return domain.Pool{}, conflict(fmt.Sprintf("user %d already participates in pool %d", userID, poolID))
		}
		return domain.Pool{}, fmt.Errorf("s.pools.AddParticipant -> %w", err)
	}

	return redactInviteCode(*pool, userID), nil
}

func (s *PoolService) LeavePool(ctx context.Context, poolID, userID uint) error {
	p, err := s.pools.FindByID(ctx, poolID)
	pool, err := optional(p, err, repository.ErrPoolNotFound)
	if err != nil {
		return fmt.Errorf("s.pools.FindByID -> %w", err)
	}

	var participants []uint
	if pool != nil {
		participants, err = s.pools.GetParticipants(ctx, poolID)
		if err != nil {
			return fmt.Errorf("s.pools.GetParticipants -> %w", err)
		}
	}

	if err := rules.ValidateLeave(pool, participants, userID); err != nil {
		return err
	}

	if err := s.pools.RemoveParticipant(ctx, poolID, userID); err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return &rules.Error{Kind: rules.KindNotParticipant, Detail: "you are not a participant of this pool"}
		}
		return fmt.Errorf("s.pools.RemoveParticipant -> %w", err)
	}

	return nil
}

func (s *PoolService) ListParticipants(ctx context.Context, poolID, userID uint) ([]domain.PoolParticipant, error) {
	pool, participants, err := s.loadPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(pool, participants, userID); err != nil {
		return nil, err
	}

	list, err := s.pools.ListParticipants(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("s.pools.ListParticipants -> %w", err)
	}

	return list, nil
}

// GetStandings ranks the pool as seen by userID, who must be able to see the pool.
func (s *PoolService) GetStandings(ctx context.Context, poolID, userID uint) ([]domain.Standing, error) {
	if _, err := s.GetPool(ctx, poolID, userID); err != nil {
		return nil, err
	}

	return s.PoolStandings(ctx, poolID)
}

// PoolStandings ranks the pool without any visibility check.
func (s *PoolService) PoolStandings(ctx context.Context, poolID uint) ([]domain.Standing, error) {
	pool, err := s.pools.FindByID(ctx, poolID)
	if err != nil {
		if errors.Is(err, repository.ErrPoolNotFound) {
			return nil, rules.NotFound("pool")
		}
		return nil, fmt.Errorf("s.pools.FindByID -> %w", err)
	}

	snapshot, err := s.snapshot(ctx, pool)
	if err != nil {
		return nil, err
	}

	return rules.ComputeStandings(snapshot), nil
}

// GetUserStandings returns the user's standing in every pool they belong to.
func (s *PoolService) GetUserStandings(ctx context.Context, userID uint) ([]domain.Standing, error) {
	pools, err := s.pools.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.pools.FindByUserID -> %w", err)
	}

	snapshots := make([]rules.PoolSnapshot, len(pools))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(standingsFanOut)
	for i, pool := range pools {
		i, pool := i, pool
		g.Go(func() error {
			snapshot, err := s.snapshot(gctx, pool)
			if err != nil {
				return err
			}
			snapshots[i] = snapshot
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return rules.ComputeUserStandings(userID, snapshots), nil
}

func (s *PoolService) snapshot(ctx context.Context, pool domain.Pool) (rules.PoolSnapshot, error) {
	snapshot := rules.PoolSnapshot{Pool: pool}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		matches, err := s.matches.FindByTournamentID(gctx, pool.TournamentID)
		if err != nil {
			return fmt.Errorf("s.matches.FindByTournamentID -> %w", err)
		}
		snapshot.Matches = matches
		return nil
	})
	g.Go(func() error {
		predictions, err := s.predictions.FindByPoolID(gctx, pool.ID)
		if err != nil {
			return fmt.Errorf("s.predictions.FindByPoolID -> %w", err)
		}
		snapshot.Predictions = predictions
		return nil
	})
	if err := g.Wait(); err != nil {
		return rules.PoolSnapshot{}, err
	}

	return snapshot, nil
}

func (s *PoolService) loadPool(ctx context.Context, poolID uint) (domain.Pool, []uint, error) {
	pool, err := s.pools.FindByID(ctx, poolID)
	if err != nil {
		if errors.Is(err, repository.ErrPoolNotFound) {
			return domain.Pool{}, nil, rules.NotFound("pool")
		}
		return domain.Pool{}, nil, fmt.Errorf("s.pools.FindByID -> %w", err)
	}

	participants, err := s.pools.GetParticipants(ctx, poolID)
	if err != nil {
		return domain.Pool{}, nil, fmt.Errorf("s.pools.GetParticipants -> %w", err)
	}

	return pool, participants, nil
}

func redactInviteCode(pool domain.Pool, userID uint) domain.Pool {
	if pool.CreatorID != userID {
		pool.InviteCode = ""
	}
	return pool
}
