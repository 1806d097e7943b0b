package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/vietanh2810/pronos-api/internal/domain"
	"github.com/vietanh2810/pronos-api/internal/repository/dao"
)

var (
	ErrPoolNotFound           = dao.ErrPoolNotFound
	ErrInviteCodeExists       = dao.ErrInviteCodeExists
	ErrParticipantExists      = dao.ErrParticipantExists
	ErrParticipantNotFound    = dao.ErrParticipantNotFound
	ErrPoolFull               = dao.ErrPoolFull
	ErrScoringRuleSetNotFound = dao.ErrScoringRuleSetNotFound
)

type PoolDAO interface {
	Insert(ctx context.Context, pool dao.Pool) (dao.Pool, error)
	FindByID(ctx context.Context, id uint) (dao.Pool, error)
	FindByUserID(ctx context.Context, userID uint) ([]dao.Pool, error)
	FindScoringRuleSet(ctx context.Context, poolID uint) (dao.ScoringRuleSet, error)
	FindParticipantIDs(ctx context.Context, poolID uint) ([]uint, error)
	FindParticipants(ctx context.Context, poolID uint) ([]dao.PoolParticipant, error)
	InsertParticipant(ctx context.Context, participant dao.PoolParticipant, maxParticipants *int) error
	DeleteParticipant(ctx context.Context, poolID, userID uint) error
}

type PoolRepository struct {
	dao PoolDAO
}

func NewPoolRepository(dao PoolDAO) *PoolRepository {
	return &PoolRepository{
		dao: dao,
	}
}

// Create stores the pool and its rule set and enrolls the creator as the first participant.
func (r *PoolRepository) Create(ctx context.Context, pool domain.Pool) (domain.Pool, error) {
	row := dao.Pool{
		TournamentID:         pool.TournamentID,
		CreatorID:            pool.CreatorID,
		Name:                 pool.Name,
		IsPrivate:            pool.IsPrivate,
		MaxParticipants:      pool.MaxParticipants,
		RegistrationDeadline: pool.RegistrationDeadline,
		ScoringRuleSet:       ruleSetDomainToDao(pool.ScoringRules),
	}
	if pool.InviteCode != "" {
		code := pool.InviteCode
		row.InviteCode = &code
	}

	created, err := r.dao.Insert(ctx, row)
	if err != nil {
		return domain.Pool{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return poolDaoToDomain(created), nil
}

func (r *PoolRepository) FindByID(ctx context.Context, id uint) (domain.Pool, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Pool{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return poolDaoToDomain(found), nil
}

func (r *PoolRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Pool, error) {
	found, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	pools := make([]domain.Pool, len(found))
	for i, p := range found {
		pools[i] = poolDaoToDomain(p)
	}

	return pools, nil
}

func (r *PoolRepository) GetParticipants(ctx context.Context, poolID uint) ([]uint, error) {
	ids, err := r.dao.FindParticipantIDs(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindParticipantIDs -> %w", err)
	}

	return ids, nil
}

func (r *PoolRepository) ListParticipants(ctx context.Context, poolID uint) ([]domain.PoolParticipant, error) {
	found, err := r.dao.FindParticipants(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindParticipants -> %w", err)
	}

	participants := make([]domain.PoolParticipant, len(found))
	for i, p := range found {
		participants[i] = domain.PoolParticipant{
			PoolID:   p.PoolID,
			UserID:   p.UserID,
			JoinedAt: p.JoinedAt,
		}
		if p.User.ID != 0 {
			u := userDaoToDomain(p.User)
			participants[i].User = &u
		}
	}

	return participants, nil
}

func (r *PoolRepository) GetScoringRuleSet(ctx context.Context, poolID uint) (domain.ScoringRuleSet, error) {
	found, err := r.dao.FindScoringRuleSet(ctx, poolID)
	if err != nil {
		return domain.ScoringRuleSet{}, fmt.Errorf("r.dao.FindScoringRuleSet -> %w", err)
	}

	return ruleSetDaoToDomain(found), nil
}

func (r *PoolRepository) AddParticipant(ctx context.Context, pool domain.Pool, userID uint, joinedAt time.Time) error {
	err := r.dao.InsertParticipant(ctx, dao.PoolParticipant{
		PoolID:   pool.ID,
		UserID:   userID,
		JoinedAt: joinedAt,
	}, pool.MaxParticipants)
	if err != nil {
		return fmt.Errorf("r.dao.InsertParticipant -> %w", err)
	}

	return nil
}

func (r *PoolRepository) RemoveParticipant(ctx context.Context, poolID, userID uint) error {
	if err := r.dao.DeleteParticipant(ctx, poolID, userID); err != nil {
		return fmt.Errorf("r.dao.DeleteParticipant -> %w", err)
	}

	return nil
}

func poolDaoToDomain(p dao.Pool) domain.Pool {
	pool := domain.Pool{
		ID:                   p.ID,
		TournamentID:         p.TournamentID,
		CreatorID:            p.CreatorID,
		Name:                 p.Name,
		IsPrivate:            p.IsPrivate,
		MaxParticipants:      p.MaxParticipants,
		RegistrationDeadline: p.RegistrationDeadline,
		ScoringRules:         ruleSetDaoToDomain(p.ScoringRuleSet),
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
	if p.InviteCode != nil {
		pool.InviteCode = *p.InviteCode
	}

	return pool
}

func ruleSetDomainToDao(rs domain.ScoringRuleSet) dao.ScoringRuleSet {
	return dao.ScoringRuleSet{
		ID:                          rs.ID,
		PoolID:                      rs.PoolID,
		ExactScorePoints:            rs.ExactScorePoints,
		CorrectWinnerPoints:         rs.CorrectWinnerPoints,
		CorrectDrawPoints:           rs.CorrectDrawPoints,
		CorrectWinnerGoalDiffPoints: rs.CorrectWinnerGoalDiffPoints,
		SpecialEventPoints:          rs.SpecialEventPoints,
		KnockoutMultiplier:          rs.KnockoutMultiplier,
		FinalMultiplier:             rs.FinalMultiplier,
	}
}

func ruleSetDaoToDomain(rs dao.ScoringRuleSet) domain.ScoringRuleSet {
	return domain.ScoringRuleSet{
		ID:                          rs.ID,
		PoolID:                      rs.PoolID,
		ExactScorePoints:            rs.ExactScorePoints,
		CorrectWinnerPoints:         rs.CorrectWinnerPoints,
		CorrectDrawPoints:           rs.CorrectDrawPoints,
		CorrectWinnerGoalDiffPoints: rs.CorrectWinnerGoalDiffPoints,
		SpecialEventPoints:          rs.SpecialEventPoints,
		KnockoutMultiplier:          rs.KnockoutMultiplier,
		FinalMultiplier:             rs.FinalMultiplier,
	}
}
