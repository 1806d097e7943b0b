package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vietanh2810/pronos-api/internal/domain"
	"github.com/vietanh2810/pronos-api/internal/repository/dao"
)

var (
	ErrPredictionExists   = dao.ErrPredictionExists
	ErrPredictionNotFound = dao.ErrPredictionNotFound
)

type PredictionDAO interface {
	Insert(ctx context.Context, prediction dao.Prediction) (dao.Prediction, error)
	FindByID(ctx context.Context, id uint) (dao.Prediction, error)
	FindByUserMatchPool(ctx context.Context, userID, matchID, poolID uint) (dao.Prediction, error)
	Update(ctx context.Context, prediction dao.Prediction) (dao.Prediction, error)
	FindByPoolID(ctx context.Context, poolID uint) ([]dao.Prediction, error)
	FindByUserID(ctx context.Context, userID uint) ([]dao.Prediction, error)
	FindByMatchID(ctx context.Context, matchID uint) ([]dao.Prediction, error)
	FindByPoolAndUser(ctx context.Context, poolID, userID uint) ([]dao.Prediction, error)
	UpdatePoints(ctx context.Context, points map[uint]decimal.Decimal) error
}

type PredictionRepository struct {
	dao PredictionDAO
}

func NewPredictionRepository(dao PredictionDAO) *PredictionRepository {
	return &PredictionRepository{
		dao: dao,
	}
}

func (r *PredictionRepository) Create(ctx context.Context, p domain.Prediction) (domain.Prediction, error) {
	created, err := r.dao.Insert(ctx, predictionDomainToDao(p))
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return predictionDaoToDomain(created), nil
}

func (r *PredictionRepository) FindByID(ctx context.Context, id uint) (domain.Prediction, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return predictionDaoToDomain(found), nil
}

func (r *PredictionRepository) FindByUserMatchPool(ctx context.Context, userID, matchID, poolID uint) (domain.Prediction, error) {
	found, err := r.dao.FindByUserMatchPool(ctx, userID, matchID, poolID)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("r.dao.FindByUserMatchPool -> %w", err)
	}

	return predictionDaoToDomain(found), nil
}

func (r *PredictionRepository) Update(ctx context.Context, id uint, p domain.Prediction) (domain.Prediction, error) {
	row := predictionDomainToDao(p)
	row.ID = id

	updated, err := r.dao.Update(ctx, row)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return predictionDaoToDomain(updated), nil
}

func (r *PredictionRepository) FindByPoolID(ctx context.Context, poolID uint) ([]domain.Prediction, error) {
	found, err := r.dao.FindByPoolID(ctx, poolID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByPoolID -> %w", err)
	}

	return predictionsDaoToDomain(found), nil
}

func (r *PredictionRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Prediction, error) {
	found, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	return predictionsDaoToDomain(found), nil
}

func (r *PredictionRepository) FindByMatchID(ctx context.Context, matchID uint) ([]domain.Prediction, error) {
	found, err := r.dao.FindByMatchID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByMatchID -> %w", err)
	}

	return predictionsDaoToDomain(found), nil
}

func (r *PredictionRepository) FindByPoolAndUser(ctx context.Context, poolID, userID uint) ([]domain.Prediction, error) {
	found, err := r.dao.FindByPoolAndUser(ctx, poolID, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByPoolAndUser -> %w", err)
	}

	return predictionsDaoToDomain(found), nil
}

func (r *PredictionRepository) UpdatePoints(ctx context.Context, points map[uint]decimal.Decimal) error {
	if err := r.dao.UpdatePoints(ctx, points); err != nil {
		return fmt.Errorf("r.dao.UpdatePoints -> %w", err)
	}

	return nil
}

func predictionDomainToDao(p domain.Prediction) dao.Prediction {
	row := dao.Prediction{
		ID:                    p.ID,
		PoolID:                p.PoolID,
		MatchID:               p.MatchID,
		UserID:                p.UserID,
		PredictedHomeScore:    p.PredictedHomeScore,
		PredictedAwayScore:    p.PredictedAwayScore,
		PredictedHasExtraTime: p.PredictedHasExtraTime,
		PredictedHasPenalties: p.PredictedHasPenalties,
		PredictedPenaltyHome:  p.PredictedPenaltyHome,
		PredictedPenaltyAway:  p.PredictedPenaltyAway,
		SubmittedAt:           p.SubmittedAt,
		UpdatedAt:             p.UpdatedAt,
	}
	if p.PointsEarned != nil {
		row.PointsEarned = decimal.NewNullDecimal(*p.PointsEarned)
	}

	return row
}

func predictionDaoToDomain(p dao.Prediction) domain.Prediction {
	prediction := domain.Prediction{
		ID:                    p.ID,
		PoolID:                p.PoolID,
		MatchID:               p.MatchID,
		UserID:                p.UserID,
		PredictedHomeScore:    p.PredictedHomeScore,
		PredictedAwayScore:    p.PredictedAwayScore,
		PredictedHasExtraTime: p.PredictedHasExtraTime,
		PredictedHasPenalties: p.PredictedHasPenalties,
		PredictedPenaltyHome:  p.PredictedPenaltyHome,
		PredictedPenaltyAway:  p.PredictedPenaltyAway,
		SubmittedAt:           p.SubmittedAt,
		UpdatedAt:             p.UpdatedAt,
	}
	if p.PointsEarned.Valid {
		points := p.PointsEarned.Decimal
		prediction.PointsEarned = &points
	}

	return prediction
}

func predictionsDaoToDomain(rows []dao.Prediction) []domain.Prediction {
	predictions := make([]domain.Prediction, len(rows))
	for i, p := range rows {
		predictions[i] = predictionDaoToDomain(p)
	}

	return predictions
}
