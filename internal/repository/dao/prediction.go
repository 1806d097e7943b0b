package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrPredictionExists   = errors.New("prediction already exists")
	ErrPredictionNotFound = errors.New("prediction not found")
)

const predictionUniqueIndex = "idx_predictions_user_match_pool"

type Prediction struct {
	ID                    uint  `gorm:"primaryKey"`
	PoolID                uint  `gorm:"not null;uniqueIndex:idx_predictions_user_match_pool,priority:3;index"`
	Pool                  Pool  `gorm:"foreignKey:PoolID"`
	MatchID               uint  `gorm:"not null;uniqueIndex:idx_predictions_user_match_pool,priority:2;index"`
	Match                 Match `gorm:"foreignKey:MatchID"`
	UserID                uint  `gorm:"not null;uniqueIndex:idx_predictions_user_match_pool,priority:1"`
	User                  User  `gorm:"foreignKey:UserID"`
	PredictedHomeScore    int   `gorm:"not null"`
	PredictedAwayScore    int   `gorm:"not null"`
	PredictedHasExtraTime bool  `gorm:"not null;default:false"`
	PredictedHasPenalties bool  `gorm:"not null;default:false"`
	PredictedPenaltyHome  *int
	PredictedPenaltyAway  *int
	SubmittedAt           time.Time           `gorm:"not null"`
	UpdatedAt             *time.Time          `gorm:"autoUpdateTime:false"`
	PointsEarned          decimal.NullDecimal `gorm:"type:numeric(10,4)"`
}

var predictionMutableColumns = []string{
	"predicted_home_score", "predicted_away_score",
	"predicted_has_extra_time", "predicted_has_penalties",
	"predicted_penalty_home", "predicted_penalty_away",
	"updated_at",
}

type PredictionDAO struct {
	db *gorm.DB
}

func NewPredictionDAO(db *gorm.DB) *PredictionDAO {
	return &PredictionDAO{
		db: db,
	}
}

// Insert relies on idx_predictions_user_match_pool to reject a second prediction for the same
// user, match and pool, including when two requests race.
func (d *PredictionDAO) Insert(ctx context.Context, prediction Prediction) (Prediction, error) {
	result := d.db.WithContext(ctx).Omit("Pool", "Match", "User").Create(&prediction)
	if result.Error != nil {
		if isUniqueViolation(result.Error, predictionUniqueIndex) {
			return Prediction{}, ErrPredictionExists
		}

		return Prediction{}, result.Error
	}

	return prediction, nil
}

func (d *PredictionDAO) FindByID(ctx context.Context, id uint) (Prediction, error) {
	var prediction Prediction

	result := d.db.WithContext(ctx).First(&prediction, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Prediction{}, ErrPredictionNotFound
		}

		return Prediction{}, result.Error
	}

	return prediction, nil
}

func (d *PredictionDAO) FindByUserMatchPool(ctx context.Context, userID, matchID, poolID uint) (Prediction, error) {
	var prediction Prediction

	result := d.db.WithContext(ctx).
		Where("user_id = ? AND match_id = ? AND pool_id = ?", userID, matchID, poolID).
		First(&prediction)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Prediction{}, ErrPredictionNotFound
		}

		return Prediction{}, result.Error
	}

	return prediction, nil
}

func (d *PredictionDAO) Update(ctx context.Context, prediction Prediction) (Prediction, error) {
	result := d.db.WithContext(ctx).
		Model(&Prediction{ID: prediction.ID}).
		Select(predictionMutableColumns).
		Updates(&prediction)
	if result.Error != nil {
		return Prediction{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Prediction{}, ErrPredictionNotFound
	}

	return d.FindByID(ctx, prediction.ID)
}

func (d *PredictionDAO) FindByPoolID(ctx context.Context, poolID uint) ([]Prediction, error) {
	return d.findWhere(ctx, "pool_id = ?", poolID)
}

func (d *PredictionDAO) FindByUserID(ctx context.Context, userID uint) ([]Prediction, error) {
	return d.findWhere(ctx, "user_id = ?", userID)
}

func (d *PredictionDAO) FindByMatchID(ctx context.Context, matchID uint) ([]Prediction, error) {
	return d.findWhere(ctx, "match_id = ?", matchID)
}

func (d *PredictionDAO) FindByPoolAndUser(ctx context.Context, poolID, userID uint) ([]Prediction, error) {
	return d.findWhere(ctx, "pool_id = ? AND user_id = ?", poolID, userID)
}

func (d *PredictionDAO) findWhere(ctx context.Context, query string, args ...any) ([]Prediction, error) {
	var predictions []Prediction

	if err := d.db.WithContext(ctx).Where(query, args...).Order("id").Find(&predictions).Error; err != nil {
		return nil, err
	}

	return predictions, nil
}

// UpdatePoints stores scored points for many predictions in a single transaction.
func (d *PredictionDAO) UpdatePoints(ctx context.Context, points map[uint]decimal.Decimal) error {
	if len(points) == 0 {
		return nil
	}

	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, p := range points {
			err := tx.Model(&Prediction{}).
				Where("id = ?", id).
				UpdateColumn("points_earned", decimal.NewNullDecimal(p)).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
