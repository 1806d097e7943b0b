package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPoolNotFound           = errors.New("pool not found")
	ErrInviteCodeExists       = errors.New("invite code already exists")
	ErrParticipantExists      = errors.New("user already participates in the pool")
	ErrParticipantNotFound    = errors.New("user is not a participant of the pool")
	ErrPoolFull               = errors.New("pool is full")
	ErrScoringRuleSetNotFound = errors.New("scoring rule set not found")
)

type Pool struct {
	ID                   uint       `gorm:"primaryKey"`
	TournamentID         uint       `gorm:"not null;index"`
	Tournament           Tournament `gorm:"foreignKey:TournamentID"`
	CreatorID            uint       `gorm:"not null;index"`
	Creator              User       `gorm:"foreignKey:CreatorID"`
	Name                 string     `gorm:"not null"`
	IsPrivate            bool       `gorm:"not null;default:false"`
	InviteCode           *string    `gorm:"unique"`
	MaxParticipants      *int
	RegistrationDeadline *time.Time
	ScoringRuleSet       ScoringRuleSet `gorm:"foreignKey:PoolID"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type ScoringRuleSet struct {
	ID                          uint            `gorm:"primaryKey"`
	PoolID                      uint            `gorm:"not null;uniqueIndex"`
	ExactScorePoints            int             `gorm:"not null"`
	CorrectWinnerPoints         int             `gorm:"not null"`
	CorrectDrawPoints           int             `gorm:"not null"`
	CorrectWinnerGoalDiffPoints int             `gorm:"not null"`
	SpecialEventPoints          int             `gorm:"not null"`
	KnockoutMultiplier          decimal.Decimal `gorm:"type:numeric(10,4);not null"`
	FinalMultiplier             decimal.Decimal `gorm:"type:numeric(10,4);not null"`
}

type PoolParticipant struct {
	PoolID   uint      `gorm:"primaryKey"`
	UserID   uint      `gorm:"primaryKey;index"`
	User     User      `gorm:"foreignKey:UserID"`
	JoinedAt time.Time `gorm:"not null"`
}

type PoolDAO struct {
	db *gorm.DB
}

func NewPoolDAO(db *gorm.DB) *PoolDAO {
	return &PoolDAO{
		db: db,
	}
}

// Insert creates the pool with its rule set and enrolls the creator, all in one transaction.
func (d *PoolDAO) Insert(ctx context.Context, pool Pool) (Pool, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tournament", "Creator").Create(&pool).Error; err != nil {
			if isUniqueViolation(err, "uni_pools_invite_code") {
				return ErrInviteCodeExists
			}
			return err
		}

		return tx.Omit("User").Create(&PoolParticipant{
			PoolID:   pool.ID,
			UserID:   pool.CreatorID,
			JoinedAt: pool.CreatedAt,
		}).Error
	})
	if err != nil {
		return Pool{}, err
	}

	return pool, nil
}

func (d *PoolDAO) FindByID(ctx context.Context, id uint) (Pool, error) {
	var pool Pool

	result := d.db.WithContext(ctx).Preload("ScoringRuleSet").First(&pool, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Pool{}, ErrPoolNotFound
		}

		return Pool{}, result.Error
	}

	return pool, nil
}

// FindByUserID returns the pools the user created or joined.
func (d *PoolDAO) FindByUserID(ctx context.Context, userID uint) ([]Pool, error) {
	var pools []Pool

	err := d.db.WithContext(ctx).
		Preload("ScoringRuleSet").
		Where("creator_id = ?", userID).
		Or("id IN (?)", d.db.Model(&PoolParticipant{}).Select("pool_id").Where("user_id = ?", userID)).
		Order("id").
		Find(&pools).Error
	if err != nil {
		return nil, err
	}

	return pools, nil
}

func (d *PoolDAO) FindScoringRuleSet(ctx context.Context, poolID uint) (ScoringRuleSet, error) {
	var rs ScoringRuleSet

	result := d.db.WithContext(ctx).First(&rs, "pool_id = ?", poolID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ScoringRuleSet{}, ErrScoringRuleSetNotFound
		}

		return ScoringRuleSet{}, result.Error
	}

	return rs, nil
}

func (d *PoolDAO) FindParticipantIDs(ctx context.Context, poolID uint) ([]uint, error) {
	var ids []uint

	err := d.db.WithContext(ctx).
		Model(&PoolParticipant{}).
		Where("pool_id = ?", poolID).
		Order("joined_at, user_id").
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (d *PoolDAO) FindParticipants(ctx context.Context, poolID uint) ([]PoolParticipant, error) {
	var participants []PoolParticipant

	err := d.db.WithContext(ctx).
		Preload("User").
		Where("pool_id = ?", poolID).
		Order("joined_at, user_id").
		Find(&participants).Error
	if err != nil {
		return nil, err
	}

	return participants, nil
}

// InsertParticipant enrolls a user while holding a row lock on the pool, so two concurrent joins
// cannot both take the last seat. A nil maxParticipants means no limit.
func (d *PoolDAO) InsertParticipant(ctx context.Context, participant PoolParticipant, maxParticipants *int) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var locked Pool
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&locked, participant.PoolID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPoolNotFound
			}
			return err
		}

		if maxParticipants != nil {
			var count int64
			if err := tx.Model(&PoolParticipant{}).Where("pool_id = ?", participant.PoolID).Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(*maxParticipants) {
				return ErrPoolFull
			}
		}

		if err := tx.Omit("User").Create(&participant).Error; err != nil {
			if isUniqueViolation(err, "pool_participants_pkey") {
				return ErrParticipantExists
			}
			return err
		}

		return nil
	})
}

func (d *PoolDAO) DeleteParticipant(ctx context.Context, poolID, userID uint) error {
	result := d.db.WithContext(ctx).Delete(&PoolParticipant{}, "pool_id = ? AND user_id = ?", poolID, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrParticipantNotFound
	}

	return nil
}
