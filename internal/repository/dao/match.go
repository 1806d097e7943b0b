package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrMatchNotFound = errors.New("match not found")

type Match struct {
	ID               uint       `gorm:"primaryKey"`
	TournamentID     uint       `gorm:"not null;index"`
	Tournament       Tournament `gorm:"foreignKey:TournamentID"`
	HomeTeamID       uint       `gorm:"not null"`
	HomeTeam         Team       `gorm:"foreignKey:HomeTeamID"`
	AwayTeamID       uint       `gorm:"not null"`
	AwayTeam         Team       `gorm:"foreignKey:AwayTeamID"`
	MatchDatetime    time.Time  `gorm:"not null;index"`
	Stadium          string
	Stage            string `gorm:"not null"`
	Status           string `gorm:"not null;default:SCHEDULED"`
	HomeScore        *int
	AwayScore        *int
	HasExtraTime     bool `gorm:"not null;default:false"`
	HasPenalties     bool `gorm:"not null;default:false"`
	PenaltyHomeScore *int
	PenaltyAwayScore *int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// matchMutableColumns are the columns an approved match update may rewrite.
var matchMutableColumns = []string{
	"status", "stage", "match_datetime", "stadium",
	"home_score", "away_score", "has_extra_time", "has_penalties",
	"penalty_home_score", "penalty_away_score", "updated_at",
}

type MatchDAO struct {
	db *gorm.DB
}

func NewMatchDAO(db *gorm.DB) *MatchDAO {
	return &MatchDAO{
		db: db,
	}
}

func (d *MatchDAO) Insert(ctx context.Context, match Match) (Match, error) {
	if err := d.db.WithContext(ctx).Omit("Tournament", "HomeTeam", "AwayTeam").Create(&match).Error; err != nil {
		return Match{}, err
	}

	return d.FindByID(ctx, match.ID)
}

func (d *MatchDAO) FindByID(ctx context.Context, id uint) (Match, error) {
	var match Match

	result := d.db.WithContext(ctx).
		Preload("HomeTeam").
		Preload("AwayTeam").
		First(&match, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Match{}, ErrMatchNotFound
		}

		return Match{}, result.Error
	}

	return match, nil
}

func (d *MatchDAO) FindByTournamentID(ctx context.Context, tournamentID uint) ([]Match, error) {
	var matches []Match

	err := d.db.WithContext(ctx).
		Preload("HomeTeam").
		Preload("AwayTeam").
		Where("tournament_id = ?", tournamentID).
		Order("match_datetime, id").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}

	return matches, nil
}

// Update writes every mutable column of match, null and zero values included.
func (d *MatchDAO) Update(ctx context.Context, match Match) (Match, error) {
	result := d.db.WithContext(ctx).
		Model(&Match{ID: match.ID}).
		Select(matchMutableColumns).
		Updates(&match)
	if result.Error != nil {
		return Match{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Match{}, ErrMatchNotFound
	}

	return d.FindByID(ctx, match.ID)
}
