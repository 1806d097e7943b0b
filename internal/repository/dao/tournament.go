package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrTeamCodeExists     = errors.New("team code already exists")
)

type Tournament struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`
	Status    string    `gorm:"not null;default:UPCOMING"` // "UPCOMING", "ACTIVE" or "COMPLETED"
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Team struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"not null"`
	Code    string `gorm:"unique;size:3;not null"`
	FlagURL string
}

type TournamentDAO struct {
	db *gorm.DB
}

func NewTournamentDAO(db *gorm.DB) *TournamentDAO {
	return &TournamentDAO{
		db: db,
	}
}

func (d *TournamentDAO) Insert(ctx context.Context, tournament Tournament) (Tournament, error) {
	if err := d.db.WithContext(ctx).Create(&tournament).Error; err != nil {
		return Tournament{}, err
	}

	return tournament, nil
}

func (d *TournamentDAO) FindByID(ctx context.Context, id uint) (Tournament, error) {
	var tournament Tournament

	result := d.db.WithContext(ctx).First(&tournament, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Tournament{}, ErrTournamentNotFound
		}

		return Tournament{}, result.Error
	}

	return tournament, nil
}

func (d *TournamentDAO) FindAll(ctx context.Context) ([]Tournament, error) {
	var tournaments []Tournament

	if err := d.db.WithContext(ctx).Order("start_date").Find(&tournaments).Error; err != nil {
		return nil, err
	}

	return tournaments, nil
}

func (d *TournamentDAO) InsertTeam(ctx context.Context, team Team) (Team, error) {
	result := d.db.WithContext(ctx).Create(&team)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "uni_teams_code") {
			return Team{}, ErrTeamCodeExists
		}

		return Team{}, result.Error
	}

	return team, nil
}

func (d *TournamentDAO) FindTeamByID(ctx context.Context, id uint) (Team, error) {
	var team Team

	result := d.db.WithContext(ctx).First(&team, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Team{}, ErrTeamNotFound
		}

		return Team{}, result.Error
	}

	return team, nil
}

func (d *TournamentDAO) FindAllTeams(ctx context.Context) ([]Team, error) {
	var teams []Team

	if err := d.db.WithContext(ctx).Order("name").Find(&teams).Error; err != nil {
		return nil, err
	}

	return teams, nil
}
