package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/pronos-api/internal/domain"
	"github.com/vietanh2810/pronos-api/internal/repository/dao"
)

var ErrMatchNotFound = dao.ErrMatchNotFound

type MatchDAO interface {
	Insert(ctx context.Context, match dao.Match) (dao.Match, error)
	FindByID(ctx context.Context, id uint) (dao.Match, error)
	FindByTournamentID(ctx context.Context, tournamentID uint) ([]dao.Match, error)
	Update(ctx context.Context, match dao.Match) (dao.Match, error)
}

type MatchRepository struct {
	dao MatchDAO
}

func NewMatchRepository(dao MatchDAO) *MatchRepository {
	return &MatchRepository{
		dao: dao,
	}
}

func (r *MatchRepository) Create(ctx context.Context, m domain.Match) (domain.Match, error) {
	created, err := r.dao.Insert(ctx, matchDomainToDao(m))
	if err != nil {
		return domain.Match{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return matchDaoToDomain(created), nil
}

func (r *MatchRepository) FindByID(ctx context.Context, id uint) (domain.Match, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Match{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return matchDaoToDomain(found), nil
}

func (r *MatchRepository) FindByTournamentID(ctx context.Context, tournamentID uint) ([]domain.Match, error) {
	found, err := r.dao.FindByTournamentID(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByTournamentID -> %w", err)
	}

	matches := make([]domain.Match, len(found))
	for i, m := range found {
		matches[i] = matchDaoToDomain(m)
	}

	return matches, nil
}

// Update persists a match that already went through validation.
func (r *MatchRepository) Update(ctx context.Context, id uint, m domain.Match) (domain.Match, error) {
	row := matchDomainToDao(m)
	row.ID = id

	updated, err := r.dao.Update(ctx, row)
	if err != nil {
		return domain.Match{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return matchDaoToDomain(updated), nil
}

func matchDomainToDao(m domain.Match) dao.Match {
	return dao.Match{
		ID:               m.ID,
		TournamentID:     m.TournamentID,
		HomeTeamID:       m.HomeTeamID,
		AwayTeamID:       m.AwayTeamID,
		MatchDatetime:    m.MatchDatetime,
		Stadium:          m.Stadium,
		Stage:            string(m.Stage),
		Status:           string(m.Status),
		HomeScore:        m.HomeScore,
		AwayScore:        m.AwayScore,
		HasExtraTime:     m.HasExtraTime,
		HasPenalties:     m.HasPenalties,
		PenaltyHomeScore: m.PenaltyHomeScore,
		PenaltyAwayScore: m.PenaltyAwayScore,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func matchDaoToDomain(m dao.Match) domain.Match {
	match := domain.Match{
		ID:               m.ID,
		TournamentID:     m.TournamentID,
		HomeTeamID:       m.HomeTeamID,
		AwayTeamID:       m.AwayTeamID,
		MatchDatetime:    m.MatchDatetime,
		Stadium:          m.Stadium,
		Stage:            domain.MatchStage(m.Stage),
		Status:           domain.MatchStatus(m.Status),
		HomeScore:        m.HomeScore,
		AwayScore:        m.AwayScore,
		HasExtraTime:     m.HasExtraTime,
		HasPenalties:     m.HasPenalties,
		PenaltyHomeScore: m.PenaltyHomeScore,
		PenaltyAwayScore: m.PenaltyAwayScore,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}

	if m.HomeTeam.ID != 0 {
		home := teamDaoToDomain(m.HomeTeam)
		match.HomeTeam = &home
	}
	if m.AwayTeam.ID != 0 {
		away := teamDaoToDomain(m.AwayTeam)
		match.AwayTeam = &away
	}

	return match
}
