package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/pronos-api/internal/domain"
	"github.com/vietanh2810/pronos-api/internal/repository/dao"
)

var (
	ErrTournamentNotFound = dao.ErrTournamentNotFound
	ErrTeamNotFound       = dao.ErrTeamNotFound
	ErrTeamCodeExists     = dao.ErrTeamCodeExists
)

type TournamentDAO interface {
	Insert(ctx context.Context, tournament dao.Tournament) (dao.Tournament, error)
	FindByID(ctx context.Context, id uint) (dao.Tournament, error)
	FindAll(ctx context.Context) ([]dao.Tournament, error)
	InsertTeam(ctx context.Context, team dao.Team) (dao.Team, error)
	FindTeamByID(ctx context.Context, id uint) (dao.Team, error)
	FindAllTeams(ctx context.Context) ([]dao.Team, error)
}

type TournamentRepository struct {
	dao TournamentDAO
}

func NewTournamentRepository(dao TournamentDAO) *TournamentRepository {
	return &TournamentRepository{
		dao: dao,
	}
}

func (r *TournamentRepository) Create(ctx context.Context, t domain.Tournament) (domain.Tournament, error) {
	created, err := r.dao.Insert(ctx, dao.Tournament{
		Name:      t.Name,
		StartDate: t.StartDate,
		EndDate:   t.EndDate,
		Status:    string(t.Status),
	})
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return tournamentDaoToDomain(created), nil
}

func (r *TournamentRepository) FindByID(ctx context.Context, id uint) (domain.Tournament, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return tournamentDaoToDomain(found), nil
}

func (r *TournamentRepository) FindAll(ctx context.Context) ([]domain.Tournament, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	tournaments := make([]domain.Tournament, len(found))
	for i, t := range found {
		tournaments[i] = tournamentDaoToDomain(t)
	}

	return tournaments, nil
}

func (r *TournamentRepository) CreateTeam(ctx context.Context, team domain.Team) (domain.Team, error) {
	created, err := r.dao.InsertTeam(ctx, dao.Team{
		Name:    team.Name,
		Code:    team.Code,
		FlagURL: team.FlagURL,
	})
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.InsertTeam -> %w", err)
	}

	return teamDaoToDomain(created), nil
}

func (r *TournamentRepository) FindTeamByID(ctx context.Context, id uint) (domain.Team, error) {
	found, err := r.dao.FindTeamByID(ctx, id)
	if err != nil {
		return domain.Team{}, fmt.Errorf("r.dao.FindTeamByID -> %w", err)
	}

	return teamDaoToDomain(found), nil
}

func (r *TournamentRepository) FindAllTeams(ctx context.Context) ([]domain.Team, error) {
	found, err := r.dao.FindAllTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllTeams -> %w", err)
	}

	teams := make([]domain.Team, len(found))
	for i, t := range found {
		teams[i] = teamDaoToDomain(t)
	}

	return teams, nil
}

func tournamentDaoToDomain(t dao.Tournament) domain.Tournament {
	return domain.Tournament{
		ID:        t.ID,
		Name:      t.Name,
		StartDate: t.StartDate,
		EndDate:   t.EndDate,
		Status:    domain.TournamentStatus(t.Status),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func teamDaoToDomain(t dao.Team) domain.Team {
	return domain.Team{
		ID:      t.ID,
		Name:    t.Name,
		Code:    t.Code,
		FlagURL: t.FlagURL,
	}
}
