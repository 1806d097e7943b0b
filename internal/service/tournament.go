package service

import (
	"context"
	"fmt"

	"github.com/vietanh2810/pronos-api/internal/domain"
	"github.com/vietanh2810/pronos-api/internal/repository"
)

var (
	ErrTournamentNotFound = repository.ErrTournamentNotFound
	ErrTeamNotFound       = repository.ErrTeamNotFound
	ErrTeamCodeExists     = repository.ErrTeamCodeExists
)

type TournamentRepository interface {
	Create(ctx context.Context, t domain.Tournament) (domain.Tournament, error)
	FindByID(ctx context.Context, id uint) (domain.Tournament, error)
	FindAll(ctx context.Context) ([]domain.Tournament, error)
	CreateTeam(ctx context.Context, team domain.Team) (domain.Team, error)
	FindTeamByID(ctx context.Context, id uint) (domain.Team, error)
	FindAllTeams(ctx context.Context) ([]domain.Team, error)
}

type TournamentService struct {
	repo TournamentRepository
}

func NewTournamentService(repo TournamentRepository) *TournamentService {
	return &TournamentService{
		repo: repo,
	}
}

func (s *TournamentService) CreateTournament(ctx context.Context, t domain.Tournament) (domain.Tournament, error) {
	if t.Status == "" {
		t.Status = domain.TournamentUpcoming
	}

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *TournamentService) GetTournament(ctx context.Context, id uint) (domain.Tournament, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Tournament{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return t, nil
}

func (s *TournamentService) ListTournaments(ctx context.Context) ([]domain.Tournament, error) {
	tournaments, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return tournaments, nil
}

func (s *TournamentService) CreateTeam(ctx context.Context, team domain.Team) (domain.Team, error) {
	created, err := s.repo.CreateTeam(ctx, team)
	if err != nil {
		return domain.Team{}, fmt.Errorf("s.repo.CreateTeam -> %w", err)
	}

	return created, nil
}

func (s *TournamentService) ListTeams(ctx context.Context) ([]domain.Team, error) {
	teams, err := s.repo.FindAllTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllTeams -> %w", err)
	}

	return teams, nil
}
