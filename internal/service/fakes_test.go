package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vietanh2810/pronos-api/internal/domain"
	"github.com/vietanh2810/pronos-api/internal/repository"
)

var now = time.Date(2026, time.June, 14, 18, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T {
	return &v
}

func fixedClock() time.Time {
	return now
}

// store is an in-memory stand-in for the postgres repositories. Each repository view wraps it.
type store struct {
	mu           sync.Mutex
	nextID       uint
	users        map[uint]domain.User
	tournaments  map[uint]domain.Tournament
	teams        map[uint]domain.Team
	matches      map[uint]domain.Match
	pools        map[uint]domain.Pool
	participants map[uint][]uint
	predictions  map[uint]domain.Prediction
}

func newStore() *store {
	return &store{
		nextID:       1000,
		users:        map[uint]domain.User{},
		tournaments:  map[uint]domain.Tournament{},
		teams:        map[uint]domain.Team{},
		matches:      map[uint]domain.Match{},
		pools:        map[uint]domain.Pool{},
		participants: map[uint][]uint{},
		predictions:  map[uint]domain.Prediction{},
	}
}

func (s *store) id() uint {
	s.nextID++
	return s.nextID
}

// seed builds a tournament with two teams, a player (7), a pool creator (99) and a public pool 1.
func seed() *store {
	s := newStore()
	s.users[7] = domain.User{ID: 7, Email: "player@pronos.dev", Role: domain.RolePlayer}
	s.users[8] = domain.User{ID: 8, Email: "other@pronos.dev", Role: domain.RolePlayer}
	s.users[99] = domain.User{ID: 99, Email: "creator@pronos.dev", Role: domain.RolePlayer}
	s.tournaments[10] = domain.Tournament{ID: 10, Name: "World Cup 2026", Status: domain.TournamentActive}
	s.teams[1] = domain.Team{ID: 1, Name: "Mexico", Code: "MEX"}
	s.teams[2] = domain.Team{ID: 2, Name: "Canada", Code: "CAN"}
	s.pools[1] = domain.Pool{ID: 1, TournamentID: 10, CreatorID: 99, Name: "Office", ScoringRules: domain.DefaultScoringRuleSet()}
	s.participants[1] = []uint{99, 7}
	return s
}

type fakeUsers struct{ *store }

func (f fakeUsers) FindByID(_ context.Context, id uint) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

type fakeTournaments struct{ *store }

func (f fakeTournaments) FindByID(_ context.Context, id uint) (domain.Tournament, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tournaments[id]
	if !ok {
		return domain.Tournament{}, repository.ErrTournamentNotFound
	}
	return t, nil
}

func (f fakeTournaments) FindTeamByID(_ context.Context, id uint) (domain.Team, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.teams[id]
	if !ok {
		return domain.Team{}, repository.ErrTeamNotFound
	}
	return t, nil
}

type fakeMatches struct{ *store }

func (f fakeMatches) Create(_ context.Context, m domain.Match) (domain.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m.ID = f.id()
	f.matches[m.ID] = m
	return m, nil
}

func (f fakeMatches) FindByID(_ context.Context, id uint) (domain.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.matches[id]
	if !ok {
		return domain.Match{}, repository.ErrMatchNotFound
	}
	return m, nil
}

func (f fakeMatches) FindByTournamentID(_ context.Context, tournamentID uint) ([]domain.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Match, 0)
	for _, m := range f.matches {
		if m.TournamentID == tournamentID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f fakeMatches) Update(_ context.Context, id uint, m domain.Match) (domain.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.matches[id]; !ok {
		return domain.Match{}, repository.ErrMatchNotFound
	}
	m.ID = id
	f.matches[id] = m
	return m, nil
}

type fakePools struct {
	*store
	createErr error
	addErr    error
}

func (f *fakePools) Create(_ context.Context, pool domain.Pool) (domain.Pool, error) {
	if f.createErr != nil {
		return domain.Pool{}, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	pool.ID = f.id()
	f.pools[pool.ID] = pool
	f.participants[pool.ID] = []uint{pool.CreatorID}
	return pool, nil
}

func (f *fakePools) FindByID(_ context.Context, id uint) (domain.Pool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pools[id]
	if !ok {
		return domain.Pool{}, repository.ErrPoolNotFound
	}
	return p, nil
}

func (f *fakePools) FindByUserID(_ context.Context, userID uint) ([]domain.Pool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Pool, 0)
	for id, p := range f.pools {
		if p.CreatorID == userID || slices.Contains(f.participants[id], userID) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b domain.Pool) int { return int(a.ID) - int(b.ID) })
	return out, nil
}

func (f *fakePools) GetParticipants(_ context.Context, poolID uint) ([]uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.participants[poolID]), nil
}

func (f *fakePools) ListParticipants(_ context.Context, poolID uint) ([]domain.PoolParticipant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.PoolParticipant, 0)
	for _, userID := range f.participants[poolID] {
		out = append(out, domain.PoolParticipant{PoolID: poolID, UserID: userID})
	}
	return out, nil
}

func (f *fakePools) AddParticipant(_ context.Context, pool domain.Pool, userID uint, _ time.Time) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.participants[pool.ID] = append(f.participants[pool.ID], userID)
	return nil
}

func (f *fakePools) RemoveParticipant(_ context.Context, poolID, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := slices.Index(f.participants[poolID], userID)
	if i < 0 {
		return repository.ErrParticipantNotFound
	}
	f.participants[poolID] = slices.Delete(f.participants[poolID], i, i+1)
	return nil
}

func (f *fakePools) GetScoringRuleSet(_ context.Context, poolID uint) (domain.ScoringRuleSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pools[poolID]
	if !ok {
		return domain.ScoringRuleSet{}, repository.ErrScoringRuleSetNotFound
	}
	return p.ScoringRules, nil
}

type fakePredictions struct {
	*store
	createErr error
	pointsErr error
}

func (f *fakePredictions) Create(_ context.Context, p domain.Prediction) (domain.Prediction, error) {
	if f.createErr != nil {
		return domain.Prediction{}, f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = f.id()
	f.predictions[p.ID] = p
	return p, nil
}

func (f *fakePredictions) FindByID(_ context.Context, id uint) (domain.Prediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.predictions[id]
	if !ok {
		return domain.Prediction{}, repository.ErrPredictionNotFound
	}
	return p, nil
}

func (f *fakePredictions) FindByUserMatchPool(_ context.Context, userID, matchID, poolID uint) (domain.Prediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.predictions {
		if p.UserID == userID && p.MatchID == matchID && p.PoolID == poolID {
			return p, nil
		}
	}
	return domain.Prediction{}, repository.ErrPredictionNotFound
}

func (f *fakePredictions) Update(_ context.Context, id uint, p domain.Prediction) (domain.Prediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = id
	f.predictions[id] = p
	return p, nil
}

func (f *fakePredictions) filter(keep func(domain.Prediction) bool) []domain.Prediction {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Prediction, 0)
	for _, p := range f.predictions {
		if keep(p) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b domain.Prediction) int { return int(a.ID) - int(b.ID) })
	return out
}

func (f *fakePredictions) FindByPoolID(_ context.Context, poolID uint) ([]domain.Prediction, error) {
	return f.filter(func(p domain.Prediction) bool { return p.PoolID == poolID }), nil
}

func (f *fakePredictions) FindByMatchID(_ context.Context, matchID uint) ([]domain.Prediction, error) {
	return f.filter(func(p domain.Prediction) bool { return p.MatchID == matchID }), nil
}

func (f *fakePredictions) FindByPoolAndUser(_ context.Context, poolID, userID uint) ([]domain.Prediction, error) {
	return f.filter(func(p domain.Prediction) bool { return p.PoolID == poolID && p.UserID == userID }), nil
}

func (f *fakePredictions) UpdatePoints(_ context.Context, points map[uint]decimal.Decimal) error {
	if f.pointsErr != nil {
		return f.pointsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, pts := range points {
		p := f.predictions[id]
		pts := pts
		p.PointsEarned = &pts
		f.predictions[id] = p
	}
	return nil
}

type recordingNotifier struct {
	pools []uint
}

func (n *recordingNotifier) Notify(poolID uint) {
	n.pools = append(n.pools, poolID)
}
