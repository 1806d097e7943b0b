package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/pronos-api/internal/api/middleware"
	"github.com/vietanh2810/pronos-api/internal/domain"
	"github.com/vietanh2810/pronos-api/internal/rules"
	"github.com/vietanh2810/pronos-api/internal/service"
)

var users = map[uint]domain.User{
	1: {ID: 1, Name: "Ada", Role: domain.RoleAdmin},
	7: {ID: 7, Name: "Zoe", Role: domain.RolePlayer},
}

type fakeUsers struct{}

func (fakeUsers) GetUser(_ context.Context, id uint) (domain.User, error) {
	u, ok := users[id]
	if !ok {
		return domain.User{}, service.ErrUserNotFound
	}
	return u, nil
}

type fakeMatches struct {
	err     error
	patched domain.MatchPatch
}

func (f *fakeMatches) CreateMatch(_ context.Context, m domain.Match) (domain.Match, error) {
	m.ID = 5
	m.Status = domain.MatchScheduled
	return m, f.err
}

func (f *fakeMatches) GetMatch(_ context.Context, id uint) (domain.Match, error) {
	return domain.Match{ID: id}, f.err
}

func (f *fakeMatches) ListByTournament(context.Context, uint) ([]domain.Match, error) {
	return nil, f.err
}

func (f *fakeMatches) UpdateMatch(_ context.Context, id uint, patch domain.MatchPatch) (domain.Match, error) {
	f.patched = patch
	return domain.Match{ID: id}, f.err
}

type fakePools struct {
	err       error
	joinCode  string
	standings []domain.Standing
}

func (f *fakePools) CreatePool(_ context.Context, creatorID uint, pool domain.Pool) (domain.Pool, error) {
	pool.ID = 3
	pool.CreatorID = creatorID
	return pool, f.err
}

func (f *fakePools) GetPool(_ context.Context, poolID, _ uint) (domain.Pool, error) {
	return domain.Pool{ID: poolID}, f.err
}

func (f *fakePools) ListUserPools(context.Context, uint) ([]domain.Pool, error) {
	return nil, f.err
}

func (f *fakePools) JoinPool(_ context.Context, poolID, _ uint, inviteCode string) (domain.Pool, error) {
	f.joinCode = inviteCode
	return domain.Pool{ID: poolID}, f.err
}

func (f *fakePools) LeavePool(context.Context, uint, uint) error {
	return f.err
}

func (f *fakePools) ListParticipants(context.Context, uint, uint) ([]domain.PoolParticipant, error) {
	return nil, f.err
}

func (f *fakePools) GetStandings(context.Context, uint, uint) ([]domain.Standing, error) {
	return f.standings, f.err
}

func (f *fakePools) GetUserStandings(context.Context, uint) ([]domain.Standing, error) {
	return f.standings, f.err
}

type fakePredictions struct {
	err   error
	draft domain.PredictionDraft
}

func (f *fakePredictions) CreatePrediction(_ context.Context, userID, poolID, matchID uint, draft domain.PredictionDraft) (domain.Prediction, error) {
	f.draft = draft
	return domain.Prediction{ID: 11, UserID: userID, PoolID: poolID, MatchID: matchID}, f.err
}

func (f *fakePredictions) UpdatePrediction(_ context.Context, _, predictionID uint, _ domain.PredictionPatch) (domain.Prediction, error) {
	return domain.Prediction{ID: predictionID}, f.err
}

func (f *fakePredictions) GetPrediction(_ context.Context, _, predictionID uint) (domain.Prediction, error) {
	return domain.Prediction{ID: predictionID}, f.err
}

func (f *fakePredictions) ListUserPredictions(context.Context, uint, uint) ([]domain.Prediction, error) {
	return nil, f.err
}

// as stands in for the JWT middleware.
func as(userID uint) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(middleware.ContextUserIDKey, userID)
		ctx.Next()
	}
}

func newTestRouter(userID uint, m *fakeMatches, p *fakePools, pr *fakePredictions) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(as(userID))

	mh := NewMatchHandler(m, fakeUsers{})
	r.POST("/matches", mh.HandleCreateMatch)
	r.PATCH("/matches/:matchID", mh.HandleUpdateMatch)
	r.GET("/matches/:matchID", mh.HandleGetMatch)

	ph := NewPoolHandler(p, fakeUsers{})
	r.POST("/pools", ph.HandleCreatePool)
	r.GET("/pools/:poolID", ph.HandleGetPool)
	r.POST("/pools/:poolID/join", ph.HandleJoinPool)
	r.DELETE("/pools/:poolID/participants/me", ph.HandleLeavePool)
	r.GET("/pools/:poolID/standings", ph.HandleGetStandings)

	prh := NewPredictionHandler(pr, fakeUsers{})
	r.POST("/pools/:poolID/predictions", prh.HandleCreatePrediction)
	r.GET("/predictions/:predictionID", prh.HandleGetPrediction)

	return r
}

func call(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMatchHandler(t *testing.T) {
	create := `{"tournament_id":10,"home_team_id":1,"away_team_id":2,"match_datetime":"2026-06-20T18:00:00Z","stage":"GROUP"}`

	t.Run("players cannot schedule matches", func(t *testing.T) {
		w := call(newTestRouter(7, &fakeMatches{}, &fakePools{}, &fakePredictions{}), http.MethodPost, "/matches", create)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admins can", func(t *testing.T) {
		w := call(newTestRouter(1, &fakeMatches{}, &fakePools{}, &fakePredictions{}), http.MethodPost, "/matches", create)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"id":5`)
	})

	t.Run("unknown users are rejected", func(t *testing.T) {
		w := call(newTestRouter(42, &fakeMatches{}, &fakePools{}, &fakePredictions{}), http.MethodPost, "/matches", create)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("patch carries only sent fields", func(t *testing.T) {
		m := &fakeMatches{}
		w := call(newTestRouter(1, m, &fakePools{}, &fakePredictions{}), http.MethodPatch, "/matches/5", `{"status":"IN_PROGRESS"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		require.NotNil(t, m.patched.Status)
		assert.Equal(t, domain.MatchInProgress, *m.patched.Status)
		assert.Nil(t, m.patched.HomeScore)
	})

	t.Run("rule violations map to 400", func(t *testing.T) {
		m := &fakeMatches{err: &rules.Error{Kind: rules.KindMatchUpdate, Detail: "scores are required"}}
		w := call(newTestRouter(1, m, &fakePools{}, &fakePredictions{}), http.MethodPatch, "/matches/5", `{"status":"COMPLETED"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"code":"MATCH_UPDATE","message":"scores are required"}`, w.Body.String())
	})

	t.Run("bad id", func(t *testing.T) {
		w := call(newTestRouter(7, &fakeMatches{}, &fakePools{}, &fakePredictions{}), http.MethodGet, "/matches/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing match", func(t *testing.T) {
		m := &fakeMatches{err: rules.NotFound("match")}
		w := call(newTestRouter(7, m, &fakePools{}, &fakePredictions{}), http.MethodGet, "/matches/5", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPoolHandler(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		w := call(newTestRouter(7, &fakeMatches{}, &fakePools{}, &fakePredictions{}), http.MethodPost, "/pools", `{"tournament_id":10,"name":"Office"}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), `"creator_id":7`)
	})

	t.Run("create without a name", func(t *testing.T) {
		w := call(newTestRouter(7, &fakeMatches{}, &fakePools{}, &fakePredictions{}), http.MethodPost, "/pools", `{"tournament_id":10}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("private pool hidden from outsiders", func(t *testing.T) {
		p := &fakePools{err: &rules.Error{Kind: rules.KindNotParticipant, Detail: "you are not a participant of this pool"}}
		w := call(newTestRouter(7, &fakeMatches{}, p, &fakePredictions{}), http.MethodGet, "/pools/3", "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("join without body", func(t *testing.T) {
		p := &fakePools{}
		w := call(newTestRouter(7, &fakeMatches{}, p, &fakePredictions{}), http.MethodPost, "/pools/3/join", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, p.joinCode)
	})

	t.Run("join with code", func(t *testing.T) {
		p := &fakePools{}
		w := call(newTestRouter(7, &fakeMatches{}, p, &fakePredictions{}), http.MethodPost, "/pools/3/join", `{"invite_code":"ABC123XYZ0"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ABC123XYZ0", p.joinCode)
	})

	t.Run("full pool", func(t *testing.T) {
		p := &fakePools{err: &rules.Error{Kind: rules.KindConflict, Detail: "pool is full"}}
		w := call(newTestRouter(7, &fakeMatches{}, p, &fakePredictions{}), http.MethodPost, "/pools/3/join", "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("leave", func(t *testing.T) {
		w := call(newTestRouter(7, &fakeMatches{}, &fakePools{}, &fakePredictions{}), http.MethodDelete, "/pools/3/participants/me", "")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("standings", func(t *testing.T) {
		p := &fakePools{standings: []domain.Standing{{Ranking: 1, UserID: 7, PoolID: 3, TotalPoints: decimal.NewFromInt(6)}}}
		w := call(newTestRouter(7, &fakeMatches{}, p, &fakePredictions{}), http.MethodGet, "/pools/3/standings", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"ranking":1`)
	})

	t.Run("storage failure is a 500", func(t *testing.T) {
		p := &fakePools{err: assert.AnError}
		w := call(newTestRouter(7, &fakeMatches{}, p, &fakePredictions{}), http.MethodGet, "/pools/3/standings", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), assert.AnError.Error())
	})
}

func TestPredictionHandler(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		pr := &fakePredictions{}
		w := call(newTestRouter(7, &fakeMatches{}, &fakePools{}, pr), http.MethodPost, "/pools/3/predictions",
			`{"match_id":5,"predicted_home_score":2,"predicted_away_score":0}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, 2, pr.draft.PredictedHomeScore)
		assert.Contains(t, w.Body.String(), `"pool_id":3`)
	})

	t.Run("scores are required", func(t *testing.T) {
		w := call(newTestRouter(7, &fakeMatches{}, &fakePools{}, &fakePredictions{}), http.MethodPost, "/pools/3/predictions",
			`{"match_id":5,"predicted_home_score":2}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate", func(t *testing.T) {
		pr := &fakePredictions{err: rules.ErrPredictionExists}
		w := call(newTestRouter(7, &fakeMatches{}, &fakePools{}, pr), http.MethodPost, "/pools/3/predictions",
			`{"match_id":5,"predicted_home_score":2,"predicted_away_score":0}`)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("match already started", func(t *testing.T) {
		pr := &fakePredictions{err: &rules.Error{Kind: rules.KindMatchStatus, Detail: "match has already started"}}
		w := call(newTestRouter(7, &fakeMatches{}, &fakePools{}, pr), http.MethodPost, "/pools/3/predictions",
			`{"match_id":5,"predicted_home_score":2,"predicted_away_score":0}`)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("someone else's prediction", func(t *testing.T) {
		pr := &fakePredictions{err: &rules.Error{Kind: rules.KindUnauthorized, Detail: "you do not own this prediction"}}
		w := call(newTestRouter(7, &fakeMatches{}, &fakePools{}, pr), http.MethodGet, "/predictions/11", "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
