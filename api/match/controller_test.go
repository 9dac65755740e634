package matchapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"mazerunner/game"
	"mazerunner/meta"
)

func newTestServer() *gin.Engine {
	gin.SetMode(gin.TestMode)
	rules := game.NewStandardRules()
	rules.Size = 6
	rules.ProtectedRadius = 0
	rules.MaxRounds = 5

	router := gin.New()
	NewMatchController(Defaults{Rules: rules, Depth: 1, ThinkBudget: time.Second, Seed: 11}).Register(router.Group("/v1"))
	return router
}

func do(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(method, path, reader))
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestMatchLifecycle(t *testing.T) {
	server := newTestServer()

	w := do(t, server, http.MethodPost, "/v1/matches", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[MatchResponse](t, w)
	require.NotEqual(t, uuid.Nil, created.ID)
	require.False(t, created.Over)
	require.Equal(t, game.Position{X: 5, Y: 5}, created.Goal)
	require.Equal(t, game.RunnerSide, created.State.Turn)
	require.Equal(t, game.Position{X: 0, Y: 0}, created.State.Board.Player)

	path := "/v1/matches/" + created.ID.String()

	t.Run("get returns the stored match", func(t *testing.T) {
		w := do(t, server, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, created.ID, decode[MatchResponse](t, w).ID)
	})

	t.Run("step plays the runner first", func(t *testing.T) {
		w := do(t, server, http.MethodPost, path+"/step", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		step := decode[StepResponse](t, w)
		require.Equal(t, 1, step.Move.Step)
		require.Equal(t, game.RunnerSide, step.Move.Side)
		require.True(t, step.Move.Valid)
		require.Equal(t, 1, step.Match.State.TotalSteps)
	})

	t.Run("run plays to the end", func(t *testing.T) {
		w := do(t, server, http.MethodPost, path+"/run", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		run := decode[RunResponse](t, w)
		require.True(t, run.Match.Over)
		require.Equal(t, run.Winner, run.Game.Winner)
		require.Greater(t, run.Game.TotalMoves, 1)
	})

	t.Run("finished matches reject further play", func(t *testing.T) {
		require.Equal(t, http.StatusConflict, do(t, server, http.MethodPost, path+"/step", nil).Code)
		require.Equal(t, http.StatusConflict, do(t, server, http.MethodPost, path+"/run", nil).Code)
	})

	t.Run("delete forgets the match", func(t *testing.T) {
		require.Equal(t, http.StatusNoContent, do(t, server, http.MethodDelete, path, nil).Code)
		require.Equal(t, http.StatusNotFound, do(t, server, http.MethodGet, path, nil).Code)
		require.Equal(t, http.StatusNotFound, do(t, server, http.MethodDelete, path, nil).Code)
	})
}

func TestCreateMatch(t *testing.T) {
	server := newTestServer()

	t.Run("overrides are applied", func(t *testing.T) {
		w := do(t, server, http.MethodPost, "/v1/matches", map[string]any{"size": 8, "max_rounds": 3, "depth": 2})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		created := decode[MatchResponse](t, w)
		require.Equal(t, 8, created.State.Board.Rules.Size)
		require.Equal(t, 3, created.State.Board.Rules.MaxRounds)
		require.Equal(t, game.Position{X: 7, Y: 7}, created.Goal)
	})

	t.Run("invalid rules are rejected", func(t *testing.T) {
		w := do(t, server, http.MethodPost, "/v1/matches", map[string]any{"size": 2})
		require.Equal(t, http.StatusBadRequest, w.Code)
		w = do(t, server, http.MethodPost, "/v1/matches", map[string]any{"win_coverage": 1.5})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("oversized grid is rejected", func(t *testing.T) {
		w := do(t, server, http.MethodPost, "/v1/matches", map[string]any{"size": 1500, "protected_radius": 0, "depth": 1})
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		w = do(t, server, http.MethodPost, "/v1/matches", map[string]any{"size": meta.MAX_GRID_SIZE + 1})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("depth out of range is rejected", func(t *testing.T) {
		w := do(t, server, http.MethodPost, "/v1/matches", map[string]any{"depth": 9})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		w := do(t, server, http.MethodPost, "/v1/matches", "{not json")
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMatchLookup(t *testing.T) {
	server := newTestServer()

	t.Run("bad id", func(t *testing.T) {
		require.Equal(t, http.StatusBadRequest, do(t, server, http.MethodGet, "/v1/matches/not-a-uuid", nil).Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		w := do(t, server, http.MethodPost, "/v1/matches/"+uuid.NewString()+"/step", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}
