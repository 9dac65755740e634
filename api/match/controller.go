package matchapi

import (
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"mazerunner/agent"
	"mazerunner/engine"
	"mazerunner/game"
)

// Defaults are applied to every match unless the request overrides them.
type Defaults struct {
	Rules       game.Rules
	Depth       int
	ThinkBudget time.Duration
	Seed        uint64 // 0 seeds each match from the clock
}

type session struct {
	mu     sync.Mutex
	engine *engine.Engine
}

// MatchController keeps one engine per match in memory.
type MatchController struct {
	defaults Defaults
	mu       sync.RWMutex
	matches  map[uuid.UUID]*session
}

func NewMatchController(defaults Defaults) *MatchController {
	return &MatchController{
		defaults: defaults,
		matches:  map[uuid.UUID]*session{},
	}
}

// Register registers the match routes.
func (mc *MatchController) Register(route *gin.RouterGroup) {
	matches := route.Group("/matches")
	{
		matches.POST("", mc.create)
		matches.GET("/:ID", mc.get)
		matches.DELETE("/:ID", mc.remove)
		matches.POST("/:ID/step", mc.step)
		matches.POST("/:ID/run", mc.run)
	}
}

func (mc *MatchController) create(ctx *gin.Context) {
	var request CreateMatchRequest
	if err := ctx.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rules := mc.defaults.Rules
	if request.Size != nil {
		rules.Size = *request.Size
	}
	if request.ProtectedRadius != nil {
		rules.ProtectedRadius = *request.ProtectedRadius
	}
	if request.WinCoverage != nil {
		rules.WinCoverage = *request.WinCoverage
	}
	if request.MaxRounds != nil {
		rules.MaxRounds = *request.MaxRounds
	}
	if err := rules.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	seed := request.Seed
	if seed == 0 {
		seed = mc.defaults.Seed
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	depth := request.Depth
	if depth == 0 {
		depth = mc.defaults.Depth
	}

	master := agent.NewMaster(rules,
		agent.WithDepth(depth),
		agent.WithThinkBudget(mc.defaults.ThinkBudget),
		agent.WithSeed(seed),
		agent.WithMetrics(),
	)
	e := engine.LocalEngine(rules, agent.NewRunner(rules), master, engine.WithSeed(seed))

	mc.mu.Lock()
	mc.matches[e.ID] = &session{engine: e}
	mc.mu.Unlock()
	log.Info().Msgf("created match %s on a %dx%d grid", e.ID, rules.Size, rules.Size)

	ctx.JSON(http.StatusCreated, toMatchResponse(e))
}

func (mc *MatchController) get(ctx *gin.Context) {
	s, ok := mc.lookup(ctx)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx.JSON(http.StatusOK, toMatchResponse(s.engine))
}

func (mc *MatchController) remove(ctx *gin.Context) {
	s, ok := mc.lookup(ctx)
	if !ok {
		return
	}
	mc.mu.Lock()
	delete(mc.matches, s.engine.ID)
	mc.mu.Unlock()

	ctx.Status(http.StatusNoContent)
}

func (mc *MatchController) step(ctx *gin.Context) {
	s, ok := mc.lookup(ctx)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	move, err := s.engine.Step()
	if errors.Is(err, game.ErrGameOver) {
		ctx.JSON(http.StatusConflict, gin.H{"error": "match is over"})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, StepResponse{Move: move, Match: toMatchResponse(s.engine)})
}

func (mc *MatchController) run(ctx *gin.Context) {
	s, ok := mc.lookup(ctx)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine.Over() {
		ctx.JSON(http.StatusConflict, gin.H{"error": "match is over"})
		return
	}
	winner, gameMetric, _ := s.engine.Run()

	ctx.JSON(http.StatusOK, RunResponse{Winner: winner, Game: gameMetric, Match: toMatchResponse(s.engine)})
}

// lookup resolves the :ID parameter, writing the error response itself when it fails.
func (mc *MatchController) lookup(ctx *gin.Context) (*session, bool) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid match id"})
		return nil, false
	}

	mc.mu.RLock()
	s, ok := mc.matches[ID]
	mc.mu.RUnlock()
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no such match"})
		return nil, false
	}
	return s, true
}

func toMatchResponse(e *engine.Engine) MatchResponse {
	return MatchResponse{
		ID:    e.ID,
		Goal:  e.State.Board.Goal(),
		Over:  e.Over(),
		State: e.State,
	}
}
