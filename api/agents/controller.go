// Package agentapi serves single agent decisions so engines in other processes can use them.
package agentapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mazerunner/agent"
	"mazerunner/engine"
	"mazerunner/game"
)

// AgentController is stateless: every request carries the full snapshot and the master's
// adapted parameters come back in the response.
type AgentController struct{}

func NewAgentController() *AgentController {
	return &AgentController{}
}

// Register registers the decision routes.
func (ac *AgentController) Register(route *gin.RouterGroup) {
	route.POST(engine.RunnerMovePath, ac.runnerMove)
	route.POST(engine.MasterMovePath, ac.masterMove)
}

func (ac *AgentController) runnerMove(ctx *gin.Context) {
	var request engine.RunnerRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate(request.Rules, request.Player, request.Walls); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	runner := agent.NewRunner(request.Rules)
	runner.UpdateState(game.NewWallSet(request.Walls...), request.Player, request.RoundsSinceWallBreak)

	ctx.JSON(http.StatusOK, engine.RunnerResponse{Move: runner.DecideMove()})
}

func (ac *AgentController) masterMove(ctx *gin.Context) {
	var request engine.MasterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate(request.Rules, request.Player, request.Walls); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	options := []agent.MasterOption{agent.WithSeed(request.Seed), agent.WithMetrics()}
	if request.Difficulty > 0 {
		options = append(options, agent.WithDifficulty(request.Difficulty))
	}
	if request.Depth > 0 {
		options = append(options, agent.WithDepth(request.Depth))
	}
	master := agent.NewMaster(request.Rules, options...)
	master.SetSkills(request.Skills)
	master.UpdateState(game.NewWallSet(request.Walls...), request.Player, request.PlayerSteps)
	move := master.DecideMove(request.WallsPlaced)

	ctx.JSON(http.StatusOK, engine.MasterResponse{
		Move:       move,
		Difficulty: master.Difficulty(),
		Depth:      master.Depth(),
		Search:     master.LastSearch(),
	})
}

// validate checks the rules and keeps every tile of the snapshot on the grid.
func validate(rules game.Rules, player game.Position, walls []game.Position) error {
	if err := rules.Validate(); err != nil {
		return err
	}
	if err := rules.ValidateTiles(player); err != nil {
		return err
	}
	return rules.ValidateTiles(walls...)
}
