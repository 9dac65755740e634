package engine

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"mazerunner/agent"
	"mazerunner/experiments/metrics"
	"mazerunner/game"
)

const PassSkill = "pass"

type Option func(e *Engine)

func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

func WithID(id uuid.UUID) Option {
	return func(e *Engine) {
		if id != uuid.Nil {
			e.ID = id
		}
	}
}

// Engine is a headless in-process match between two agents.
type Engine struct {
	ID        uuid.UUID
	State     *game.State
	Runner    agent.RunnerAgent
	Master    agent.MasterAgent
	rng       *rand.Rand
	startTime time.Time
	moves     []metrics.MoveMetric
}

func LocalEngine(rules game.Rules, runner agent.RunnerAgent, master agent.MasterAgent, options ...Option) *Engine {
	if runner == nil || master == nil {
		panic("need a runner and a master")
	}
	e := &Engine{
		ID:        uuid.New(),
		State:     game.NewState(rules),
		Runner:    runner,
		Master:    master,
		startTime: time.Now(),
	}
	for _, option := range options {
		option(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return e
}

func (e *Engine) Over() bool {
	return e.State.Over()
}

func (e *Engine) Moves() []metrics.MoveMetric {
	return e.moves
}

func (e *Engine) Step() (metrics.MoveMetric, error) {
	if e.State.Over() {
		return metrics.MoveMetric{}, game.ErrGameOver
	}

	var metric metrics.MoveMetric
	switch e.State.Turn {
	case game.RunnerSide:
		metric = e.runnerStep()
	case game.MasterSide:
		metric = e.masterStep()
	default:
		return metrics.MoveMetric{}, errors.New("no side to move")
	}
	metric.Step = len(e.moves) + 1
	e.moves = append(e.moves, metric)
	return metric, nil
}

func (e *Engine) runnerStep() metrics.MoveMetric {
	s := e.State
	start := time.Now()
	e.Runner.UpdateState(s.Board.Walls, s.Board.Player, s.RoundsSinceWallBreak)
	move := e.Runner.DecideMove()
	metric := metrics.MoveMetric{Side: game.RunnerSide, Skill: move.Skill.String(), Target: move.Target, Valid: true}
	metric.Duration = time.Since(start)

	if err := s.ApplyRunnerMove(move); err != nil {
		log.Warn().Err(err).Msgf("runner suggested %s to %s", move.Skill, move.Target)
		move = e.degradeRunner(move)
		if err := s.ApplyRunnerMove(move); err != nil {
			// Staying put is always legal, so this is a bug in the state machine.
			log.Error().Err(err).Msg("runner fallback rejected")
		}
		metric.Valid = false
		metric.Skill, metric.Target = move.Skill.String(), move.Target
	}
	return metric
}

// degradeRunner turns a rejected extended move into a single step the same way, and anything else
// into staying put.
func (e *Engine) degradeRunner(move game.RunnerMove) game.RunnerMove {
	b := e.State.Board
	if move.Skill == game.ExtendedMove {
		for _, d := range game.Orthogonal {
			next := b.Player.Add(d)
			if game.Manhattan(next, move.Target) < game.Manhattan(b.Player, move.Target) && b.Open(next) {
				return game.Step(next)
			}
		}
	}
	return game.Step(b.Player)
}

func (e *Engine) masterStep() metrics.MoveMetric {
	s := e.State
	start := time.Now()
	e.Master.SetSkills(s.Skills)
	e.Master.UpdateState(s.Board.Walls, s.Board.Player, s.TotalSteps)
	move := e.Master.DecideMove(s.WallsPlaced)
	elapsed := time.Since(start)

	metric := metrics.MoveMetric{Side: game.MasterSide, Skill: move.Skill.String(), Target: move.Anchor, Valid: true}
	if r, ok := e.Master.(agent.Reporter); ok {
		metric.SearchMetric = r.LastSearch()
	}
	metric.Duration = elapsed

	if err := s.ApplyMasterMove(move, e.rng); err != nil {
		log.Warn().Err(err).Msgf("master suggested %s at %s", move.Skill, move.Anchor)
		metric.Valid = false
		plain := game.MasterMove{Anchor: move.Anchor, Horizontal: move.Horizontal}
		if err := s.ApplyMasterMove(plain, e.rng); err != nil {
			log.Debug().Msgf("plain wall at %s rejected too, master passes", move.Anchor)
			if err := s.Pass(); err != nil {
				log.Error().Err(err).Msg("master pass rejected")
			}
			metric.Skill = PassSkill
			return metric
		}
		metric.Skill = plain.Skill.String()
	}
	return metric
}

func (e *Engine) Run() (game.Side, metrics.GameMetric, []metrics.MoveMetric) {
	log.Info().Msgf("match %s started", e.ID)
	for !e.State.Over() {
		if _, err := e.Step(); err != nil {
			log.Error().Err(err).Msgf("match %s stopped", e.ID)
			break
		}
	}

	metric := e.GameMetric()
	if metric.Winner == game.NoSide {
		log.Info().Msgf("match %s stopped after %d rounds with no winner", e.ID, metric.Rounds)
	} else {
		log.Info().Msgf("match %s won by %s after %d rounds", e.ID, metric.Winner, metric.Rounds)
	}
	return e.State.Winner, metric, e.moves
}

// GameMetric summarizes the match so far.
func (e *Engine) GameMetric() metrics.GameMetric {
	end := time.Now()
	return metrics.GameMetric{
		ID:          e.ID,
		Winner:      e.State.Winner,
		Rounds:      e.State.Round,
		Walls:       e.State.Board.Walls.Len(),
		RunnerSteps: e.State.TotalSteps,
		StartTime:   e.startTime,
		EndTime:     end,
		Duration:    end.Sub(e.startTime),
		TotalMoves:  len(e.moves),
	}
}
