package experiments

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"mazerunner/agent"
	"mazerunner/engine"
	"mazerunner/experiments/metrics"
	"mazerunner/game"
)

const (
	NumGames   = 10 // Per configuration
	TimeBudget = 500 * time.Millisecond
)

// Config scopes an experiment run.
type Config struct {
	Rules     game.Rules
	Games     int
	Seed      uint64
	OutputDir string
	Workers   int // Games played concurrently, 1 when unset
}

func (c Config) games() int {
	if c.Games > 0 {
		return c.Games
	}
	return NumGames
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return 1
}

// RunDepthExperiment plays the default runner against masters searching 1 to 4 plies deep.
func RunDepthExperiment(cfg Config) (string, error) {
	configs := []metrics.AgentConfig{
		{ID: 1, Depth: 1, ThinkBudget: TimeBudget, Difficulty: agent.InitialDifficulty, Seed: cfg.Seed},
		{ID: 2, Depth: 2, ThinkBudget: TimeBudget, Difficulty: agent.InitialDifficulty, Seed: cfg.Seed},
		{ID: 3, Depth: 3, ThinkBudget: TimeBudget, Difficulty: agent.InitialDifficulty, Seed: cfg.Seed},
		{ID: 4, Depth: 4, ThinkBudget: TimeBudget, Difficulty: agent.InitialDifficulty, Seed: cfg.Seed},
	}
	return runExperiment("depth", cfg, configs)
}

// RunDifficultyExperiment compares starting difficulties, which only matter when the search falls back.
func RunDifficultyExperiment(cfg Config) (string, error) {
	configs := []metrics.AgentConfig{
		{ID: 1, Depth: 2, ThinkBudget: TimeBudget, Difficulty: agent.MinDifficulty, Seed: cfg.Seed},
		{ID: 2, Depth: 2, ThinkBudget: TimeBudget, Difficulty: agent.InitialDifficulty, Seed: cfg.Seed},
		{ID: 3, Depth: 2, ThinkBudget: TimeBudget, Difficulty: agent.MaxDifficulty, Seed: cfg.Seed},
	}
	return runExperiment("difficulty", cfg, configs)
}

// runExperiment plays every configuration, writes the records and returns the output directory.
func runExperiment(name string, cfg Config, configs []metrics.AgentConfig) (string, error) {
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment on %d workers...", name, cfg.workers())

	count := 0
	for ci, config := range configs {
		log.Info().Msgf("starting config %d of %d: %+v", ci+1, len(configs), config)

		seeded := make([]metrics.AgentConfig, cfg.games())
		for i := range seeded {
			seeded[i] = config
			seeded[i].Seed = cfg.Seed + uint64(count+i)
		}

		wins := 0
		for i, r := range playAll(cfg.Rules, seeded, cfg.workers()) {
			count++
			if r.winner == game.MasterSide {
				wins++
			}
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent:      config.ID,
				GameMetric: r.game,
			})
			for _, mm := range r.moves {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}
			log.Debug().Msgf("config %d game %d of %d won by %q in %d rounds", config.ID, i+1, len(seeded), r.winner, r.game.Rounds)
		}
		log.Info().Msgf("completed config %d: master won %d of %d", config.ID, wins, len(seeded))
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(cfg.OutputDir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	if err := writer.WriteReport(configs, gameRecords, moveRecords); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	log.Info().Msgf("stored %s records in %s", name, writer.Dir())
	return writer.Dir(), nil
}

type result struct {
	winner game.Side
	game   metrics.GameMetric
	moves  []metrics.MoveMetric
}

// playAll runs one game per config on a pool of workers and returns the results in config order.
func playAll(rules game.Rules, configs []metrics.AgentConfig, workers int) []result {
	results := make([]result, len(configs))
	task := make(chan int, len(configs))
	for i := range configs {
		task <- i
	}
	close(task)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := range task {
				winner, gameMetric, moves := RunGame(rules, configs[i])
				results[i] = result{winner: winner, game: gameMetric, moves: moves}
			}
		}()
	}

	wg.Wait()
	return results
}

// RunGame plays one headless match between the default runner and a master built from config.
func RunGame(rules game.Rules, config metrics.AgentConfig) (game.Side, metrics.GameMetric, []metrics.MoveMetric) {
	e := engine.LocalEngine(rules, agent.NewRunner(rules), NewMaster(rules, config), engine.WithSeed(config.Seed))
	return e.Run()
}

func NewMaster(rules game.Rules, config metrics.AgentConfig) *agent.Master {
	options := []agent.MasterOption{agent.WithSeed(config.Seed), agent.WithMetrics()}
	if config.Depth > 0 {
		options = append(options, agent.WithDepth(config.Depth))
	}
	if config.ThinkBudget > 0 {
		options = append(options, agent.WithThinkBudget(config.ThinkBudget))
	}
	if config.Difficulty > 0 {
		options = append(options, agent.WithDifficulty(config.Difficulty))
	}
	return agent.NewMaster(rules, options...)
}
