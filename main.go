package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"mazerunner/agent"
	"mazerunner/api"
	agentapi "mazerunner/api/agents"
	"mazerunner/api/i"
	matchapi "mazerunner/api/match"
	"mazerunner/config"
	"mazerunner/engine"
	"mazerunner/experiments"
	"mazerunner/game"
)

func main() {
	mode := flag.String("mode", "play", "One of play, experiment or serve")
	envFile := flag.String("env", "", "Optional .env file, ./.env when empty")
	remote := flag.String("remote", "", "Base URL of an agent server to play against, e.g. http://127.0.0.1:8080/api/v1")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msgf("unknown log level %q", cfg.LogLevel)
	}
	zerolog.SetGlobalLevel(level)

	switch *mode {
	case "play":
		play(cfg, *remote)
	case "experiment":
		runExperiments(cfg)
	case "serve":
		serve(cfg)
	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}
}

func seed(cfg config.Config) uint64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return uint64(time.Now().UnixNano())
}

// play runs a single match and prints the final maze.
func play(cfg config.Config, remote string) {
	rules := cfg.Rules()
	s := seed(cfg)

	var (
		runner agent.RunnerAgent = agent.NewRunner(rules)
		master agent.MasterAgent = agent.NewMaster(rules,
			agent.WithDepth(cfg.SearchDepth),
			agent.WithThinkBudget(cfg.ThinkBudget),
			agent.WithSeed(s),
		)
	)
	if remote != "" {
		runner = engine.NewRemoteRunner(remote, rules)
		master = engine.NewRemoteMaster(remote, rules, agent.InitialDifficulty, cfg.SearchDepth, s)
	}

	e := engine.LocalEngine(rules, runner, master, engine.WithSeed(s))
	winner, metric, _ := e.Run()

	fmt.Print(render(e.State.Board))
	if winner == game.NoSide {
		fmt.Printf("No winner after %d rounds\n", metric.Rounds)
		return
	}
	fmt.Printf("Winner: %s after %d rounds, %d walls, %d runner steps\n", winner, metric.Rounds, metric.Walls, metric.RunnerSteps)
}

func runExperiments(cfg config.Config) {
	expCfg := experiments.Config{
		Rules:     cfg.Rules(),
		Games:     cfg.Games,
		Seed:      seed(cfg),
		OutputDir: cfg.OutputDir,
		Workers:   cfg.Workers,
	}

	log.Info().Msg("running depth experiment...")
	dir, err := experiments.RunDepthExperiment(expCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("depth experiment failed")
	}
	log.Info().Msgf("depth experiment written to %s", dir)

	log.Info().Msg("running difficulty experiment...")
	dir, err = experiments.RunDifficultyExperiment(expCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("difficulty experiment failed")
	}
	log.Info().Msgf("difficulty experiment written to %s", dir)
}

func serve(cfg config.Config) {
	gin.SetMode(cfg.GinMode)

	router := api.NewRouter(api.Config{
		Addr:    cfg.Addr(),
		BaseURL: "/api",
		Controllers: []i.Controller{
			matchapi.NewMatchController(matchapi.Defaults{
				Rules:       cfg.Rules(),
				Depth:       cfg.SearchDepth,
				ThinkBudget: cfg.ThinkBudget,
				Seed:        cfg.Seed,
			}),
			agentapi.NewAgentController(),
		},
	})
	if err := router.Run(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// render draws the maze row by row: R runner, G goal, # wall.
func render(b game.Board) string {
	var sb strings.Builder
	goal := b.Goal()
	for y := 0; y < b.Rules.Size; y++ {
		for x := 0; x < b.Rules.Size; x++ {
			p := game.Position{X: x, Y: y}
			switch {
			case p == b.Player:
				sb.WriteByte('R')
			case p == goal:
				sb.WriteByte('G')
			case b.Walls.Has(p):
				sb.WriteByte('#')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
