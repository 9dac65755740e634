package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"mazerunner/game"
	"mazerunner/meta"
)

// Config holds the application's configuration values.
type Config struct {
	GridSize        int           // Side length of the maze
	ProtectedRadius int           // No-wall radius around the goal, 0 disables it
	WinCoverage     float64       // Wall coverage at which the master wins
	MaxRounds       int           // Rounds before a match is called off
	SearchDepth     int           // Initial minimax depth of the master
	ThinkBudget     time.Duration // Soft per-decision time limit of the master
	Seed            uint64        // Seed for agents and engine, 0 picks one from the clock
	Games           int           // Games per configuration in experiment mode
	Workers         int           // Experiment games played concurrently
	OutputDir       string        // Root directory for experiment records
	HostIP          string        // Host IP for the server
	RESTPort        int           // Port for the REST API
	GinMode         string        // Mode for the Gin framework (e.g., release, debug, test)
	LogLevel        string        // zerolog level name
}

// Load reads the configuration from the environment after loading any of the given .env files,
// or ./.env when none are given. Missing files are not an error.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load env file: %w", err)
		}
		log.Debug().Msgf(".env file not found: %v", err)
	}

	var (
		cfg  Config
		errs []error
	)
	cfg.GridSize = getEnvAsInt("GRID_SIZE", meta.GRID_SIZE, &errs)
	cfg.ProtectedRadius = getEnvAsInt("PROTECTED_RADIUS", meta.PROTECTED_RADIUS, &errs)
	cfg.WinCoverage = getEnvAsFloat("WIN_COVERAGE", meta.WIN_COVERAGE, &errs)
	cfg.MaxRounds = getEnvAsInt("MAX_ROUNDS", meta.MAX_ROUNDS, &errs)
	cfg.SearchDepth = getEnvAsInt("SEARCH_DEPTH", meta.SEARCH_DEPTH, &errs)
	cfg.ThinkBudget = getEnvAsDuration("THINK_BUDGET", meta.THINK_BUDGET_MS*time.Millisecond, &errs)
	cfg.Seed = getEnvAsUint("SEED", 0, &errs)
	cfg.Games = getEnvAsInt("GAMES", 10, &errs)
	cfg.Workers = getEnvAsInt("WORKERS", 1, &errs)
	cfg.OutputDir = getEnvWithDefault("OUTPUT_DIR", "records")
	cfg.HostIP = getEnvWithDefault("HOST_IP", "127.0.0.1")
	cfg.RESTPort = getEnvAsInt("REST_PORT", 8080, &errs)
	cfg.GinMode = getEnvWithDefault("GIN_MODE", "release")
	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if err := c.Rules().Validate(); err != nil {
		return fmt.Errorf("invalid GRID_SIZE, PROTECTED_RADIUS, WIN_COVERAGE or MAX_ROUNDS: %w", err)
	}
	if c.SearchDepth < 1 {
		return fmt.Errorf("SEARCH_DEPTH must be positive, got %d", c.SearchDepth)
	}
	if c.Workers < 1 {
		return fmt.Errorf("WORKERS must be positive, got %d", c.Workers)
	}
	return nil
}

// Rules builds the match rules from the standard ones and the configured overrides.
func (c Config) Rules() game.Rules {
	r := game.NewStandardRules()
	r.Size = c.GridSize
	r.ProtectedRadius = c.ProtectedRadius
	r.WinCoverage = c.WinCoverage
	r.MaxRounds = c.MaxRounds
	return r
}

// Addr is the listen address of the REST API.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HostIP, c.RESTPort)
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int, errs *[]error) int {
	return parseEnv(key, defaultValue, strconv.Atoi, errs)
}

func getEnvAsFloat(key string, defaultValue float64, errs *[]error) float64 {
	return parseEnv(key, defaultValue, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) }, errs)
}

func getEnvAsUint(key string, defaultValue uint64, errs *[]error) uint64 {
	return parseEnv(key, defaultValue, func(s string) (uint64, error) { return strconv.ParseUint(s, 10, 64) }, errs)
}

func getEnvAsDuration(key string, defaultValue time.Duration, errs *[]error) time.Duration {
	return parseEnv(key, defaultValue, time.ParseDuration, errs)
}

// parseEnv parses an environment variable, recording a failure in errs and returning the default.
func parseEnv[T any](key string, defaultValue T, parse func(string) (T, error), errs *[]error) T {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := parse(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("environment variable %s: %w", key, err))
		return defaultValue
	}
	return value
}
