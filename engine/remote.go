package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"mazerunner/agent"
	"mazerunner/experiments/metrics"
	"mazerunner/game"
)

const (
	RunnerMovePath = "/agents/runner/move"
	MasterMovePath = "/agents/master/move"
)

// RunnerRequest is the snapshot a remote runner decides on.
type RunnerRequest struct {
	Rules                game.Rules      `json:"rules"`
	Walls                []game.Position `json:"walls"`
	Player               game.Position   `json:"player"`
	RoundsSinceWallBreak int             `json:"rounds_since_wall_break"`
}

type RunnerResponse struct {
	Move game.RunnerMove `json:"move"`
}

// MasterRequest carries everything a stateless server needs to rebuild the master for one decision.
type MasterRequest struct {
	Rules       game.Rules            `json:"rules"`
	Walls       []game.Position       `json:"walls"`
	Player      game.Position         `json:"player"`
	PlayerSteps int                   `json:"player_steps"`
	Skills      game.MasterSkillState `json:"skills"`
	WallsPlaced int                   `json:"walls_placed"`
	Difficulty  float64               `json:"difficulty"`
	Depth       int                   `json:"depth"`
	Seed        uint64                `json:"seed"`
}

type MasterResponse struct {
	Move       game.MasterMove      `json:"move"`
	Difficulty float64              `json:"difficulty"`
	Depth      int                  `json:"depth"`
	Search     metrics.SearchMetric `json:"search"`
}

// RemoteRunner asks an agent server for every runner decision.
type RemoteRunner struct {
	url     string
	client  *http.Client
	request RunnerRequest
}

func NewRemoteRunner(baseURL string, rules game.Rules) *RemoteRunner {
	return &RemoteRunner{
		url:     baseURL + RunnerMovePath,
		client:  &http.Client{Timeout: 10 * time.Second},
		request: RunnerRequest{Rules: rules},
	}
}

func (r *RemoteRunner) UpdateState(walls game.WallSet, player game.Position, roundsSinceWallBreak int) {
	r.request.Walls = walls.Sorted()
	r.request.Player = player
	r.request.RoundsSinceWallBreak = roundsSinceWallBreak
}

// DecideMove stays put when the server cannot be reached.
func (r *RemoteRunner) DecideMove() game.RunnerMove {
	resp, err := post[RunnerRequest, RunnerResponse](r.client, r.url, r.request)
	if err != nil {
		log.Warn().Err(err).Msg("remote runner unavailable")
		return game.Step(r.request.Player)
	}
	return resp.Move
}

// RemoteMaster asks an agent server for every master decision and keeps the adapted
// difficulty and depth between calls.
type RemoteMaster struct {
	url     string
	client  *http.Client
	request MasterRequest
	last    metrics.SearchMetric
}

func NewRemoteMaster(baseURL string, rules game.Rules, difficulty float64, depth int, seed uint64) *RemoteMaster {
	return &RemoteMaster{
		url:    baseURL + MasterMovePath,
		client: &http.Client{Timeout: 10 * time.Second},
		request: MasterRequest{
			Rules:      rules,
			Difficulty: difficulty,
			Depth:      depth,
			Seed:       seed,
		},
	}
}

func (m *RemoteMaster) UpdateState(walls game.WallSet, player game.Position, playerSteps int) {
	m.request.Walls = walls.Sorted()
	m.request.Player = player
	m.request.PlayerSteps = playerSteps
}

func (m *RemoteMaster) SetSkills(skills game.MasterSkillState) {
	m.request.Skills = skills
}

// DecideMove returns the zero move when the server cannot be reached; the driver rejects or degrades it.
func (m *RemoteMaster) DecideMove(wallsPlaced int) game.MasterMove {
	m.request.WallsPlaced = wallsPlaced
	m.request.Seed++
	resp, err := post[MasterRequest, MasterResponse](m.client, m.url, m.request)
	if err != nil {
		log.Warn().Err(err).Msg("remote master unavailable")
		m.last = metrics.SearchMetric{FellBack: true}
		return game.MasterMove{}
	}
	m.request.Difficulty = resp.Difficulty
	m.request.Depth = resp.Depth
	m.last = resp.Search
	return resp.Move
}

func (m *RemoteMaster) Difficulty() float64 {
	return m.request.Difficulty
}

func (m *RemoteMaster) Depth() int {
	return m.request.Depth
}

func (m *RemoteMaster) LastSearch() metrics.SearchMetric {
	return m.last
}

var (
	_ agent.RunnerAgent = (*RemoteRunner)(nil)
	_ agent.MasterAgent = (*RemoteMaster)(nil)
	_ agent.Reporter    = (*RemoteMaster)(nil)
)

func post[Req, Resp any](client *http.Client, url string, payload Req) (Resp, error) {
	var out Resp
	body, err := json.Marshal(payload)
	if err != nil {
		return out, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return out, fmt.Errorf("failed to reach agent server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return out, fmt.Errorf("agent server returned status %d: %s", resp.StatusCode, msg)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("failed to decode agent response: %w", err)
	}
	return out, nil
}
