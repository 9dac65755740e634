// meta/meta.go
package meta

// GRID_SIZE defines the side length of the square maze.
const GRID_SIZE = 24

// ACTIONS_PER_ROUND defines how many actions the runner takes before the master moves.
const ACTIONS_PER_ROUND = 4

// WALL_BREAK_THRESHOLD defines the master rounds needed to unlock the runner's wall break.
const WALL_BREAK_THRESHOLD = 4

// SKILL_COOLDOWN defines the cooldown of the master's double wall and forced teleport.
const SKILL_COOLDOWN = 3

// WIN_COVERAGE defines the wall coverage at which the master wins.
const WIN_COVERAGE = 0.3

// PROTECTED_RADIUS defines the no-wall zone around the goal.
const PROTECTED_RADIUS = 6

// SEARCH_DEPTH defines the initial minimax depth of the master.
const SEARCH_DEPTH = 3

// THINK_BUDGET_MS defines the master's soft think time in milliseconds.
const THINK_BUDGET_MS = 500

// MAX_GRID_SIZE bounds the side length accepted from configuration and clients.
const MAX_GRID_SIZE = 64

// MAX_ROUNDS caps a game that neither side can finish.
const MAX_ROUNDS = 300
