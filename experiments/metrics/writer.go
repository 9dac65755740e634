package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// AgentConfig describes one master configuration under test. Runners are always the default agent.
type AgentConfig struct {
	ID          int
	Depth       int
	ThinkBudget time.Duration
	Difficulty  float64
	Seed        uint64
}

type GameRecord struct {
	ID    int
	Agent int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

const (
	AgentConfigsFile = "agent_configs.csv"
	GameRecordsFile  = "game_records.csv"
	MoveRecordsFile  = "move_records.csv"
	ReportFile       = "report.xlsx"
)

type Writer struct {
	baseDir string
}

// NewWriter creates <root>/<name>/<timestamp> to hold the experiment's files.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

var (
	agentConfigHeader = []string{"id", "depth", "think_budget", "difficulty", "seed"}
	gameRecordHeader  = []string{"id", "agent", "match", "winner", "rounds", "walls", "runner_steps", "start_time", "end_time", "duration", "total_moves"}
	moveRecordHeader  = []string{"game", "step", "side", "skill", "target_x", "target_y", "valid", "duration", "depth", "nodes", "evaluations", "cache_hits", "cutoffs", "fell_back"}
)

func agentConfigRows(configs []AgentConfig) [][]string {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Depth),
			config.ThinkBudget.String(),
			strconv.FormatFloat(config.Difficulty, 'f', 2, 64),
			strconv.FormatUint(config.Seed, 10),
		})
	}
	return rows
}

func gameRecordRows(records []GameRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Agent),
			record.GameMetric.ID.String(),
			string(record.Winner),
			strconv.Itoa(record.Rounds),
			strconv.Itoa(record.Walls),
			strconv.Itoa(record.RunnerSteps),
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.GameMetric.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	return rows
}

func moveRecordRows(records []MoveRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			string(record.Side),
			record.Skill,
			strconv.Itoa(record.Target.X),
			strconv.Itoa(record.Target.Y),
			strconv.FormatBool(record.Valid),
			record.SearchMetric.Duration.String(),
			strconv.Itoa(record.Depth),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Evaluations),
			strconv.Itoa(record.CacheHits),
			strconv.Itoa(record.Cutoffs),
			strconv.FormatBool(record.FellBack),
		})
	}
	return rows
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	return w.writeCSV(AgentConfigsFile, "agent configs", agentConfigHeader, agentConfigRows(configs))
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	return w.writeCSV(GameRecordsFile, "game records", gameRecordHeader, gameRecordRows(records))
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	return w.writeCSV(MoveRecordsFile, "move records", moveRecordHeader, moveRecordRows(records))
}

func (w *Writer) writeCSV(name, kind string, header []string, rows [][]string) error {
	// Create a file
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s file: %w", kind, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", kind, err)
	}
	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", kind, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", kind, err)
	}
	return nil
}

// WriteReport stores all three record kinds as sheets of one workbook.
func (w *Writer) WriteReport(configs []AgentConfig, games []GameRecord, moves []MoveRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{"agents", agentConfigHeader, agentConfigRows(configs)},
		{"games", gameRecordHeader, gameRecordRows(games)},
		{"moves", moveRecordHeader, moveRecordRows(moves)},
	}
	for _, sheet := range sheets {
		if _, err := f.NewSheet(sheet.name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet.name, err)
		}
		if err := f.SetSheetRow(sheet.name, "A1", &sheet.header); err != nil {
			return fmt.Errorf("failed to write %s header: %w", sheet.name, err)
		}
		for i, row := range sheet.rows {
			if err := f.SetSheetRow(sheet.name, fmt.Sprintf("A%d", i+2), &row); err != nil {
				return fmt.Errorf("failed to write %s row: %w", sheet.name, err)
			}
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	if err := f.SaveAs(filepath.Join(w.baseDir, ReportFile)); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}
