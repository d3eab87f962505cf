package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
)

// AgentConfig identifies the settings of the computer players of a batch.
type AgentConfig struct {
	ID      int    `parquet:"id"`
	Name    string `parquet:"name,dict"`
	DelayNS int64  `parquet:"delay_ns"`
	Pattern string `parquet:"pattern,dict"`
	Seed    uint64 `parquet:"seed"`
}

type GameRecord struct {
	ID          string `parquet:"id"`
	Number      int    `parquet:"number"`
	Players     int    `parquet:"players"`
	Width       int    `parquet:"width"`
	Height      int    `parquet:"height"`
	TurnLength  int    `parquet:"turn_length"`
	Winner      string `parquet:"winner,dict"`
	StartMillis int64  `parquet:"start_ms"`
	EndMillis   int64  `parquet:"end_ms"`
	DurationNS  int64  `parquet:"duration_ns"`
	TotalMoves  int    `parquet:"total_moves"`
	Turns       int    `parquet:"turns"`
}

type DecisionRecord struct {
	Game        string `parquet:"game,dict"`
	Step        int    `parquet:"step"`
	Player      int    `parquet:"player"`
	Mode        string `parquet:"mode,dict"`
	TargetX     int    `parquet:"target_x"`
	TargetY     int    `parquet:"target_y"`
	Found       bool   `parquet:"found"`
	MaxPath     int    `parquet:"max_path"`
	PathLength  int    `parquet:"path_length"`
	Searches    int64  `parquet:"searches"`
	Expanded    int64  `parquet:"expanded"`
	StartMillis int64  `parquet:"start_ms"`
	DurationNS  int64  `parquet:"duration_ns"`
}

func NewGameRecord(number int, m GameMetric) GameRecord {
	return GameRecord{
		ID:          m.ID,
		Number:      number,
		Players:     m.Players,
		Width:       m.Width,
		Height:      m.Height,
		TurnLength:  m.TurnLength,
		Winner:      m.Winner,
		StartMillis: m.StartTime.UnixMilli(),
		EndMillis:   m.EndTime.UnixMilli(),
		DurationNS:  m.Duration.Nanoseconds(),
		TotalMoves:  m.TotalMoves,
		Turns:       m.Turns,
	}
}

func NewDecisionRecord(game string, step int, m DecisionMetric) DecisionRecord {
	return DecisionRecord{
		Game:        game,
		Step:        step,
		Player:      m.Player,
		Mode:        m.Mode,
		TargetX:     m.TargetX,
		TargetY:     m.TargetY,
		Found:       m.Found,
		MaxPath:     m.MaxPath,
		PathLength:  m.PathLength,
		Searches:    m.Searches,
		Expanded:    m.Expanded,
		StartMillis: m.StartTime.UnixMilli(),
		DurationNS:  m.Duration.Nanoseconds(),
	}
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> and writes every table there.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, name, timestamp)
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string { return w.baseDir }

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	return writeTable(filepath.Join(w.baseDir, "agent_configs.parquet"), "agent_configs_v1", configs)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	return writeTable(filepath.Join(w.baseDir, "game_records.parquet"), "game_records_v1", records)
}

func (w *Writer) WriteDecisionRecords(records []DecisionRecord) error {
	return writeTable(filepath.Join(w.baseDir, "decision_records.parquet"), "decision_records_v1", records)
}

// writeTable writes rows to a temporary file and renames it into place.
func writeTable[T any](path, schema string, rows []T) error {
	tmp := path + ".tmp"
	_ = os.Remove(tmp)

	if err := parquet.WriteFile(tmp, rows, parquet.KeyValueMetadata("schema", schema)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", filepath.Base(path), err)
	}
	return nil
}
