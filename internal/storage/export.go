package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/loaninvest/internal/sim"
)

type ExportData struct {
	Name      string             `json:"name,omitempty"`
	Scenario  sim.Scenario       `json:"scenario"`
	Split     sim.Split          `json:"split"`
	Months    int                `json:"months"`
	Snapshots []sim.Snapshot     `json:"snapshots"`
	Summary   sim.Summary        `json:"summary"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

func NewExportData(name string, result *sim.Result) ExportData {
	return ExportData{
		Name:      name,
		Scenario:  result.Scenario,
		Split:     result.Split,
		Months:    len(result.Snapshots),
		Snapshots: result.Snapshots,
		Summary:   result.Summary,
		Metrics:   result.Metrics,
	}
}

func WriteJSON(w io.Writer, name string, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(name, result))
}

// ExportJSON writes the result to path, or to stdout when path is "-".
func ExportJSON(path, name string, result *sim.Result) error {
	if path == "-" {
		return WriteJSON(os.Stdout, name, result)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, name, result)
}

// ExportCSV copies a run's snapshots to path in the on-disk CSV layout.
func ExportCSV(path string, snapshots []sim.Snapshot) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return writeSnapshots(file, snapshots)
}
