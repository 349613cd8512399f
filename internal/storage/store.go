package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/san-kum/loaninvest/internal/sim"
	"github.com/shopspring/decimal"
)

const (
	metadataFile  = "metadata.json"
	snapshotsFile = "snapshots.csv"
)

var ErrRunNotFound = errors.New("run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Scenario  sim.Scenario       `json:"scenario"`
	Split     sim.Split          `json:"split"`
	Summary   sim.Summary        `json:"summary"`
	Metrics   map[string]float64 `json:"metrics"`
}

// snapshotRow is the CSV shape of a sim.Snapshot. Money is kept as fixed
// two-place strings so reloading is exact.
type snapshotRow struct {
	Month             int    `csv:"month"`
	LoanBalance       string `csv:"loan_balance"`
	InvestmentBalance string `csv:"investment_balance"`
	InterestPaid      string `csv:"interest_paid"`
	PrincipalPaid     string `csv:"principal_paid"`
	Contributions     string `csv:"contributions"`
	InvestmentGain    string `csv:"investment_gain"`
	NetWorth          string `csv:"net_worth"`
}

func toRow(s sim.Snapshot) *snapshotRow {
	return &snapshotRow{
		Month:             s.Month,
		LoanBalance:       s.LoanBalance.StringFixed(2),
		InvestmentBalance: s.InvestmentBalance.StringFixed(2),
		InterestPaid:      s.InterestPaid.StringFixed(2),
		PrincipalPaid:     s.PrincipalPaid.StringFixed(2),
		Contributions:     s.Contributions.StringFixed(2),
		InvestmentGain:    s.InvestmentGain.StringFixed(2),
		NetWorth:          s.NetWorth.StringFixed(2),
	}
}

func (r *snapshotRow) snapshot() (sim.Snapshot, error) {
	s := sim.Snapshot{Month: r.Month}
	var err error
	parse := func(raw string) decimal.Decimal {
		if err != nil {
			return decimal.Zero
		}
		var d decimal.Decimal
		d, err = decimal.NewFromString(raw)
		return d
	}
	s.LoanBalance = parse(r.LoanBalance)
	s.InvestmentBalance = parse(r.InvestmentBalance)
	s.InterestPaid = parse(r.InterestPaid)
	s.PrincipalPaid = parse(r.PrincipalPaid)
	s.Contributions = parse(r.Contributions)
	s.InvestmentGain = parse(r.InvestmentGain)
	s.NetWorth = parse(r.NetWorth)
	if err != nil {
		return sim.Snapshot{}, fmt.Errorf("month %d: %w", r.Month, err)
	}
	return s, nil
}

func writeSnapshots(f *os.File, snapshots []sim.Snapshot) error {
	rows := make([]*snapshotRow, len(snapshots))
	for i, snap := range snapshots {
		rows[i] = toRow(snap)
	}
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("write snapshots: %w", err)
	}
	return nil
}

// Save writes the run under a fresh id and returns it.
func (s *Store) Save(name string, result *sim.Result) (string, error) {
	runID := uuid.NewString()
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: time.Now().UTC(),
		Scenario:  result.Scenario,
		Split:     result.Split,
		Summary:   result.Summary,
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, snapshotsFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := writeSnapshots(csvFile, result.Snapshots); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns saved runs, newest first. Unreadable entries are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSnapshots(runID string) ([]sim.Snapshot, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, snapshotsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	var rows []*snapshotRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []sim.Snapshot{}, nil
		}
		return nil, err
	}

	snaps := make([]sim.Snapshot, 0, len(rows))
	for _, r := range rows {
		snap, err := r.snapshot()
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

// LoadResult rebuilds a full result from a saved run.
func (s *Store) LoadResult(runID string) (*sim.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	snaps, err := s.LoadSnapshots(runID)
	if err != nil {
		return nil, err
	}
	return &sim.Result{
		Scenario:  meta.Scenario,
		Split:     meta.Split,
		Snapshots: snaps,
		Summary:   meta.Summary,
		Metrics:   meta.Metrics,
	}, nil
}
