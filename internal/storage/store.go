// Package storage persists completed tracking runs for the CLI's
// list/plot/export commands. The tracking core itself defines no
// persistence; only the read-back samples are written.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/nkoval/beamsim/internal/tracker"
)

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
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Steps     int                `json:"steps"`
	Direction string             `json:"direction"`
	Elements  []string           `json:"elements"`
	Particles int                `json:"particles"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one run directory: metadata.json plus samples.csv with a
// time column and an x/y/z/energy column group per particle.
func (s *Store) Save(name string, dt float64, direction string, elementKinds []string, result *tracker.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Dt:        dt,
		Steps:     result.StepsTaken,
		Direction: direction,
		Elements:  elementKinds,
		Particles: len(result.Trajectories),
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time"}
	for i := range result.Trajectories {
		header = append(header,
			fmt.Sprintf("p%d_x", i),
			fmt.Sprintf("p%d_y", i),
			fmt.Sprintf("p%d_z", i),
			fmt.Sprintf("p%d_energy_gev", i),
		)
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for step, t := range result.Times {
		row := []string{formatFloat(t)}
		for i := range result.Trajectories {
			if step >= len(result.Trajectories[i]) {
				continue
			}
			pos := result.Trajectories[i][step]
			row = append(row,
				formatFloat(pos.X),
				formatFloat(pos.Y),
				formatFloat(pos.Z),
				formatFloat(result.Energies[i][step]),
			)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 17, 64)
}

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
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSamples reads samples.csv back as a time axis plus one column
// per sampled quantity, keyed by header name.
func (s *Store) LoadSamples(runID string) (times []float64, columns map[string][]float64, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, map[string][]float64{}, nil
	}

	header := records[0]
	columns = make(map[string][]float64, len(header)-1)
	times = make([]float64, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) != len(header) {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)
		for col := 1; col < len(record); col++ {
			v, err := strconv.ParseFloat(record[col], 64)
			if err != nil {
				continue
			}
			columns[header[col]] = append(columns[header[col]], v)
		}
	}

	return times, columns, nil
}
