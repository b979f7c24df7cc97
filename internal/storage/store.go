package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/san-kum/rigidsim/internal/metrics"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID        string             `json:"id"`
	Scene     string             `json:"scene"`
	Preset    string             `json:"preset,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Steps     int                `json:"steps"`
	Dt        float64            `json:"dt"`
	Gravity   [3]float64         `json:"gravity"`
	Bodies    int                `json:"bodies"`
	Cancelled bool               `json:"cancelled,omitempty"`
	Metrics   map[string]float64 `json:"metrics"`
}

// NewRunID names a run after its scene plus a short random suffix.
func NewRunID(scene string) string {
	return fmt.Sprintf("%s_%s", scene, uuid.NewString()[:8])
}

// Save writes a run directory holding the metadata and the recorded
// trajectory. An empty meta.ID is filled in; the final id is returned.
func (s *Store) Save(meta RunMetadata, rec *metrics.Recording) (string, error) {
	if meta.ID == "" {
		meta.ID = NewRunID(meta.Scene)
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = s.now()
	}
	if rec != nil {
		meta.Bodies = rec.Bodies()
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("create run dir: %w", err)
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeStates(filepath.Join(runDir, statesFile), rec); err != nil {
		return "", err
	}
	return meta.ID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create metadata: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	return nil
}

func writeStates(path string, rec *metrics.Recording) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create states: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if rec != nil && rec.Len() > 0 {
		header := []string{"time"}
		for i := 0; i < rec.Bodies(); i++ {
			header = append(header, fmt.Sprintf("b%d_x", i), fmt.Sprintf("b%d_y", i), fmt.Sprintf("b%d_z", i))
		}
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write states: %w", err)
		}

		for i, t := range rec.Times {
			row := []string{formatFloat(t)}
			for _, p := range rec.Positions[i] {
				row = append(row, formatFloat(p.X()), formatFloat(p.Y()), formatFloat(p.Z()))
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("write states: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write states: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
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

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
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
		return nil, fmt.Errorf("decode metadata of %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadStates reads a run's trajectory back. Rows that fail to parse are
// skipped.
func (s *Store) LoadStates(runID string) (*metrics.Recording, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read states of %s: %w", runID, err)
	}

	rec := &metrics.Recording{
		Times:     make([]float64, 0),
		Positions: make([][]mgl64.Vec3, 0),
	}
	if len(records) < 2 {
		return rec, nil
	}

	for _, record := range records[1:] {
		vals, ok := parseRow(record)
		if !ok {
			continue
		}
		pos := make([]mgl64.Vec3, 0, len(vals)/3)
		for j := 1; j+2 < len(vals); j += 3 {
			pos = append(pos, mgl64.Vec3{vals[j], vals[j+1], vals[j+2]})
		}
		rec.Times = append(rec.Times, vals[0])
		rec.Positions = append(rec.Positions, pos)
	}
	return rec, nil
}

func parseRow(record []string) ([]float64, bool) {
	if len(record) == 0 {
		return nil, false
	}
	vals := make([]float64, len(record))
	for i, field := range record {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, false
		}
		vals[i] = v
	}
	return vals, true
}

type ExportData struct {
	RunMetadata
	Samples []ExportSample `json:"samples"`
}

type ExportSample struct {
	Time      float64      `json:"time"`
	Positions [][3]float64 `json:"positions"`
}

// ExportJSON writes a run's metadata and trajectory as one JSON document.
func (s *Store) ExportJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	rec, err := s.LoadStates(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		RunMetadata: *meta,
		Samples:     make([]ExportSample, rec.Len()),
	}
	for i, t := range rec.Times {
		pos := make([][3]float64, len(rec.Positions[i]))
		for j, p := range rec.Positions[i] {
			pos[j] = [3]float64(p)
		}
		data.Samples[i] = ExportSample{Time: t, Positions: pos}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
