package adapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "distill.dev/pkg/distill/internal/model"
)

// Document base names inside the reports directory.
const (
	MapDocument      = "distill_map"
	ScoresDocument   = "distill_scores"
	PlanDocument     = "distill_plan"
	ResultDocument   = "distill_result"
	PlanMarkdownFile = "DISTILL_PLAN.md"
)

// ReportStore persists the write-once documents exchanged between phases.
type ReportStore interface {
	SaveMap(dir m.Path, doc *m.FileMap) (m.Path, error)
	LoadMap(dir m.Path) (*m.FileMap, error)
	SaveScores(dir m.Path, doc *m.ScoreSheet) (m.Path, error)
	LoadScores(dir m.Path) (*m.ScoreSheet, error)
	SavePlan(dir m.Path, doc *m.Plan) (m.Path, error)
	LoadPlan(dir m.Path) (*m.Plan, error)
	SavePlanMarkdown(dir m.Path, markdown string) (m.Path, error)
	SaveResult(dir m.Path, doc *m.Result) (m.Path, error)
}

// ReportStoreFactory opens a ReportStore for a document format.
type ReportStoreFactory func(format string) ReportStore

// OpenReportStore is the ReportStoreFactory backed by FileReportStore.
func OpenReportStore(format string) ReportStore {
	return NewReportStore(format)
}

// FileReportStore stores documents as JSON or YAML files.
type FileReportStore struct {
	format string
}

// NewReportStore creates a store writing documents in the given format
// ("json" or "yaml"). Unknown formats fall back to JSON.
func NewReportStore(format string) *FileReportStore {
	if format != "yaml" {
		format = "json"
	}

	return &FileReportStore{format: format}
}

// Format returns the document encoding used by the store.
func (s *FileReportStore) Format() string {
	return s.format
}

// SaveMap implements ReportStore.
func (s *FileReportStore) SaveMap(dir m.Path, doc *m.FileMap) (m.Path, error) {
	return s.save(dir, MapDocument, doc)
}

// LoadMap implements ReportStore.
func (s *FileReportStore) LoadMap(dir m.Path) (*m.FileMap, error) {
	var doc m.FileMap
	if err := s.load(dir, MapDocument, &doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// SaveScores implements ReportStore.
func (s *FileReportStore) SaveScores(dir m.Path, doc *m.ScoreSheet) (m.Path, error) {
	return s.save(dir, ScoresDocument, doc)
}

// LoadScores implements ReportStore.
func (s *FileReportStore) LoadScores(dir m.Path) (*m.ScoreSheet, error) {
	var doc m.ScoreSheet
	if err := s.load(dir, ScoresDocument, &doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// SavePlan implements ReportStore.
func (s *FileReportStore) SavePlan(dir m.Path, doc *m.Plan) (m.Path, error) {
	return s.save(dir, PlanDocument, doc)
}

// LoadPlan implements ReportStore.
func (s *FileReportStore) LoadPlan(dir m.Path) (*m.Plan, error) {
	var doc m.Plan
	if err := s.load(dir, PlanDocument, &doc); err != nil {
		return nil, err
	}

	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", s.documentPath(dir, PlanDocument), err)
	}

	return &doc, nil
}

// SaveResult implements ReportStore.
func (s *FileReportStore) SaveResult(dir m.Path, doc *m.Result) (m.Path, error) {
	return s.save(dir, ResultDocument, doc)
}

// SavePlanMarkdown writes the human-readable plan summary.
func (s *FileReportStore) SavePlanMarkdown(dir m.Path, markdown string) (m.Path, error) {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	path := filepath.Join(string(dir), PlanMarkdownFile)
	if err := os.WriteFile(path, []byte(markdown), 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	slog.Debug("wrote plan markdown", "path", path)

	return m.Path(path), nil
}

func (s *FileReportStore) documentPath(dir m.Path, name string) string {
	return filepath.Join(string(dir), name+"."+s.format)
}

func (s *FileReportStore) save(dir m.Path, name string, doc any) (m.Path, error) {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}

	data, err := s.encode(doc)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", name, err)
	}

	path := s.documentPath(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	slog.Debug("saved document", "path", path, "bytes", len(data))

	return m.Path(path), nil
}

func (s *FileReportStore) load(dir m.Path, name string, doc any) error {
	path := s.documentPath(dir, name)

	// #nosec G304 - path is built from the configured reports dir
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", path, m.ErrDocumentNotFound)
		}

		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := s.decode(data, doc); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	slog.Debug("loaded document", "path", path)

	return nil
}

func (s *FileReportStore) encode(doc any) ([]byte, error) {
	if s.format == "yaml" {
		return yaml.Marshal(doc)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(data, '\n'), nil
}

func (s *FileReportStore) decode(data []byte, doc any) error {
	if s.format == "yaml" {
		return yaml.Unmarshal(data, doc)
	}

	return json.Unmarshal(data, doc)
}
