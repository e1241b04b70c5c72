package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"rfhistoric/internal/domain"
)

// JSONStorage stores normalized reports in a JSON file
type JSONStorage struct {
	fs   afero.Fs
	path string
	now  func() time.Time
}

// NewJSONStorage returns a storage that reads and writes the JSON file at path
func NewJSONStorage(fs afero.Fs, path string) *JSONStorage {
	return &JSONStorage{fs: fs, path: path, now: time.Now}
}

// Path returns the JSON file location
func (s *JSONStorage) Path() string {
	return s.path
}

// Save writes the reports to the JSON file, replacing any previous content.
func (s *JSONStorage) Save(_ context.Context, reports []*domain.Report) error {
	output := domain.ReportsOutput{
		Timestamp: s.now().UTC().Format(time.RFC3339),
		Reports:   make([]domain.Report, 0, len(reports)),
	}
	for _, r := range reports {
		output.Reports = append(output.Reports, *r)
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal reports: %w", err)
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, data, 0644); err != nil {
		return fmt.Errorf("write reports: %w", err)
	}
	return nil
}

// Load reads the reports from the JSON file.
func (s *JSONStorage) Load() (*domain.ReportsOutput, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, fmt.Errorf("read reports file: %w", err)
	}
	var output domain.ReportsOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse reports: %w", err)
	}
	return &output, nil
}
