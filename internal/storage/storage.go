package storage

import (
	"context"

	"rfhistoric/internal/domain"
)

// Storage persists normalized reports. Each report is written exactly once.
type Storage interface {
	Save(ctx context.Context, reports []*domain.Report) error
}

// Loader reads reports back from a previous Save (e.g. for the summary and view commands).
type Loader interface {
	Load() (*domain.ReportsOutput, error)
	// Path returns the location the reports are read from
	Path() string
}

// Progress receives the number of suite and test rows written so far
type Progress interface {
	Update(suites, tests int)
	Finish()
}

// ProgressFactory creates a Progress for a write of total rows
type ProgressFactory func(total int) Progress

type noopProgress struct{}

func (noopProgress) Update(int, int) {}
func (noopProgress) Finish()         {}

func noProgress(int) Progress {
	return noopProgress{}
}

// Multi writes to several storages in order and stops at the first failure
type Multi []Storage

// Save calls Save on every storage
func (m Multi) Save(ctx context.Context, reports []*domain.Report) error {
	for _, s := range m {
		if err := s.Save(ctx, reports); err != nil {
			return err
		}
	}
	return nil
}
