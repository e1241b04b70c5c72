package commands

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"rfhistoric/internal/config"
	"rfhistoric/internal/discovery"
	"rfhistoric/internal/domain"
	"rfhistoric/internal/parser"
	"rfhistoric/internal/storage"
)

// ReportLoader resolves and parses the configured result files
type ReportLoader struct {
	config   *config.Config
	fs       afero.Fs
	resolver *discovery.Resolver
}

func NewReportLoader(cfg *config.Config, fs afero.Fs, resolver *discovery.Resolver) *ReportLoader {
	return &ReportLoader{config: cfg, fs: fs, resolver: resolver}
}

// resolve returns the result files named by the input path and output options
func (l *ReportLoader) resolve() ([]string, error) {
	files, err := l.resolver.Resolve(l.config.InputPath, l.config.Output)
	if err != nil {
		return nil, err
	}
	log.Debugf("report files: %v", files)
	return files, nil
}

// parse dispatches files to the parser of the configured report type
func (l *ReportLoader) parse(files []string) ([]*domain.Report, error) {
	registry := parser.NewRegistry(l.fs, parser.Options{
		FullSuiteName:     l.config.Flags.FullSuiteName,
		TrackSuiteSkipped: l.config.Flags.SuiteSkipped,
	})
	return registry.Dispatch(l.config.ReportType, files, parser.Identity{
		ExecutionName: l.config.ExecutionName,
		ProjectName:   l.config.ProjectName,
	})
}

// load returns the reports saved with --save-json when --from-json is set,
// otherwise it resolves and parses the result files.
func (l *ReportLoader) load() ([]*domain.Report, error) {
	if path := l.config.Flags.FromJSON; path != "" {
		return savedReports(storage.NewJSONStorage(l.fs, path))
	}

	files, err := l.resolve()
	if err != nil {
		return nil, err
	}
	return l.parse(files)
}

func savedReports(loader storage.Loader) ([]*domain.Report, error) {
	output, err := loader.Load()
	if err != nil {
		return nil, err
	}
	if len(output.Reports) == 0 {
		return nil, fmt.Errorf("no reports in %s", loader.Path())
	}
	reports := make([]*domain.Report, len(output.Reports))
	for i := range output.Reports {
		reports[i] = &output.Reports[i]
	}
	return reports, nil
}
