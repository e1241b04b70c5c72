package parser

import (
	"encoding/xml"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"rfhistoric/internal/convert"
	"rfhistoric/internal/domain"
	rferrors "rfhistoric/internal/errors"
)

// StatConfig controls the statistics computed for native reports
type StatConfig struct {
	// SuiteStatLevel is the deepest suite level listed in suite statistics, root is 1
	SuiteStatLevel int
	// TagStatCombine holds tag patterns like "tagANDanother" reported as combined stats
	TagStatCombine []string
}

// DefaultStatConfig is the statistics configuration applied to every native report
var DefaultStatConfig = StatConfig{
	SuiteStatLevel: 2,
	TagStatCombine: []string{"tagANDanother"},
}

// RobotParser parses Robot Framework output.xml files
type RobotParser struct {
	fs         afero.Fs
	opts       Options
	statConfig StatConfig
}

// NewRobotParser creates a new RobotParser
func NewRobotParser(fs afero.Fs, opts Options) *RobotParser {
	return &RobotParser{
		fs:         fs,
		opts:       opts,
		statConfig: DefaultStatConfig,
	}
}

// Name returns the report type
func (p *RobotParser) Name() string {
	return TypeRobot
}

// Parse combines all files into one execution and returns a single report
func (p *RobotParser) Parse(files []string) ([]*domain.Report, error) {
	if len(files) == 0 {
		return nil, rferrors.Formatf("no output files given")
	}

	roots := make([]robotSuite, 0, len(files))
	for _, file := range files {
		root, err := p.load(file)
		if err != nil {
			return nil, err
		}
		roots = append(roots, root)
	}

	root := roots[0]
	if len(roots) > 1 {
		root = combineSuites(roots)
	}

	report, err := p.normalize(root)
	if err != nil {
		return nil, err
	}
	report.Source = files
	return []*domain.Report{report}, nil
}

func (p *RobotParser) load(path string) (robotSuite, error) {
	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return robotSuite{}, fmt.Errorf("read %s: %w", path, err)
	}

	var out robotOutput
	if err := xml.Unmarshal(data, &out); err != nil {
		return robotSuite{}, rferrors.WrapFormat(err, "parse "+path)
	}
	log.Debugf("loaded %s (generator %q, root suite %q)", path, out.Generator, out.Suite.Name)
	return out.Suite, nil
}

func (p *RobotParser) normalize(root robotSuite) (*domain.Report, error) {
	agg := newSuiteAggregator(p.opts, p.statConfig)
	total, elapsed := agg.visitSuite(&root, "", 1)

	minutes, err := convert.ElapsedMinutes(elapsed)
	if err != nil {
		return nil, err
	}

	total.Name = "All Tests"
	stats := &domain.Statistics{
		Total:    total,
		Suites:   agg.suiteStats,
		Tags:     agg.tags.stats(),
		Combined: agg.combined,
	}

	return &domain.Report{
		Summary: domain.ExecutionSummary{
			Total:           total.Total(),
			Passed:          total.Passed,
			Failed:          total.Failed,
			Skipped:         total.Skipped,
			DurationMinutes: minutes,
			SuiteTotal:      agg.suiteTotal,
			SuitePassed:     agg.suitePassed,
			SuiteFailed:     agg.suiteFailed,
			SuiteSkipped:    agg.suiteSkipped,
		},
		Suites:     agg.suites,
		Tests:      agg.tests,
		Statistics: stats,
	}, nil
}

// suiteAggregator collects everything produced by one traversal of a result tree
type suiteAggregator struct {
	opts       Options
	statConfig StatConfig

	suiteTotal   int
	suitePassed  int
	suiteFailed  int
	suiteSkipped int

	suites     []domain.SuiteResult
	tests      []domain.TestResult
	suiteStats []domain.Stat
	tags       *tagCounter
	combined   []domain.Stat
	patterns   []tagPattern
}

func newSuiteAggregator(opts Options, cfg StatConfig) *suiteAggregator {
	agg := &suiteAggregator{
		opts:       opts,
		statConfig: cfg,
		tags:       newTagCounter(),
	}
	for _, raw := range cfg.TagStatCombine {
		agg.patterns = append(agg.patterns, parseTagPattern(raw))
		agg.combined = append(agg.combined, domain.Stat{Name: raw})
	}
	return agg
}

// visitSuite walks a suite depth first: child suites, then its own tests.
// It returns the statistics of every test below the suite and the suite's elapsed time.
func (a *suiteAggregator) visitSuite(s *robotSuite, parentLongName string, depth int) (domain.Stat, int64) {
	longName := s.Name
	if parentLongName != "" {
		longName = parentLongName + "." + s.Name
	}

	// Suites are emitted in pre-order, their counts are only known after the children
	suiteIdx := -1
	if len(s.Tests) > 0 {
		suiteIdx = len(a.suites)
		a.suites = append(a.suites, domain.SuiteResult{})
		a.countSuite(s.Status.Status)
	}
	statIdx := -1
	if depth <= a.statConfig.SuiteStatLevel {
		statIdx = len(a.suiteStats)
		a.suiteStats = append(a.suiteStats, domain.Stat{Name: longName})
	}

	var stat domain.Stat
	var childElapsed int64
	for i := range s.Suites {
		childStat, elapsed := a.visitSuite(&s.Suites[i], longName, depth+1)
		stat.Merge(childStat)
		childElapsed += elapsed
	}
	for i := range s.Tests {
		t := &s.Tests[i]
		stat.Add(t.Status.Status)
		childElapsed += a.visitTest(t, s.Name, longName)
	}

	elapsed, ok := s.Status.elapsedMillis()
	if !ok {
		elapsed = childElapsed
	}

	if suiteIdx >= 0 {
		name := s.Name
		if a.opts.FullSuiteName {
			name = longName
		}
		skipped := stat.Skipped
		if !a.opts.TrackSuiteSkipped {
			skipped = 0
		}
		a.suites[suiteIdx] = domain.SuiteResult{
			Name:            name,
			Status:          s.Status.Status,
			Total:           stat.Total(),
			Passed:          stat.Passed,
			Failed:          stat.Failed,
			Skipped:         skipped,
			DurationMinutes: convert.MillisToMinutes(elapsed),
		}
	}
	if statIdx >= 0 {
		stat.Name = longName
		a.suiteStats[statIdx] = stat
	}

	return stat, elapsed
}

func (a *suiteAggregator) countSuite(status string) {
	a.suiteTotal++
	switch status {
	case domain.StatusPass:
		a.suitePassed++
	case domain.StatusFail:
		a.suiteFailed++
	default:
		if a.opts.TrackSuiteSkipped {
			a.suiteSkipped++
		}
	}
}

func (a *suiteAggregator) visitTest(t *robotTest, parentName, parentLongName string) int64 {
	parent := parentName
	if a.opts.FullSuiteName {
		longName := parentLongName + "." + t.Name
		parent, _, _ = strings.Cut(longName, "."+t.Name)
	}

	elapsed, _ := t.Status.elapsedMillis()
	tags := normalizeTags(t.allTags())

	a.tests = append(a.tests, domain.TestResult{
		DisplayName:     parent + " - " + t.Name,
		Status:          t.Status.Status,
		DurationMinutes: convert.MillisToMinutes(elapsed),
		Message:         convert.Sanitize(t.Status.Message),
		Tags:            formatTags(tags),
	})

	a.tags.add(tags, t.Status.Status)
	for i, pattern := range a.patterns {
		if pattern.match(tags) {
			a.combined[i].Add(t.Status.Status)
		}
	}
	return elapsed
}
