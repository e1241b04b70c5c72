package discovery

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// ReportSuffixes are the file endings picked up when scanning a directory
var ReportSuffixes = []string{".xml", ".json"}

// Scanner lists report files in a directory
type Scanner struct {
	fs afero.Fs
}

// NewScanner creates a new Scanner reading from fs
func NewScanner(fs afero.Fs) *Scanner {
	return &Scanner{fs: fs}
}

// Scan returns the names of the regular files directly inside root that end
// in .xml or .json, sorted. Sub directories are not descended into.
func (s *Scanner) Scan(root string) ([]string, error) {
	info, err := s.fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("report path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("report path is not a directory: %s", root)
	}

	entries, err := afero.ReadDir(s.fs, root)
	if err != nil {
		return nil, fmt.Errorf("error reading directory %s: %w", root, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.Mode().IsRegular() {
			continue
		}
		if hasReportSuffix(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// List returns the names of every regular file directly inside root, sorted
func (s *Scanner) List(root string) ([]string, error) {
	entries, err := afero.ReadDir(s.fs, root)
	if err != nil {
		return nil, fmt.Errorf("error reading directory %s: %w", root, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.Mode().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func hasReportSuffix(name string) bool {
	for _, suffix := range ReportSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
