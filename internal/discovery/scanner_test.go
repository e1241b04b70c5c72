package discovery

import (
	"reflect"
	"testing"

	"github.com/spf13/afero"
)

func newReportFs(t *testing.T, files ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, file := range files {
		if err := afero.WriteFile(fs, file, []byte("<robot/>"), 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", file, err)
		}
	}
	return fs
}

func TestScanner_Scan(t *testing.T) {
	fs := newReportFs(t,
		"/results/output.xml",
		"/results/summary.json",
		"/results/log.html",
		"/results/.hidden.xml",
		"/results/nested/inner.xml",
	)
	scanner := NewScanner(fs)

	t.Run("lists report files in the directory only", func(t *testing.T) {
		results, err := scanner.Scan("/results")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []string{".hidden.xml", "output.xml", "summary.json"}
		if !reflect.DeepEqual(results, expected) {
			t.Errorf("expected %v, got %v", expected, results)
		}
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		_, err := scanner.Scan("/non/existent/path")
		if err == nil {
			t.Error("expected error for non-existent directory")
		}
	})

	t.Run("returns error for file instead of directory", func(t *testing.T) {
		_, err := scanner.Scan("/results/output.xml")
		if err == nil {
			t.Error("expected error for file path")
		}
	})
}

func TestFilter_FilterByName(t *testing.T) {
	filter := NewFilter()
	files := []string{"output-1.xml", "output-2.xml", "output-10.xml", "summary.json"}

	tests := []struct {
		pattern  string
		expected []string
	}{
		{pattern: "", expected: files},
		{pattern: "output-*.xml", expected: []string{"output-1.xml", "output-2.xml", "output-10.xml"}},
		{pattern: "output-?.xml", expected: []string{"output-1.xml", "output-2.xml"}},
		{pattern: "*.json", expected: []string{"summary.json"}},
		{pattern: "[", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			result := filter.FilterByName(files, tt.pattern)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("FilterByName(%q) = %v, expected %v", tt.pattern, result, tt.expected)
			}
		})
	}

	if !filter.IsPattern("a*.xml") || filter.IsPattern("output.xml") {
		t.Error("IsPattern did not detect wildcards")
	}
}
