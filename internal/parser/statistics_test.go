package parser

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rfhistoric/internal/domain"
	rferrors "rfhistoric/internal/errors"
)

func TestStatisticsParser_ParseFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/stats/result.json", []byte(`{
  "property": [
    {"name": "PassedTestCount", "value": 10},
    {"name": "FailedTestCount", "value": "2"},
    {"name": "BuildNumber", "value": 77},
    {"name": "BuildVersion", "value": "v1.2.3"},
    {"name": "Host", "value": {"name": "ci-01"}},
    {"name": "Agent", "value": null},
    {"name": "Labels", "value": ["nightly"]},
    {"name": "TotalTestCount", "value": 12}
  ]
}`), 0644))
	require.NoError(t, afero.WriteFile(fs, "/stats/bad-counter.json",
		[]byte(`{"property": [{"name": "PassedTestCount", "value": "ten"}]}`), 0644))
	require.NoError(t, afero.WriteFile(fs, "/stats/object-counter.json",
		[]byte(`{"property": [{"name": "TotalTestCount", "value": {"n": 1}}]}`), 0644))
	require.NoError(t, afero.WriteFile(fs, "/stats/null-counter.json",
		[]byte(`{"property": [{"name": "SkippedTestCount", "value": null}, {"name": "FailedTestCount"}, {"name": "TotalTestCount", "value": "3"}]}`), 0644))
	require.NoError(t, afero.WriteFile(fs, "/stats/result.txt", []byte("PassedTestCount=1"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/stats/broken.json", []byte(`{"property": [`), 0644))

	p := NewStatisticsParser(fs)

	t.Run("counters", func(t *testing.T) {
		report, err := p.ParseFile("/stats/result.json")
		require.NoError(t, err)
		assert.Equal(t, domain.ExecutionSummary{Total: 12, Passed: 10, Failed: 2}, report.Summary)
	})

	t.Run("null or missing counter values", func(t *testing.T) {
		report, err := p.ParseFile("/stats/null-counter.json")
		require.NoError(t, err)
		assert.Equal(t, domain.ExecutionSummary{Total: 3}, report.Summary)
	})

	for _, path := range []string{"/stats/bad-counter.json", "/stats/object-counter.json"} {
		t.Run("invalid counter "+path, func(t *testing.T) {
			report, err := p.ParseFile(path)
			require.Error(t, err)
			assert.Nil(t, report)
			assert.Equal(t, rferrors.KindFormat, rferrors.KindOf(err))
		})
	}

	t.Run("non json file", func(t *testing.T) {
		report, err := p.ParseFile("/stats/result.txt")
		require.Error(t, err)
		assert.Nil(t, report)
		assert.True(t, errors.Is(err, rferrors.ErrInvalidFileType))
		assert.Equal(t, StatisticsInvalidFileTypeNotice, err.Error())
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := p.ParseFile("/stats/broken.json")
		require.Error(t, err)
		assert.False(t, errors.Is(err, rferrors.ErrInvalidFileType))
		assert.Equal(t, rferrors.KindFormat, rferrors.KindOf(err))
	})
}
