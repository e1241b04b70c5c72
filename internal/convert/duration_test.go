package convert

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rferrors "rfhistoric/internal/errors"
)

func TestMinutes(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"00:01:00", 1},
		{"01:00:00", 60},
		{"00:30:30", 30.5},
		{"00:00:01", 0.02},
		{"00:00:00", 0},
		{"23:59:59", 1439.98},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Minutes(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMinutes_BadInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"single value", "a", "not enough values to unpack"},
		{"two values", "01:02", "not enough values to unpack"},
		{"empty", "", "not enough values to unpack"},
		{"four values", "01:02:03:04", "too many values to unpack"},
		{"not a number", "aa:bb:cc", "invalid duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Minutes(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)

			var rfErr *rferrors.Error
			require.True(t, stderrors.As(err, &rfErr))
			assert.Equal(t, rferrors.KindFormat, rfErr.Kind)
		})
	}
}

func TestMinutes_Pure(t *testing.T) {
	first, err := Minutes("00:30:30")
	require.NoError(t, err)
	second, err := Minutes("00:30:30")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestClockString(t *testing.T) {
	tests := []struct {
		millis int64
		want   string
	}{
		{0, "00:00:00"},
		{999, "00:00:00"},
		{61500, "00:01:01"},
		{3723000, "01:02:03"},
		{25 * 3600 * 1000, "01:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ClockString(tt.millis))
		})
	}
}

func TestElapsedMinutes_DiffersFromDirectDivision(t *testing.T) {
	// 90.6s: the clock path truncates to 90s, the direct path keeps the fraction
	viaClock, err := ElapsedMinutes(90600)
	require.NoError(t, err)
	assert.Equal(t, 1.5, viaClock)
	assert.Equal(t, 1.51, MillisToMinutes(90600))
}

func TestMillisToMinutes(t *testing.T) {
	assert.Equal(t, 0.0, MillisToMinutes(0))
	assert.Equal(t, 1.0, MillisToMinutes(60000))
	assert.Equal(t, 0.02, MillisToMinutes(1200))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 30.5, Round2(30.5))
	assert.Equal(t, 0.33, Round2(1.0/3))
	assert.Equal(t, 66.67, Round2(200.0/3))
}
