// Package convert holds the numeric and text conversions applied to parsed reports.
package convert

import (
	"strconv"
	"strings"
	"time"

	rferrors "rfhistoric/internal/errors"
)

// Round2 rounds v to two decimals the way "%.2f" formatting does.
func Round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}

// Minutes converts an "H:M:S" duration into minutes rounded to two decimals.
// The string must split into exactly three integer parts.
func Minutes(hms string) (float64, error) {
	parts := strings.Split(hms, ":")
	switch {
	case len(parts) < 3:
		return 0, rferrors.Formatf("invalid duration %q: not enough values to unpack (expected 3, got %d)", hms, len(parts))
	case len(parts) > 3:
		return 0, rferrors.Formatf("invalid duration %q: too many values to unpack (expected 3)", hms)
	}

	var values [3]int
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return 0, rferrors.WrapFormat(err, "invalid duration "+strconv.Quote(hms))
		}
		values[i] = v
	}

	seconds := values[0]*3600 + values[1]*60 + values[2]
	return Round2(float64(seconds) / 60), nil
}

// ClockString renders an elapsed time in milliseconds as the wall clock time it
// reaches when added to midnight 1970-01-01 UTC. Whole days are dropped and
// fractional seconds truncated.
func ClockString(elapsedMillis int64) string {
	t := time.Unix(0, 0).UTC().Add(time.Duration(elapsedMillis) * time.Millisecond)
	return t.Format("15:04:05")
}

// ElapsedMinutes is the execution level duration: elapsed time rendered as a
// clock string and converted back through Minutes.
func ElapsedMinutes(elapsedMillis int64) (float64, error) {
	m, err := Minutes(ClockString(elapsedMillis))
	if err != nil {
		return 0, err
	}
	return Round2(m), nil
}

// MillisToMinutes is the suite and test level duration: elapsed/60000 rounded to two decimals.
func MillisToMinutes(elapsedMillis int64) float64 {
	return Round2(float64(elapsedMillis) / 60000)
}
