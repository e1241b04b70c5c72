package parser

import (
	"encoding/xml"
	"math"
	"strconv"
	"strings"
	"time"

	"rfhistoric/internal/domain"
)

// Robot Framework output.xml, RF 3 through RF 7.
type robotOutput struct {
	XMLName   xml.Name   `xml:"robot"`
	Generator string     `xml:"generator,attr"`
	Suite     robotSuite `xml:"suite"`
}

type robotSuite struct {
	ID     string       `xml:"id,attr"`
	Name   string       `xml:"name,attr"`
	Source string       `xml:"source,attr"`
	Suites []robotSuite `xml:"suite"`
	Tests  []robotTest  `xml:"test"`
	Status robotStatus  `xml:"status"`
}

type robotTest struct {
	ID   string   `xml:"id,attr"`
	Name string   `xml:"name,attr"`
	Tags []string `xml:"tag"`
	// RF 3 wraps tags in <tags>
	LegacyTags []string    `xml:"tags>tag"`
	Status     robotStatus `xml:"status"`
}

type robotStatus struct {
	Status string `xml:"status,attr"`
	// RF 6 and older
	StartTime string `xml:"starttime,attr"`
	EndTime   string `xml:"endtime,attr"`
	// RF 7
	Start   string `xml:"start,attr"`
	Elapsed string `xml:"elapsed,attr"`

	Message string `xml:",chardata"`
}

var robotTimestampLayouts = []string{
	"20060102 15:04:05.000",
	"20060102 15:04:05",
}

// elapsedMillis returns the elapsed time recorded on the status element.
// ok is false when the element carries no usable timing.
func (s robotStatus) elapsedMillis() (ms int64, ok bool) {
	if s.Elapsed != "" {
		secs, err := strconv.ParseFloat(strings.TrimSpace(s.Elapsed), 64)
		if err != nil {
			return 0, false
		}
		return int64(math.Round(secs * 1000)), true
	}

	start, okStart := parseRobotTimestamp(s.StartTime)
	end, okEnd := parseRobotTimestamp(s.EndTime)
	if !okStart || !okEnd {
		return 0, false
	}
	return end.Sub(start).Milliseconds(), true
}

func parseRobotTimestamp(ts string) (time.Time, bool) {
	ts = strings.TrimSpace(ts)
	if ts == "" || strings.EqualFold(ts, "N/A") {
		return time.Time{}, false
	}
	for _, layout := range robotTimestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (t robotTest) allTags() []string {
	if len(t.Tags) > 0 {
		return t.Tags
	}
	return t.LegacyTags
}

// combineSuites wraps several output roots into one synthetic suite named "A & B".
// It has no timing of its own so its elapsed time is the sum of its children.
func combineSuites(roots []robotSuite) robotSuite {
	names := make([]string, len(roots))
	for i, s := range roots {
		names[i] = s.Name
	}
	return robotSuite{
		Name:   strings.Join(names, " & "),
		Suites: roots,
		Status: robotStatus{Status: combinedStatus(roots)},
	}
}

func combinedStatus(suites []robotSuite) string {
	anyPassed := false
	for _, s := range suites {
		switch s.Status.Status {
		case domain.StatusFail:
			return domain.StatusFail
		case domain.StatusPass:
			anyPassed = true
		}
	}
	if anyPassed {
		return domain.StatusPass
	}
	return domain.StatusSkip
}
