package domain

// Stat holds pass/fail/skip counts for a group of tests
type Stat struct {
	Name    string `json:"name"`
	Passed  int    `json:"passed"`
	Failed  int    `json:"failed"`
	Skipped int    `json:"skipped"`
}

// Total returns the number of tests counted in the stat
func (s Stat) Total() int {
	return s.Passed + s.Failed + s.Skipped
}

// Add counts one test with the given status. Anything that is neither SKIP nor PASS counts as failed.
func (s *Stat) Add(status string) {
	switch status {
	case StatusSkip:
		s.Skipped++
	case StatusPass:
		s.Passed++
	default:
		s.Failed++
	}
}

// Merge adds the counts of other
func (s *Stat) Merge(other Stat) {
	s.Passed += other.Passed
	s.Failed += other.Failed
	s.Skipped += other.Skipped
}

// Statistics is the Robot Framework style statistics block of a native report
type Statistics struct {
	Total    Stat   `json:"total"`
	Suites   []Stat `json:"suites"`
	Tags     []Stat `json:"tags"`
	Combined []Stat `json:"combined"`
}
