package cli

import "rfhistoric/internal/config"

// Flags holds command-line flags
type Flags struct {
	IgnoreResult  bool
	FullSuiteName bool
	SuiteSkipped  bool
	SaveJSON      string
	SaveXLSX      string
	NoDB          bool
	FromJSON      string
	Stats         bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		IgnoreResult:  f.IgnoreResult,
		FullSuiteName: f.FullSuiteName,
		SuiteSkipped:  f.SuiteSkipped,
		SaveJSON:      f.SaveJSON,
		SaveXLSX:      f.SaveXLSX,
		NoDB:          f.NoDB,
		FromJSON:      f.FromJSON,
		Stats:         f.Stats,
	}
}
