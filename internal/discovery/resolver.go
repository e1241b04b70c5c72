package discovery

import (
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	rferrors "rfhistoric/internal/errors"
)

// Output values that select every report file in the input directory
const (
	AllXML  = "*.xml"
	AllJSON = "*.json"
)

// Resolver turns the input directory and output option into report file paths
type Resolver struct {
	fs      afero.Fs
	scanner *Scanner
	filter  *Filter
	homeDir func() (string, error)
}

// NewResolver creates a new Resolver reading from fs
func NewResolver(fs afero.Fs) *Resolver {
	return &Resolver{
		fs:      fs,
		scanner: NewScanner(fs),
		filter:  NewFilter(),
		homeDir: os.UserHomeDir,
	}
}

// Dir expands a leading ~ and makes dir absolute
func (r *Resolver) Dir(dir string) (string, error) {
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := r.homeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}
	return filepath.Abs(dir)
}

// Resolve returns the report files named by output inside dir.
//
// An output of exactly "*.xml" or "*.json" selects every regular .xml and .json
// file in dir. Otherwise output is a comma separated list of names joined to dir;
// names holding wildcards expand to the matching files. Every resolved file must
// exist, otherwise a missing input error lists all of the missing paths.
func (r *Resolver) Resolve(dir, output string) ([]string, error) {
	dir, err := r.Dir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	if output == AllXML || output == AllJSON {
		names, err := r.scanner.Scan(dir)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			files = append(files, filepath.Join(dir, name))
		}
	} else {
		files = r.splitOutput(dir, output)
	}

	if len(files) == 0 {
		return nil, rferrors.MissingInput([]string{filepath.Join(dir, output)})
	}

	var missing []string
	for _, file := range files {
		exists, err := afero.Exists(r.fs, file)
		if err != nil || !exists {
			missing = append(missing, file)
		}
	}
	if len(missing) > 0 {
		return nil, rferrors.MissingInput(missing)
	}

	log.Debugf("resolved %d report file(s) in %s", len(files), dir)
	return files, nil
}

func (r *Resolver) splitOutput(dir, output string) []string {
	var files []string
	for _, name := range strings.Split(output, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, name)
		}

		if !r.filter.IsPattern(name) {
			files = append(files, path)
			continue
		}

		names, err := r.scanner.List(filepath.Dir(path))
		if err != nil {
			// reported as missing below
			files = append(files, path)
			continue
		}
		matched := r.filter.FilterByName(names, filepath.Base(path))
		if len(matched) == 0 {
			files = append(files, path)
			continue
		}
		for _, m := range matched {
			files = append(files, filepath.Join(filepath.Dir(path), m))
		}
	}
	return files
}
