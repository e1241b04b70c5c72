package cli

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// SetupLogging configures the global logrus logger
func SetupLogging(level string, out io.Writer) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	log.SetOutput(out)
	return nil
}
