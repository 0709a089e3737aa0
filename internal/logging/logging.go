// internal/logging/logging.go
package logging

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	initOnce sync.Once
	root     *logrus.Logger
)

// NewLogger returns a logger tagged with a component name.
// Level comes from ORTRACK_LOG_LEVEL (default: info).
func NewLogger(component string) *logrus.Entry {
	initOnce.Do(func() {
		root = logrus.New()
		root.SetOutput(os.Stderr)
		root.SetLevel(levelFromEnv())
	})
	return root.WithField("component", component)
}

func levelFromEnv() logrus.Level {
	raw := os.Getenv("ORTRACK_LOG_LEVEL")
	if raw == "" {
		return logrus.InfoLevel
	}
	lvl, err := logrus.ParseLevel(raw)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
