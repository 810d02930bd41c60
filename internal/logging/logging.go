package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New creates a logger tagged with the component name. Output goes to
// stderr so the stdio transport keeps stdout clean for protocol frames.
// LOG_LEVEL overrides the default info level.
func New(component string) *logrus.Entry {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetOutput(os.Stderr)

	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if level, err := logrus.ParseLevel(raw); err == nil {
			logger.SetLevel(level)
		}
	}

	return logger.WithField("component", component)
}
