package logger

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

const projectName = "eotj"

var (
	once    sync.Once
	project *logrus.Logger
)

func base() *logrus.Logger {
	once.Do(func() {
		project = logrus.New()
		project.SetOutput(os.Stderr)
		project.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		project.SetLevel(logrus.InfoLevel)
	})
	return project
}

// GetProjectLogger returns the logger shared by every package of the project.
func GetProjectLogger() *logrus.Entry {
	return base().WithField("name", projectName)
}

// Configure sets the level and output of the project logger. An unknown level
// leaves the current one in place and is reported as an error.
func Configure(level string, out io.Writer) error {
	l := base()
	if out != nil {
		l.SetOutput(out)
	}
	if level == "" {
		return nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	l.SetLevel(lvl)
	return nil
}

// Discard returns a logger that drops everything, for tests and quiet replays.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
