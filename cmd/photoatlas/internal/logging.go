package internal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger. CLI subcommands additionally tee to a
// log file under ~/.photoatlas/logs; the mcp subcommand must not, since its
// stdio carries the protocol and stderr is the only safe sink.
func NewLogger(debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// SetupLogFile tees the logger to a per-run log file. Returns an error when
// the file cannot be created; the caller downgrades that to a warning.
func SetupLogFile(logger *logrus.Logger, subcommand string) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	logDir := filepath.Join(homeDir, ".photoatlas", "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	timestamp := time.Now().Format("20060102-150405")
	filename := fmt.Sprintf("photoatlas-%s-%s.log", subcommand, timestamp)
	logPath := filepath.Join(logDir, filename)

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	logger.SetOutput(io.MultiWriter(os.Stderr, logFile))
	logger.Debugf("log file: %s", logPath)
	return nil
}
