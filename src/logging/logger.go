package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	logger "github.com/sirupsen/logrus"

	"posapi/src/redact"
)

// Setup configures the process-wide logrus logger: level and format
// from the environment, the redaction hook in front of every sink, and
// optionally a rotating file sink next to stdout.
//
// The redaction hook must be installed before any other hook so later
// hooks and all outputs only ever see sanitized records.
func Setup(cfg Config, filter *redact.Filter) error {
	switch cfg.LogFormat {
	case "json":
		logger.SetFormatter(&logger.JSONFormatter{})
	default:
		logger.SetFormatter(&logger.TextFormatter{
			FullTimestamp: true,
		})
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logger.DebugLevel // fallback
	}
	logger.SetLevel(level)

	logger.AddHook(redact.NewHook(filter))

	if cfg.FileEnabled {
		if err := setupFileOutput(cfg); err != nil {
			return err
		}
	}

	return nil
}

func setupFileOutput(cfg Config) error {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return err
	}

	filename := cfg.Filename
	if filename == "" {
		filename = "posapi"
	}

	maxAge := cfg.MaxAgeDays
	if maxAge <= 0 {
		maxAge = 7
	}
	rotationDays := cfg.RotationDays
	if rotationDays <= 0 {
		rotationDays = 1
	}

	writer, err := rotatelogs.New(
		filepath.Join(cfg.Dir, filename+".%Y%m%d.log"),
		rotatelogs.WithLinkName(filepath.Join(cfg.Dir, filename+".log")),
		rotatelogs.WithMaxAge(time.Duration(maxAge)*24*time.Hour),
		rotatelogs.WithRotationTime(time.Duration(rotationDays)*24*time.Hour),
	)
	if err != nil {
		return err
	}

	logger.SetOutput(io.MultiWriter(os.Stdout, writer))
	return nil
}
