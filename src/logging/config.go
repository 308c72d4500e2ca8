package logging

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	LogLevel  string `envconfig:"LOG_LEVEL" default:"debug"` // debug | info | warn | error
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"` // json | text

	// File sink settings. When disabled, logs go to stdout only.
	FileEnabled  bool   `envconfig:"LOG_FILE_ENABLED" default:"false"`
	Dir          string `envconfig:"LOG_DIR" default:"./logs"`
	Filename     string `envconfig:"LOG_FILENAME" default:"posapi"`
	MaxAgeDays   int    `envconfig:"LOG_MAX_AGE_DAYS" default:"7"`
	RotationDays int    `envconfig:"LOG_ROTATION_DAYS" default:"1"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
