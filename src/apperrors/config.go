package apperrors

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// VerboseErrors must stay false in production: it switches responses
	// from the generic envelope to raw messages plus a truncated trace.
	VerboseErrors bool `envconfig:"VERBOSE_ERRORS" default:"false"`
	Debug         bool `envconfig:"DEBUG" default:"false"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
