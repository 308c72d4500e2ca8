package workers

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	RetentionAge   time.Duration `envconfig:"ERROR_LOG_RETENTION" default:"720h"` // 30 days
	RetentionEvery time.Duration `envconfig:"ERROR_LOG_PURGE_PERIOD" default:"1h"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
