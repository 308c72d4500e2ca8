package notifier

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// WebhookURL receives redacted error alerts. Empty disables alerting.
	WebhookURL string        `envconfig:"ALERT_WEBHOOK_URL" default:""`
	Timeout    time.Duration `envconfig:"ALERT_TIMEOUT" default:"10s"`
	Service    string        `envconfig:"APP_NAME" default:"posapi"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
