package notifier

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	logger "github.com/sirupsen/logrus"
)

// Alert is the payload POSTed to the ops webhook. It carries only the
// correlation ID, the stable code and the already-redacted message:
// the webhook is an outbound ship target, so it gets no raw detail.
type Alert struct {
	Service   string    `json:"service"`
	ErrorID   string    `json:"error_id"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Client pushes error alerts to a webhook endpoint.
type Client struct {
	http    *resty.Client
	url     string
	service string
}

// NewClient builds a webhook client from config. When no URL is
// configured the client is a silent no-op.
func NewClient(config Config) *Client {
	httpClient := resty.New().
		SetTimeout(config.Timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &Client{
		http:    httpClient,
		url:     config.WebhookURL,
		service: config.Service,
	}
}

// Enabled reports whether a webhook URL is configured.
func (c *Client) Enabled() bool {
	return c.url != ""
}

// SendAlert posts the alert. Failures are logged and swallowed: alert
// delivery must never take the error path down with it.
func (c *Client) SendAlert(ctx context.Context, errorID string, code string, message string) {
	if !c.Enabled() {
		return
	}

	alert := Alert{
		Service:   c.service,
		ErrorID:   errorID,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(alert).
		Post(c.url)
	if err != nil {
		logger.WithError(err).WithField("error_id", errorID).
			Warn("failed to deliver error alert")
		return
	}

	if resp.StatusCode()/100 != 2 {
		logger.WithFields(map[string]interface{}{
			"error_id": errorID,
			"status":   resp.StatusCode(),
		}).Warn("error alert rejected by webhook")
	}
}
