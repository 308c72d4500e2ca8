package logging

import (
	"context"
	"encoding/json"
	"time"

	logger "github.com/sirupsen/logrus"

	"posapi/src/apperrors"
	"posapi/src/model"
	"posapi/src/redact"
)

type errorLogCreator interface {
	Create(ctx context.Context, record *model.ErrorLog) error
}

type alertSender interface {
	SendAlert(ctx context.Context, errorID string, code string, message string)
}

// Recorder persists mapped error records so support staff can look up
// the full detail behind a correlation ID. Every string is pushed
// through the redaction filter before the row is written: the database
// is a log sink like any other.
type Recorder struct {
	filter   *redact.Filter
	repo     errorLogCreator
	notifier alertSender // optional
}

// NewRecorder wires the recorder. notifier may be nil.
func NewRecorder(filter *redact.Filter, repo errorLogCreator, notifier alertSender) *Recorder {
	return &Recorder{
		filter:   filter,
		repo:     repo,
		notifier: notifier,
	}
}

// Record implements apperrors.Recorder.
func (r *Recorder) Record(record apperrors.LogRecord) {
	row := &model.ErrorLog{
		ErrorID: record.ErrorID,
		Code:    string(record.Code),
		Message: r.filter.Redact(record.Message),
		Cause:   r.filter.Redact(record.Cause),
		Stack:   r.filter.Redact(record.Trace),
	}

	if len(record.Context) > 0 {
		raw, err := json.Marshal(record.Context)
		if err == nil {
			row.Context = r.filter.Redact(string(raw))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.repo.Create(ctx, row); err != nil {
		// Already logged by the repository; the file sink still has the record.
		logger.WithField("error_id", record.ErrorID).
			Warn("error record not persisted, correlation lookup will miss it")
	}

	if r.notifier != nil {
		go r.notifier.SendAlert(context.Background(), record.ErrorID, string(record.Code), row.Message)
	}
}
