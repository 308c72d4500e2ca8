package redact

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
)

// Hook sanitizes every logrus entry before any formatter or sink sees
// it. Registered once at logger bootstrap it guarantees the invariant
// that no persisted record carries an unredacted sensitive token.
type Hook struct {
	filter *Filter
}

// NewHook wraps a filter as a logrus hook.
func NewHook(filter *Filter) *Hook {
	return &Hook{filter: filter}
}

func (h *Hook) Levels() []logger.Level {
	return logger.AllLevels
}

// Fire redacts the entry message and every field value that renders as
// text. Errors are replaced by their redacted string form since the
// original error may embed connection strings or credentials.
func (h *Hook) Fire(entry *logger.Entry) error {
	entry.Message = h.filter.Redact(entry.Message)

	for key, value := range entry.Data {
		switch v := value.(type) {
		case string:
			entry.Data[key] = h.filter.Redact(v)
		case error:
			entry.Data[key] = h.filter.Redact(v.Error())
		case fmt.Stringer:
			entry.Data[key] = h.filter.Redact(v.String())
		}
	}

	return nil
}
