package apperrors

import (
	"encoding/json"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"
)

// GenericMessage is the only text a production client ever sees.
const GenericMessage = "An application error occurred."

// verbose responses cap the stack they expose; the log record keeps it whole.
const maxVerboseTrace = 2048

// LogRecord is the full-detail record handed to the logging path. It is
// produced once per mapped event and keyed by the same error ID the
// client receives.
type LogRecord struct {
	ErrorID   string                 `json:"error_id"`
	Code      Code                   `json:"code"`
	Message   string                 `json:"message"`
	Cause     string                 `json:"cause,omitempty"`
	Trace     string                 `json:"trace,omitempty"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Recorder persists log records so support staff can recover the full
// detail from the error ID a user reports.
type Recorder interface {
	Record(record LogRecord)
}

// Mapper converts internal failures into minimal-disclosure responses.
// Configuration is injected at construction; the zero-value verbose flag
// is the production-safe generic mode.
type Mapper struct {
	verbose  bool
	log      logger.FieldLogger
	recorder Recorder
}

// NewMapper builds a mapper. log must not be nil; recorder may be nil
// when no persistence beyond the log sink is wanted.
func NewMapper(verbose bool, log logger.FieldLogger, recorder Recorder) *Mapper {
	return &Mapper{
		verbose:  verbose,
		log:      log,
		recorder: recorder,
	}
}

// Map produces the client response for an event and forwards the full
// detail to the logging path. Detail is never lost, only hidden: the
// log record carries everything regardless of mode.
func (m *Mapper) Map(event *ErrorEvent) ErrorResponse {
	errorID := uuid.NewString()

	record := LogRecord{
		ErrorID:   errorID,
		Code:      event.Kind.Code(),
		Message:   event.Message,
		Trace:     string(debug.Stack()),
		Context:   event.Context,
		Timestamp: time.Now().UTC(),
	}
	if event.Err != nil {
		record.Cause = event.Err.Error()
	}

	m.emit(record)

	response := ErrorResponse{
		Success: false,
		Message: GenericMessage,
		Error: ErrorDetail{
			Code:    event.Kind.Code(),
			Message: GenericMessage,
			ErrorID: errorID,
		},
	}

	if m.verbose {
		response.Message = event.Message
		response.Error.Message = event.Message
		response.Error.Trace = truncate(record.Trace, maxVerboseTrace)
	}

	return response
}

// WriteError maps the event and writes the envelope with the status for
// its kind. Handlers call this for every failure that reaches the
// boundary.
func (m *Mapper) WriteError(w http.ResponseWriter, event *ErrorEvent) {
	response := m.Map(event)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(event.Kind.HTTPStatus())
	if err := json.NewEncoder(w).Encode(response); err != nil {
		m.log.WithError(err).Error("failed to encode error response")
	}
}

// WriteErr is WriteError for plain errors: classify first, then map.
func (m *Mapper) WriteErr(w http.ResponseWriter, err error) {
	m.WriteError(w, From(err))
}

func (m *Mapper) emit(record LogRecord) {
	entry := m.log.WithFields(logger.Fields{
		"error_id": record.ErrorID,
		"code":     record.Code,
		"trace":    record.Trace,
	})
	if record.Cause != "" {
		entry = entry.WithField("cause", record.Cause)
	}
	for key, value := range record.Context {
		entry = entry.WithField(key, value)
	}
	entry.Error(record.Message)

	if m.recorder != nil {
		m.recorder.Record(record)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
