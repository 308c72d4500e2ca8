package apperrors

import (
	"errors"
	"fmt"
)

// ErrorEvent is the raw internal failure captured at the point it
// happened. It is created once, mapped once and logged once; nothing
// mutates it afterwards.
type ErrorEvent struct {
	Kind    Kind
	Message string
	Err     error                  // originating error, optional
	Context map[string]interface{} // extra detail for the log record, optional
}

// Error implements the error interface so an ErrorEvent can travel
// through normal error returns until it reaches the boundary.
func (e *ErrorEvent) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ErrorEvent) Unwrap() error {
	return e.Err
}

// WithContext returns a copy of the event carrying extra metadata for
// the server-side log record. The context never reaches the client.
func (e *ErrorEvent) WithContext(key string, value interface{}) *ErrorEvent {
	ctx := make(map[string]interface{}, len(e.Context)+1)
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value

	return &ErrorEvent{
		Kind:    e.Kind,
		Message: e.Message,
		Err:     e.Err,
		Context: ctx,
	}
}

func newEvent(kind Kind, message string, err error) *ErrorEvent {
	return &ErrorEvent{Kind: kind, Message: message, Err: err}
}

// Validation marks a request that failed input validation.
func Validation(message string) *ErrorEvent {
	return newEvent(KindValidation, message, nil)
}

// Authentication marks a failed login or credential check.
func Authentication(message string) *ErrorEvent {
	return newEvent(KindAuthentication, message, nil)
}

// Authorization marks an authenticated caller lacking permission.
func Authorization(message string) *ErrorEvent {
	return newEvent(KindAuthorization, message, nil)
}

// NotFound marks a missing resource.
func NotFound(message string) *ErrorEvent {
	return newEvent(KindNotFound, message, nil)
}

// Database wraps a storage-layer failure.
func Database(message string, err error) *ErrorEvent {
	return newEvent(KindDatabase, message, err)
}

// File wraps a filesystem failure.
func File(message string, err error) *ErrorEvent {
	return newEvent(KindFile, message, err)
}

// Network wraps a failure talking to an upstream system.
func Network(message string, err error) *ErrorEvent {
	return newEvent(KindNetwork, message, err)
}

// BusinessRule marks a domain-rule violation, e.g. selling more units
// than are in stock. Quantities belong in Context, never in Message.
func BusinessRule(message string) *ErrorEvent {
	return newEvent(KindBusinessRule, message, nil)
}

// Internal wraps anything that has no better classification.
func Internal(message string, err error) *ErrorEvent {
	return newEvent(KindInternal, message, err)
}

// From converts an arbitrary error into an ErrorEvent. Events pass
// through unchanged; everything else is classified, defaulting to
// internal when ambiguous.
func From(err error) *ErrorEvent {
	if err == nil {
		return Internal("unknown error", nil)
	}
	var event *ErrorEvent
	if errors.As(err, &event) {
		return event
	}
	return newEvent(Classify(err), err.Error(), err)
}
