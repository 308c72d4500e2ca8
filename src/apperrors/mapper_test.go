package apperrors

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureRecorder struct {
	records []LogRecord
}

func (c *captureRecorder) Record(record LogRecord) {
	c.records = append(c.records, record)
}

func TestMapGenericModeNeverLeaksRawDetail(t *testing.T) {
	log, _ := test.NewNullLogger()
	recorder := &captureRecorder{}
	mapper := NewMapper(false, log, recorder)

	events := []*ErrorEvent{
		Validation("price must be a decimal string"),
		Authentication("pin mismatch for cashier till-3"),
		Database("query failed", errors.New("could not connect to host db.internal:5432")),
		BusinessRule("requested quantity is not available"),
		Internal("unexpected panic", errors.New("nil pointer in checkout")),
	}

	for _, event := range events {
		response := mapper.Map(event)

		assert.False(t, response.Success)
		assert.Equal(t, GenericMessage, response.Message)
		assert.Equal(t, GenericMessage, response.Error.Message)
		assert.Equal(t, event.Kind.Code(), response.Error.Code)
		assert.NotEmpty(t, response.Error.ErrorID)
		assert.Empty(t, response.Error.Trace)

		raw, err := json.Marshal(response)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), event.Message)
	}
}

func TestMapDatabaseFailureHidesHostAndPort(t *testing.T) {
	log, _ := test.NewNullLogger()
	mapper := NewMapper(false, log, nil)

	event := Database("query failed", errors.New("could not connect to host db.internal:5432"))
	response := mapper.Map(event)

	// The error ID is random hex, so compare the visible text fields
	// rather than the serialized envelope.
	response.Error.ErrorID = ""
	raw, err := json.Marshal(response)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "db.internal")
	assert.NotContains(t, string(raw), "5432")
	assert.Equal(t, CodeDatabase, response.Error.Code)
}

func TestMapInventoryShortfallHidesQuantity(t *testing.T) {
	log, _ := test.NewNullLogger()
	mapper := NewMapper(false, log, nil)

	event := BusinessRule("requested quantity is not available").
		WithContext("stock", 3)
	response := mapper.Map(event)

	response.Error.ErrorID = ""
	raw, err := json.Marshal(response)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "stock")
	assert.NotContains(t, string(raw), "3")
	assert.Equal(t, CodeBusinessRule, response.Error.Code)
}

func TestMapAlwaysForwardsFullDetailToLogPath(t *testing.T) {
	for _, verbose := range []bool{false, true} {
		log, hook := test.NewNullLogger()
		recorder := &captureRecorder{}
		mapper := NewMapper(verbose, log, recorder)

		event := Database("query failed", errors.New("could not connect to host db.internal:5432")).
			WithContext("product_id", 42)
		response := mapper.Map(event)

		require.Len(t, recorder.records, 1)
		record := recorder.records[0]

		assert.Equal(t, response.Error.ErrorID, record.ErrorID)
		assert.Equal(t, CodeDatabase, record.Code)
		assert.Equal(t, "query failed", record.Message)
		assert.Contains(t, record.Cause, "db.internal:5432")
		assert.NotEmpty(t, record.Trace)
		assert.Equal(t, 42, record.Context["product_id"])
		assert.False(t, record.Timestamp.IsZero())

		require.Len(t, hook.Entries, 1)
		entry := hook.Entries[0]
		assert.Equal(t, "query failed", entry.Message)
		assert.Equal(t, record.ErrorID, entry.Data["error_id"])
	}
}

func TestMapVerboseModeExposesRawMessage(t *testing.T) {
	log, _ := test.NewNullLogger()
	mapper := NewMapper(true, log, nil)

	event := Validation("price must be a decimal string")
	response := mapper.Map(event)

	assert.Equal(t, "price must be a decimal string", response.Message)
	assert.Equal(t, "price must be a decimal string", response.Error.Message)
	assert.NotEmpty(t, response.Error.Trace)
	assert.LessOrEqual(t, len(response.Error.Trace), maxVerboseTrace)
}

func TestMapFreshErrorIDPerEvent(t *testing.T) {
	log, _ := test.NewNullLogger()
	mapper := NewMapper(false, log, nil)

	event := NotFound("product not found")
	first := mapper.Map(event)
	second := mapper.Map(event)

	assert.NotEqual(t, first.Error.ErrorID, second.Error.ErrorID)
}

func TestWriteErrorEnvelopeAndStatus(t *testing.T) {
	log, _ := test.NewNullLogger()
	mapper := NewMapper(false, log, nil)

	tests := []struct {
		event      *ErrorEvent
		wantStatus int
		wantCode   Code
	}{
		{Validation("bad input"), 400, CodeValidation},
		{Authentication("pin mismatch"), 401, CodeAuth},
		{Authorization("manager role required"), 403, CodeAuthz},
		{NotFound("missing"), 404, CodeNotFound},
		{BusinessRule("out of stock"), 422, CodeBusinessRule},
		{Database("down", errors.New("boom")), 500, CodeDatabase},
		{Network("upstream", errors.New("timeout")), 502, CodeNetwork},
		{Internal("unknown", nil), 500, CodeInternal},
	}

	for _, tc := range tests {
		rr := httptest.NewRecorder()
		mapper.WriteError(rr, tc.event)

		assert.Equal(t, tc.wantStatus, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		var response ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, tc.wantCode, response.Error.Code)
		assert.False(t, response.Success)
		assert.Equal(t, GenericMessage, response.Message)
	}
}

func TestWriteErrClassifiesPlainErrors(t *testing.T) {
	log, _ := test.NewNullLogger()
	mapper := NewMapper(false, log, nil)

	rr := httptest.NewRecorder()
	mapper.WriteErr(rr, errors.New("something odd happened"))

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
	assert.Equal(t, CodeInternal, response.Error.Code)
	assert.False(t, strings.Contains(response.Message, "something odd"))
}
