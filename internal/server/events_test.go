package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jromang/picochess/internal/errors"
)

func TestDecodeEvent(t *testing.T) {
	ev, err := decodeEvent([]byte(`{"event":"Header","headers":{"White":"A"}}`))
	require.NoError(t, err)
	assert.Equal(t, EventHeader, ev.Event)
	assert.Equal(t, "A", ev.Headers["White"])

	_, err = decodeEvent([]byte(`{"fen":"x"}`))
	assert.ErrorIs(t, err, errors.ErrUnknownEvent)

	_, err = decodeEvent([]byte(`[1, 2]`))
	assert.Error(t, err)
}

func TestWithFields(t *testing.T) {
	out, err := withFields([]byte(`{"event":"Fen","extra":[1,2],"status":"old"}`), map[string]string{
		"status": "new",
		"moves":  "<b>",
	})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, map[string]any{
		"event":  "Fen",
		"extra":  []any{1.0, 2.0},
		"status": "new",
		"moves":  "<b>",
	}, got)

	_, err = withFields([]byte(`"string"`), nil)
	assert.Error(t, err)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := middleware.RequestID(requestLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pot?x=1", nil))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/pot", fields["path"])
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, int64(15), fields["bytes"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestResponseEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeResponse(rec, http.StatusCreated, map[string]int{"n": 1})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"Status":201,"Body":{"n":1}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	writeResponse(rec, http.StatusOK, func() {})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, internalErrorJSON, rec.Body.String())
}
