package resp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ncobase/relaypage/data"
	"github.com/ncobase/relaypage/ecode"
	"github.com/ncobase/relaypage/paging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	Success(w, map[string]any{"totalCount": 3})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, map[string]any{"totalCount": float64(3)}, decode(t, w))

	w = httptest.NewRecorder()
	Success(w)
	assert.Equal(t, map[string]any{"message": "ok"}, decode(t, w))

	w = httptest.NewRecorder()
	WithStatusCode(w, http.StatusAccepted, "queued")
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, map[string]any{"message": "queued"}, decode(t, w))
}

func TestFail(t *testing.T) {
	w := httptest.NewRecorder()
	Fail(w, InvalidParams("first must not be negative", map[string]string{"first": "negative"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(ecode.ParamErr), body["code"])
	assert.Equal(t, "first must not be negative", body["message"])
	assert.Equal(t, map[string]any{"first": "negative"}, body["errors"])

	w = httptest.NewRecorder()
	Fail(w, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decode(t, w)["message"])
}

func TestFromError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   int
	}{
		{fmt.Errorf("%w: bad base64", paging.ErrMalformedCursor), http.StatusBadRequest, ecode.CursorErr},
		{fmt.Errorf("%w: first and last", paging.ErrInvalidArgument), http.StatusBadRequest, ecode.ParamErr},
		{fmt.Errorf("%w: \"a-b\"", data.ErrInvalidCollection), http.StatusBadRequest, ecode.ParamErr},
		{fmt.Errorf("%w: orders", data.ErrCollectionNotFound), http.StatusNotFound, ecode.NotFound},
		{fmt.Errorf("%w: circuit open", data.ErrUnavailable), http.StatusServiceUnavailable, ecode.StoreErr},
		{errors.New("connection reset"), http.StatusInternalServerError, ecode.ServerErr},
	}
	for _, tt := range tests {
		e := FromError(tt.err)
		require.NotNil(t, e, tt.err)
		assert.Equal(t, tt.status, e.Status, tt.err)
		assert.Equal(t, tt.code, e.Code, tt.err)
	}

	assert.Nil(t, FromError(nil))
	assert.Equal(t, "internal server error", FromError(errors.New("dsn leaked")).Message)

	nf := NotFound("gone")
	assert.Same(t, nf, FromError(fmt.Errorf("wrapped: %w", nf)))
}
