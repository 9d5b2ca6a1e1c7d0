package resp

import (
	"encoding/json"
	"net/http"

	"github.com/ncobase/relaypage/ecode"
)

// Exception is a failed response. It implements error so handlers can
// return it through layers that only know errors; FromError unwraps it.
type Exception struct {
	Status  int    `json:"-"`                // HTTP status, derived from Code when 0
	Code    int    `json:"code"`             // ecode business code
	Message string `json:"message"`          // human readable reason
	Errors  any    `json:"errors,omitempty"` // per-field details
}

func (e *Exception) Error() string {
	return e.Message
}

func newException(status, code int, message string, details ...any) *Exception {
	e := &Exception{Status: status, Code: code, Message: message}
	if len(details) > 0 {
		e.Errors = details[0]
	}
	return e
}

// Success writes data as the JSON body of a 200 response.
func Success(w http.ResponseWriter, data ...any) {
	WithStatusCode(w, http.StatusOK, data...)
}

// WithStatusCode writes data as the JSON body of a response with
// statusCode. A string payload becomes {"message": ...}, and no payload
// {"message": "ok"}. Error statuses are written through Fail.
func WithStatusCode(w http.ResponseWriter, statusCode int, data ...any) {
	if statusCode < 200 || statusCode >= 400 {
		Fail(w, newException(statusCode, 0, "", data...))
		return
	}

	var body any = map[string]any{"message": ecode.Text(ecode.OK)}
	if len(data) > 0 && data[0] != nil {
		body = data[0]
		if s, ok := body.(string); ok {
			body = map[string]any{"message": s}
		}
	}
	writeJSON(w, statusCode, body)
}

// Fail writes e as the JSON body of its status. A nil exception is an
// internal error; a zero code is a request error.
func Fail(w http.ResponseWriter, e *Exception) {
	if e == nil {
		e = InternalServer(ecode.Text(ecode.ServerErr))
	}
	out := *e
	if out.Code == 0 {
		out.Code = ecode.RequestErr
	}
	if out.Status == 0 {
		out.Status = ecode.HTTPStatus(out.Code)
	}
	if out.Message == "" {
		out.Message = ecode.Text(out.Code)
	}
	writeJSON(w, out.Status, &out)
}

// writeJSON writes res as the JSON body of a response with status code.
func writeJSON(w http.ResponseWriter, code int, res any) {
	body, err := json.Marshal(res)
	if err != nil {
		http.Error(w, "Failed to encode JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(append(body, '\n'))
}
