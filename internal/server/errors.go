package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/tagcloud/tagcloud/pkg/errors"
)

// codeCancelled is reported when a run's context ends before it finishes,
// either because the client went away or the run timed out.
const codeCancelled = "CANCELLED"

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch code := errors.GetCode(err); {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case code == errors.ErrCodeNotFound, code == errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case code == errors.ErrCodePlacementFailed:
		return http.StatusUnprocessableEntity
	case code == errors.ErrCodeAllocationFailed:
		return http.StatusRequestEntityTooLarge
	case code == errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := string(errors.GetCode(err))
	msg := errors.UserMessage(err)
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		code = string(errors.ErrCodeInvalidInput)
		msg = "request body too large"
	}
	writeJSON(w, statusFor(err), errorBody{Error: errorDetail{
		Code:      code,
		Message:   msg,
		RequestID: RequestID(r.Context()),
	}})
}

func writeCancelled(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: errorDetail{
		Code:      codeCancelled,
		Message:   "run cancelled before completion",
		RequestID: RequestID(r.Context()),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errNotFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}
