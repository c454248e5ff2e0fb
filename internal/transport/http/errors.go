package http

import (
	"encoding/json"
	"net/http"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeUnauthorized       = "unauthorized"
	codeForbidden          = "forbidden"
	codeInvalidRequestBody = "invalid_request_body"
	codeInvalidID          = "invalid_id"
	codeTitleRequired      = "title_required"
	codeInvalidCapacity    = "invalid_capacity"
	codeInvalidStartsAt    = "invalid_starts_at"
	codeSessionNotFound    = "session_not_found"
	codeSessionPast        = "session_past"
	codeSessionFull        = "session_full"
	codeAlreadyJoined      = "already_joined"
	codeAttendanceNotFound = "attendance_not_found"
	codeAlreadyOnWaitlist  = "already_on_waitlist"
	codeNotOnWaitlist      = "not_on_waitlist"
	codeInvalidStatus      = "invalid_status"
	codeTransactionTimeout = "transaction_timeout"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeRetryable signals the caller to back off and retry; every other
// failure status in this package is terminal for the request.
func writeRetryable(w http.ResponseWriter, msg string) {
	w.Header().Set("Retry-After", "1")
	writeError(w, http.StatusServiceUnavailable, codeTransactionTimeout, msg)
}
