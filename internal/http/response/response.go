package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"jobly/internal/common"
)

type ErrorCollector interface {
	IncErrorCode(code string)
}

var collector ErrorCollector

// SetErrorCollector registers where error kinds are counted. Call once at startup.
func SetErrorCollector(c ErrorCollector) {
	collector = c
}

type errorBody struct {
	Error errorPayload `json:"error"`
}

type errorPayload struct {
	Code    common.Code       `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// Error maps an error kind to a status. Internal faults are logged and
// never echoed to the client.
func Error(w http.ResponseWriter, err error) {
	payload := errorPayload{Code: common.CodeInternal, Message: "internal server error"}
	if appErr, ok := asAppError(err); ok && appErr.Code != common.CodeInternal {
		payload = errorPayload{Code: appErr.Code, Message: appErr.Message, Fields: appErr.Fields}
	} else {
		slog.Error("request failed", slog.String("error", errString(err)))
	}
	if collector != nil {
		collector.IncErrorCode(string(payload.Code))
	}
	JSON(w, StatusFor(payload.Code), errorBody{Error: payload})
}

func StatusFor(code common.Code) int {
	switch code {
	case common.CodeValidation:
		return http.StatusBadRequest
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	case common.CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func asAppError(err error) (*common.Error, bool) {
	var appErr *common.Error
	ok := errors.As(err, &appErr)
	return appErr, ok
}

func errString(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
