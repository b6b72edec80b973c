package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"placenet/internal/common"
)

// ErrorCollector counts 5xx responses for the metrics endpoint.
type ErrorCollector interface {
	IncErrors()
}

var collector ErrorCollector

func SetErrorCollector(c ErrorCollector) {
	collector = c
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error errorPayload `json:"error"`
}

type errorPayload struct {
	Code    common.Code       `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Error maps a coded error onto an HTTP status. Internal causes are never
// leaked to the client.
func Error(w http.ResponseWriter, err error) {
	var coded *common.Error
	if !errors.As(err, &coded) {
		coded = common.NewError(common.CodeInternal, "internal error", err)
	}

	status := statusFor(coded.Code)
	if status >= http.StatusInternalServerError && collector != nil {
		collector.IncErrors()
	}

	message := coded.Message
	if coded.Code == common.CodeInternal {
		message = "internal error"
	}
	JSON(w, status, errorBody{Error: errorPayload{Code: coded.Code, Message: message, Fields: coded.Fields}})
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeValidation, common.CodeInvalidTransition:
		return http.StatusUnprocessableEntity
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
