package httputil

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/pkgscope/frontier/pkg/errors"
)

// ErrorResponse is the JSON body returned for all API errors.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// WriteJSON encodes v as JSON with the given status code.
// Encoding failures after the header is written cannot be reported to the
// client; they are silently dropped.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// WriteError writes err as a JSON error response, deriving the HTTP
// status from the error's code. Errors without a structured code map to
// 500 INTERNAL_ERROR.
func WriteError(w http.ResponseWriter, err error) {
	WriteErrorDetails(w, err, nil)
}

// WriteErrorDetails is WriteError with an extra details payload, used for
// errors that carry structured data such as ambiguity candidate lists.
func WriteErrorDetails(w http.ResponseWriter, err error, details any) {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	WriteJSON(w, StatusForCode(code), ErrorResponse{
		Code:    string(code),
		Message: apperrors.UserMessage(err),
		Details: details,
	})
}

// StatusForCode maps an application error code to an HTTP status code.
func StatusForCode(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput,
		apperrors.ErrCodeInvalidGraph,
		apperrors.ErrCodeInvalidPackage,
		apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidLockfile,
		apperrors.ErrCodeInvalidPath,
		apperrors.ErrCodeAmbiguousTarget,
		apperrors.ErrCodeTargetNotFound:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound,
		apperrors.ErrCodeFileNotFound,
		apperrors.ErrCodeReportNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
