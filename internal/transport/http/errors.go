package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "ticketd/pkg/domain-errors"
)

// errorResponse is the JSON error envelope returned on every rejection.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// writeError centralizes domain error translation to HTTP responses so every
// handler returns the same envelope.
func writeError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	var de *dErrors.DomainError
	message := ""
	if errors.As(err, &de) {
		message = de.Message
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(toHTTPStatus(code))
	_ = json.NewEncoder(w).Encode(errorResponse{Error: string(code), Message: message})
}

// toHTTPStatus maps domain error codes onto HTTP statuses in one place.
func toHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeInvalidInput, dErrors.CodeValidation, dErrors.CodeBadRequest, dErrors.CodeInvalidAmount:
		return http.StatusBadRequest
	case dErrors.CodeInsufficientPayment:
		return http.StatusPaymentRequired
	case dErrors.CodePaused, dErrors.CodeInvalidState, dErrors.CodeConflict,
		dErrors.CodeInsufficientBalance, dErrors.CodeNotExpired, dErrors.CodeAlreadyBurned:
		return http.StatusConflict
	case dErrors.CodeExpired:
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}
