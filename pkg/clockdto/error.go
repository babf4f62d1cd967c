package clockdto

// Error codes surfaced over the API.
const (
	CodeBadRequest      = "bad_request"
	CodeSessionNotFound = "session_not_found"
	CodeUnknownPreset   = "unknown_preset"
	CodeInvalidPosition = "invalid_position"
	CodeInternal        = "internal"
)

type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}
	return "timekeeper error"
}
