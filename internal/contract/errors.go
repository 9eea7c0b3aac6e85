package contract

type ErrorCode string

const (
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrNoStudyDays    ErrorCode = "NO_STUDY_DAYS"
	ErrNoSubjects     ErrorCode = "NO_SUBJECTS"
	ErrNoActivePlan   ErrorCode = "NO_ACTIVE_PLAN"
	ErrRateLimited    ErrorCode = "RATE_LIMITED"
	ErrAIDisabled     ErrorCode = "AI_DISABLED"
	ErrAIUnavailable  ErrorCode = "AI_UNAVAILABLE"
	ErrAIInvalid      ErrorCode = "AI_INVALID_RESPONSE"
	ErrSearchDisabled ErrorCode = "SEARCH_DISABLED"
	ErrSearchFailed   ErrorCode = "SEARCH_FAILED"
	ErrUnauthorized   ErrorCode = "UNAUTHORIZED"
	ErrInternal       ErrorCode = "INTERNAL"
)

// Error is the body of every failed API response:
// {"error":{"message":"...","code":"..."}}.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

type ErrorEnvelope struct {
	Error Error `json:"error"`
}
