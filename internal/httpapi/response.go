package httpapi

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/contract"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/gpa"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/llm"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/ratelimit"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/repository"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/scheduler"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/search"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/service"
)

// classify maps an error to its HTTP status and envelope code.
func classify(err error) (int, contract.ErrorCode) {
	var (
		invalidResp *llm.ErrInvalidResponse
		maxTokens   *llm.ErrMaxTokensExceeded
		upstream    *search.ErrUpstream
	)
	switch {
	case errors.Is(err, service.ErrNoActivePlan):
		return http.StatusNotFound, contract.ErrNoActivePlan
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, domain.ErrSubjectNotFound),
		errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, contract.ErrNotFound
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, domain.ErrBreakNotCompletable),
		errors.Is(err, gpa.ErrUnknownGrade):
		return http.StatusBadRequest, contract.ErrInvalidInput
	case errors.Is(err, scheduler.ErrNoStudyDays):
		return http.StatusUnprocessableEntity, contract.ErrNoStudyDays
	case errors.Is(err, service.ErrNoSubjects):
		return http.StatusUnprocessableEntity, contract.ErrNoSubjects
	case errors.Is(err, ratelimit.ErrLimited):
		return http.StatusTooManyRequests, contract.ErrRateLimited
	case errors.Is(err, llm.ErrDisabled):
		return http.StatusServiceUnavailable, contract.ErrAIDisabled
	case errors.Is(err, search.ErrSearchDisabled):
		return http.StatusServiceUnavailable, contract.ErrSearchDisabled
	case errors.As(err, &invalidResp), errors.As(err, &maxTokens):
		return http.StatusBadGateway, contract.ErrAIInvalid
	case llm.IsUnavailable(err):
		return http.StatusBadGateway, contract.ErrAIUnavailable
	case errors.As(err, &upstream):
		return http.StatusBadGateway, contract.ErrSearchFailed
	}
	return http.StatusInternalServerError, contract.ErrInternal
}

func respondError(c *gin.Context, err error) {
	status, code := classify(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "internal error"
	}
	var limited *ratelimit.LimitedError
	if errors.As(err, &limited) {
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(limited.RetryAfter.Seconds()))))
	}
	c.JSON(status, contract.ErrorEnvelope{Error: contract.Error{Code: code, Message: msg}})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, contract.ErrorEnvelope{
		Error: contract.Error{Code: contract.ErrInvalidInput, Message: err.Error()},
	})
}

// bindJSON decodes the body into v and answers 400 on failure.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		badRequest(c, err)
		return false
	}
	return true
}

func queryInt(c *gin.Context, key string, def int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		badRequest(c, errors.New(key+" must be an integer"))
		return 0, false
	}
	return n, true
}
