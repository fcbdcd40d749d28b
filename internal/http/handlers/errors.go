package handlers

import (
	"net/http"

	"ridesboard/internal/domain"
	"ridesboard/internal/http/middleware"
	"ridesboard/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
	})
}

var domainStatuses = []struct {
	match  func(error) bool
	status int
	code   string
}{
	{domain.IsValidation, http.StatusBadRequest, "validation_error"},
	{domain.IsUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{domain.IsForbidden, http.StatusForbidden, "forbidden"},
	{domain.IsNotFound, http.StatusNotFound, "not_found"},
	{domain.IsConflict, http.StatusConflict, "conflict"},
}

// RespondDomainError maps domain errors to HTTP responses. Anything unknown
// is logged and reported as a bare 500.
func RespondDomainError(c *gin.Context, err error) {
	for _, m := range domainStatuses {
		if m.match(err) {
			respondError(c, m.status, m.code, err.Error(), nil)
			return
		}
	}
	utils.LogEvent(middleware.GetRequestID(c), "http", "internal_error", err.Error())
	respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
}
