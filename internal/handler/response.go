package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"porttariff/internal/domain"
	"porttariff/internal/generator"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrInvalidVesselInfo):
		return http.StatusBadRequest, "INVALID_VESSEL_INFO", "vessel_info is required"
	case errors.Is(err, domain.ErrNoMatchingDues):
		return http.StatusBadRequest, "NO_MATCHING_DUES", "no matching dues found"
	case errors.Is(err, domain.ErrEmptyResult):
		return http.StatusInternalServerError, "EMPTY_RESULT", "failed to parse any results from the calculation output"
	case generator.IsRateLimited(err):
		return http.StatusTooManyRequests, "GENERATOR_RATE_LIMITED", "generative text service is rate limited; retry later"
	case errors.Is(err, domain.ErrGeneratorUnavailable):
		return http.StatusBadGateway, "GENERATOR_UNAVAILABLE", "generative text service unavailable"
	case errors.Is(err, domain.ErrRulesUnavailable), errors.Is(err, domain.ErrTariffDocumentNotFound):
		return http.StatusServiceUnavailable, "RULES_UNAVAILABLE", "tariff rules are not available"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "TIMEOUT", "calculation timed out"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
