package middleware

import (
	"errors"
	"net/http"

	"bio-kids-puzzles/internal/domain"
	"bio-kids-puzzles/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Status  int                    `json:"status"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ValidationErrorResponse lists every rejected field of a request
type ValidationErrorResponse struct {
	Code    string                   `json:"code"`
	Message string                   `json:"message"`
	Status  int                      `json:"status"`
	Errors  []domain.ValidationError `json:"errors"`
}

// ErrorHandler renders handler errors as JSON. It is installed as the fiber
// app ErrorHandler and also called by RequestLogger.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get().With(zap.String("request_id", RequestIDFrom(c)), zap.String("path", c.Path()))

		if validationErrs, ok := err.(domain.ValidationErrors); ok {
			return writeValidationErrors(c, log, validationErrs)
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return writeDomainError(c, log, domainErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			log.Warn("Request failed in router", zap.Int("status", fiberErr.Code), zap.String("message", fiberErr.Message))
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Code:    "HTTP_ERROR",
				Message: fiberErr.Message,
				Status:  fiberErr.Code,
			})
		}

		log.Error("Unhandled error", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    string(domain.CodeInternal),
			Message: "Internal server error",
			Status:  http.StatusInternalServerError,
		})
	}
}

func writeValidationErrors(c *fiber.Ctx, log *zap.Logger, errs domain.ValidationErrors) error {
	log.Warn("Request validation failed", zap.Int("error_count", len(errs)))
	return c.Status(http.StatusBadRequest).JSON(ValidationErrorResponse{
		Code:    string(domain.CodeValidation),
		Message: "Request validation failed",
		Status:  http.StatusBadRequest,
		Errors:  errs,
	})
}

func writeDomainError(c *fiber.Ctx, log *zap.Logger, domainErr *domain.DomainError) error {
	status := mapDomainErrorToHTTPStatus(domainErr)
	fields := []zap.Field{zap.String("code", string(domainErr.Code)), zap.Int("status", status)}
	if domainErr.Cause != nil {
		fields = append(fields, zap.Error(domainErr.Cause))
	}
	if status >= http.StatusInternalServerError {
		log.Error(domainErr.Message, fields...)
	} else {
		log.Info(domainErr.Message, fields...)
	}

	body := ErrorResponse{Code: string(domainErr.Code), Message: domainErr.Message, Status: status}
	if len(domainErr.Context) > 0 {
		body.Details = domainErr.Context
	}
	return c.Status(status).JSON(body)
}

func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.CodeNotFound, domain.CodeLevelNotFound, domain.CodeSessionNotFound:
		return http.StatusNotFound
	case domain.CodeInvalidInput, domain.CodeInvalidOption,
		domain.CodeValidation, domain.CodeMissingField, domain.CodeInvalidFormat, domain.CodeOutOfRange:
		return http.StatusBadRequest
	case domain.CodeLevelLocked:
		return http.StatusForbidden
	case domain.CodeAdvanceBeforeAnswer:
		return http.StatusConflict
	case domain.CodeSessionStoreFailure, domain.CodeCatalogSourceFailure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
