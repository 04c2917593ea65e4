package middleware

import (
	"errors"
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorHandler renders the last error appended with c.Error into the response envelope
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		log := logger.FromContext(c.Request.Context())

		var appErr *apperror.AppError
		var verrs validator.ValidationErrors
		switch {
		case errors.As(err, &appErr):
			if appErr.Code >= http.StatusInternalServerError {
				log.Error("request failed", "path", c.FullPath(), "error", appErr.Err)
			}
			body := response.ErrorBody{Kind: string(appErr.Kind)}
			if errors.As(appErr.Err, &verrs) {
				body.Details = validation.FormatValidationErrors(verrs)
			}
			response.Error(c, appErr.Code, appErr.Message, body)
		case errors.As(err, &verrs):
			response.Error(c, http.StatusBadRequest, "Validation failed", response.ErrorBody{
				Kind:    string(apperror.KindValidation),
				Details: validation.FormatValidationErrors(verrs),
			})
		default:
			// internal details stay in the log
			log.Error("unhandled error", "path", c.FullPath(), "error", err)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.",
				response.ErrorBody{Kind: string(apperror.KindInternal)})
		}
	}
}
