package v1

import (
	"errors"
	"net/http"
	"strconv"

	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// principal returns the caller set by AuthMiddleware, appending an error when missing
func principal(c *gin.Context) (domain.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		c.Error(apperror.Unauthenticated("User not authenticated"))
		return domain.Principal{}, false
	}
	return p, true
}

// pathID parses a positive int64 path parameter
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return 0, false
	}
	return id, true
}

// bind decodes the JSON body. Field errors go to ErrorHandler as is, malformed bodies as a 400.
func bind(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.Error(apperror.New(http.StatusBadRequest, "Validation failed", verrs))
	} else {
		c.Error(apperror.BadRequest("Malformed request body"))
	}
	return false
}
