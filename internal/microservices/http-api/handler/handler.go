package handler

import (
	"errors"
	"fmt"
	"strings"

	"churchhub/internal/access"
	"churchhub/internal/apperror"
	"churchhub/internal/microservices/http-api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var errNoPrincipal = apperror.Unauthorized("Authentication required")

// caller returns the authenticated principal or records Unauthorized on the context.
func caller(c *gin.Context) (*access.Principal, bool) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		c.Error(errNoPrincipal)
		return nil, false
	}
	return principal, true
}

// bindError turns a gin binding failure into a Validation error with a readable message.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
		}
		return apperror.Wrap(apperror.KindValidation, "Invalid request: "+strings.Join(fields, ", "), err)
	}
	return apperror.Wrap(apperror.KindValidation, "Invalid request body", err)
}
