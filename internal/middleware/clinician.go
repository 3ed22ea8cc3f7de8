package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/clinic-readiness-api/pkg/errors"
	"github.com/noah-isme/clinic-readiness-api/pkg/logger"
	"github.com/noah-isme/clinic-readiness-api/pkg/response"
)

// ContextClinicianKey is the gin context key holding the acting clinician id.
const ContextClinicianKey = "clinicianID"

const maxClinicianIDLength = 128

// Clinician requires the X-Clinician-ID header and stores it on the context.
// It identifies whose caseload a request acts on; it does not authenticate.
func Clinician() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(logger.ClinicianHeader))
		if id == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, logger.ClinicianHeader+" header is required"))
			c.Abort()
			return
		}
		if len(id) > maxClinicianIDLength {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, logger.ClinicianHeader+" header is too long"))
			c.Abort()
			return
		}
		c.Set(ContextClinicianKey, id)
		c.Next()
	}
}

// ClinicianID returns the clinician stored by Clinician, or "".
func ClinicianID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(ContextClinicianKey)
}
