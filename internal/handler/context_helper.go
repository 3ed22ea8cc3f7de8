package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/noah-isme/clinic-readiness-api/internal/middleware"
	appErrors "github.com/noah-isme/clinic-readiness-api/pkg/errors"
	"github.com/noah-isme/clinic-readiness-api/pkg/response"
)

// clinicianFromContext returns the acting clinician or writes a 400.
func clinicianFromContext(c *gin.Context) (string, bool) {
	id := middleware.ClinicianID(c)
	if id == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "clinician context is required"))
		return "", false
	}
	return id, true
}

func childParam(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "child id is required"))
		return "", false
	}
	// Child ids are UUIDs; anything else cannot name a stored record.
	if _, err := uuid.Parse(id); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "child not found"))
		return "", false
	}
	return id, true
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return false
	}
	return true
}
