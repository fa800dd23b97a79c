// Package handlers wires the REST CRUD surface: route registration,
// request binding and the error-kind to status-code mapping.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ovofarm/backoffice/internal/apperr"
)

// writeError maps the service error taxonomy onto HTTP statuses:
// not-found 404, invalid-data 400, conflict 409, anything else 500.
func writeError(c *gin.Context, err error) {
	if ide, ok := apperr.AsInvalid(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid_data",
			"field": ide.Field,
			"msg":   ide.Reason,
		})
		return
	}
	if apperr.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "msg": err.Error()})
		return
	}
	if apperr.IsConflict(err) {
		c.JSON(http.StatusConflict, gin.H{"error": "already_exists", "msg": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
}
