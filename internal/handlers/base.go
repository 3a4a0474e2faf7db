package handlers

import (
	"net/http"

	"inkwell/internal/apperr"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func parseUintParam(s string) (uint, bool) {
	return utils.StringToUint(s)
}

// respondError maps a service failure to a status code by its kind. Anything
// without a kind is an internal error.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindForbidden:
		status = http.StatusForbidden
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindInvalid:
		status = http.StatusBadRequest
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// requireIDParam parses a positive integer path parameter or fails the
// request with 400.
func requireIDParam(c *gin.Context, name string) (uint, bool) {
	id, ok := parseUintParam(c.Param(name))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
	}
	return id, ok
}

// requireUserIDQuery parses the acting user from the userId query parameter
// or fails the request with 400.
func requireUserIDQuery(c *gin.Context) (uint, bool) {
	id, ok := parseUintParam(c.Query("userId"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid userId"})
	}
	return id, ok
}
