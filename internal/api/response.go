package api

import (
	"errors"
	"net/http"
	"strconv"

	"finance_api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError maps a service error to the JSON error envelope. Every error
// crossing the API boundary goes through here exactly once.
func respondError(c *gin.Context, err error) {
	var validation *service.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"status":  false,
			"message": "the given data was invalid",
			"errors":  validation.Fields,
		})
		return
	}
	var auth *service.AuthenticationError
	if errors.As(err, &auth) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status": false,
			"error":  gin.H{"code": http.StatusUnauthorized, "message": auth.Msg},
		})
		return
	}
	var notFound *service.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"status": false,
			"error":  gin.H{"code": http.StatusNotFound, "message": notFound.Error()},
		})
		return
	}
	var conflict *service.ConflictError
	if errors.As(err, &conflict) {
		c.JSON(conflict.Code, gin.H{
			"status": false,
			"error":  gin.H{"code": conflict.Code, "message": conflict.Msg},
		})
		return
	}
	logrus.WithFields(logrus.Fields{
		"path":  c.FullPath(),
		"error": err.Error(),
	}).Error("Unhandled service error")
	c.JSON(http.StatusInternalServerError, gin.H{
		"status": false,
		"error":  gin.H{"code": http.StatusInternalServerError, "message": "internal server error"},
	})
}

// bindError turns a JSON binding failure into the validation envelope, so a
// malformed body gets the same 422 shape as any other bad input.
func bindError(c *gin.Context) {
	v := service.NewValidationError()
	v.Add("body", "the request body must be valid json")
	respondError(c, v)
}

// paramID parses the {id} path parameter. A non-numeric id behaves like an
// unknown one: not found.
func paramID(c *gin.Context, resource string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, &service.NotFoundError{Resource: resource})
		return 0, false
	}
	return uint(id), true
}

// pageParam parses the optional ?page= query parameter, defaulting to 1.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
