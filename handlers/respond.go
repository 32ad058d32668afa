package handlers

import (
	"errors"
	"net/http"

	"schedly/services/booking"
	"schedly/services/scheduling"
	"schedly/services/user"
	"schedly/utils"

	"github.com/gin-gonic/gin"
)

// statusForCode maps service error codes onto HTTP statuses. Both services
// share the same code vocabulary.
func statusForCode(code string) int {
	switch code {
	case booking.CodeValidation:
		return http.StatusBadRequest
	case user.CodeUnauthorized:
		return http.StatusUnauthorized
	case booking.CodeForbidden:
		return http.StatusForbidden
	case booking.CodeNotFound:
		return http.StatusNotFound
	case booking.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError writes a structured error body for a booking or user
// service failure. Scheduling validation errors arrive untyped by code, so
// they are mapped to 400 explicitly.
func respondServiceError(c *gin.Context, err error) {
	var ve *scheduling.ValidationError
	if errors.As(err, &ve) {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeValidation, ve.Message)
		return
	}

	var be *booking.ServiceError
	if errors.As(err, &be) {
		utils.JSONError(c, statusForCode(be.Code), be.Code, be.Message)
		return
	}

	var ue *user.ServiceError
	if errors.As(err, &ue) {
		utils.JSONError(c, statusForCode(ue.Code), ue.Code, ue.Message)
		return
	}

	utils.JSONError(c, http.StatusInternalServerError, booking.CodeInternal, "Internal Server Error")
}

// currentUserID reads the subject the auth middleware stored; empty when the
// route was wired without auth by mistake.
func currentUserID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func currentUserRole(c *gin.Context) string {
	if v, ok := c.Get("userRole"); ok {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}
