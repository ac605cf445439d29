package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"propertyhub-backend/services"
	"propertyhub-backend/utils"
)

// statusFor maps service errors onto HTTP codes. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrPropertyNotFound),
		errors.Is(err, services.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDatesUnavailable),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrPropertyNotBookable),
		errors.Is(err, services.ErrPropertyHasBookings):
		return http.StatusConflict
	case errors.Is(err, services.ErrDatesRequired),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, services.ErrEndBeforeStart),
		errors.Is(err, services.ErrStartInPast),
		errors.Is(err, services.ErrContactRequired),
		errors.Is(err, services.ErrInvalidGuests),
		errors.Is(err, services.ErrInvalidTime),
		errors.Is(err, services.ErrPropertyFieldsMissing),
		errors.Is(err, services.ErrPropertyNegative),
		errors.Is(err, services.ErrUnknownAmenity),
		errors.Is(err, services.ErrInvalidPropertyStatus),
		errors.Is(err, services.ErrInvalidBookingStatus):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		utils.JSONError(c, code, "Internal server error")
		return
	}
	utils.JSONError(c, code, err.Error())
}

// paramID reads :id as a positive integer, writing a 400 when it is not.
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(id), true
}
