package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"propertyhub-backend/services"
	"propertyhub-backend/utils"
)

type RejectBookingPayload struct {
	Reason string `json:"reason"`
}

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// POST /api/properties/:id/bookings
func (ctrl *BookingController) SubmitBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req services.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	b, err := ctrl.BookingSvc.Submit(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, b)
}

// GET /api/admin/properties/:id/bookings
func (ctrl *BookingController) PropertyBookings(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	list, err := ctrl.BookingSvc.ListForProperty(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// GET /api/admin/bookings?status=
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	list, err := ctrl.BookingSvc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// GET /api/admin/bookings/:id
func (ctrl *BookingController) GetBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	b, err := ctrl.BookingSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, b)
}

// POST /api/admin/bookings/:id/confirm
func (ctrl *BookingController) ConfirmBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	b, err := ctrl.BookingSvc.Confirm(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, b)
}

// POST /api/admin/bookings/:id/reject
func (ctrl *BookingController) RejectBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var payload RejectBookingPayload
	// an empty body is a rejection without a reason
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
			return
		}
	}
	b, err := ctrl.BookingSvc.Reject(c.Request.Context(), id, payload.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, b)
}

// POST /api/admin/bookings/:id/complete
func (ctrl *BookingController) CompleteBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	b, err := ctrl.BookingSvc.Complete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, b)
}

// DELETE /api/admin/bookings/:id
func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := ctrl.BookingSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": id})
}

// GET /api/admin/bookings/stats
func (ctrl *BookingController) BookingStats(c *gin.Context) {
	st, err := ctrl.BookingSvc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, st)
}

// GET /api/admin/bookings/export
func (ctrl *BookingController) ExportBookings(c *gin.Context) {
	f, err := ctrl.BookingSvc.Export(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("close export workbook")
		}
	}()

	name := fmt.Sprintf("bookings-%s.xlsx", time.Now().Format("20060102-150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		log.Error().Err(err).Msg("write export workbook")
	}
}
