package handlers

import (
	"net/http"

	"stayhub/models"
	bookingService "stayhub/services/booking"
	"stayhub/utils"

	"github.com/gin-gonic/gin"
)

// BookingSvc is wired at startup.
var BookingSvc bookingService.BookingService

// CreateBookingHandler books an accommodation for the authenticated user.
func CreateBookingHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	b, err := BookingSvc.CreateBooking(userID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// ListBookingsHandler returns bookings filtered by userId and status.
// Admin only.
func ListBookingsHandler(c *gin.Context) {
	page, size := parsePage(c)
	params := models.BookingSearchParams{
		UserID: c.Query("userId"),
		Status: c.Query("status"),
	}

	list, err := BookingSvc.GetBookingsByUserAndStatus(params, page, size)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// MyBookingsHandler returns the authenticated user's bookings.
func MyBookingsHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	page, size := parsePage(c)
	list, err := BookingSvc.GetMyBookings(userID, page, size)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetBookingHandler returns a booking to its owner or an admin.
func GetBookingHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	b, err := BookingSvc.GetBookingByID(userID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// UpdateBookingHandler changes the dates of a booking.
func UpdateBookingHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	// Ownership is checked by the read before the write.
	if _, err := BookingSvc.GetBookingByID(userID, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}

	b, err := BookingSvc.UpdateBooking(c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBookingHandler cancels a booking.
func CancelBookingHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := BookingSvc.CancelBooking(userID, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
