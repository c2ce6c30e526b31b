package handlers

import (
	"net/http"

	"stayhub/models"
	paymentService "stayhub/services/payment"
	"stayhub/utils"

	"github.com/gin-gonic/gin"
)

// PaymentSvc is wired at startup.
var PaymentSvc paymentService.PaymentService

// CreatePaymentHandler opens a checkout session for a booking.
func CreatePaymentHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	p, err := PaymentSvc.CreatePayment(userID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// ListPaymentsHandler lists payments; admins may filter by userId,
// everyone else sees only their own.
func ListPaymentsHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	page, size := parsePage(c)
	list, err := PaymentSvc.GetPayments(user, c.Query("userId"), page, size)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// PaymentSuccessHandler is the checkout success callback.
func PaymentSuccessHandler(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "sessionId query parameter is required")
		return
	}

	p, err := PaymentSvc.ProcessSuccessfulPayment(sessionID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// PaymentCancelHandler is the checkout cancel callback.
func PaymentCancelHandler(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", "sessionId query parameter is required")
		return
	}

	resp, err := PaymentSvc.ProcessCanceledPayment(sessionID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RenewPaymentHandler replaces an expired checkout session with a new one.
func RenewPaymentHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	p, err := PaymentSvc.RenewPaymentSession(userID, c.Param("paymentId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
