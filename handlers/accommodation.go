package handlers

import (
	"net/http"

	"stayhub/models"
	accommodationService "stayhub/services/accommodation"
	"stayhub/utils"

	"github.com/gin-gonic/gin"
)

// AccommodationSvc is wired at startup.
var AccommodationSvc accommodationService.AccommodationService

// CreateAccommodationHandler adds a new accommodation. Admin only.
func CreateAccommodationHandler(c *gin.Context) {
	var req models.AccommodationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	a, err := AccommodationSvc.Create(req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// ListAccommodationsHandler returns a page of accommodations.
func ListAccommodationsHandler(c *gin.Context) {
	page, size := parsePage(c)
	list, err := AccommodationSvc.GetAll(page, size)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetAccommodationHandler returns a single accommodation.
func GetAccommodationHandler(c *gin.Context) {
	a, err := AccommodationSvc.GetByID(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// UpdateAccommodationHandler replaces an accommodation's fields. Admin only.
func UpdateAccommodationHandler(c *gin.Context) {
	var req models.AccommodationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	a, err := AccommodationSvc.Update(c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// DeleteAccommodationHandler removes an accommodation. Admin only.
func DeleteAccommodationHandler(c *gin.Context) {
	if err := AccommodationSvc.Delete(c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
