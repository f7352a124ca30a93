package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/queueless/queueless-api/internal/middleware"
	"github.com/queueless/queueless-api/internal/model"
	"github.com/queueless/queueless-api/internal/service"
)

// ReferenceHandler serves the read-only reference data: locations, offices
// and the bookable time slots.
type ReferenceHandler struct {
	reference *service.ReferenceService
}

// NewReferenceHandler creates a new reference handler.
func NewReferenceHandler(reference *service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{reference: reference}
}

// ListLocations returns all registered locations
// @Summary      List locations
// @Tags         reference
// @Produce      json
// @Success      200 {object} model.Response
// @Failure      500 {object} model.ErrorResponse
// @Router       /api/v1/locations [get]
func (h *ReferenceHandler) ListLocations(c *gin.Context) {
	locations, err := h.reference.Locations()
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Success: false,
			Error:   "failed to load locations",
		})
		return
	}

	c.JSON(http.StatusOK, model.Response{
		Success: true,
		Data:    locations,
	})
}

// ListOffices returns the offices of one location
// @Summary      List offices of a location
// @Tags         reference
// @Produce      json
// @Param        id path string true "Location ID"
// @Success      200 {object} model.Response
// @Failure      400 {object} model.ErrorResponse
// @Failure      500 {object} model.ErrorResponse
// @Router       /api/v1/locations/{id}/offices [get]
func (h *ReferenceHandler) ListOffices(c *gin.Context) {
	locationID := c.Param("id")
	if !middleware.ValidateID(locationID) {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "invalid location id",
		})
		return
	}

	offices, err := h.reference.OfficesByLocation(locationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Success: false,
			Error:   "failed to load offices",
		})
		return
	}

	resp := model.Response{
		Success: true,
		Data:    offices,
	}
	// An unknown or empty location is not an error, just an empty list
	if len(offices) == 0 {
		resp.Data = []model.Office{}
		resp.Message = "No offices found for this location"
	}

	c.JSON(http.StatusOK, resp)
}

// ListSlots returns the bookable time slots
// @Summary      List time slots
// @Tags         reference
// @Produce      json
// @Success      200 {object} model.Response
// @Router       /api/v1/slots [get]
func (h *ReferenceHandler) ListSlots(c *gin.Context) {
	c.JSON(http.StatusOK, model.Response{
		Success: true,
		Data:    model.DisplaySlots,
	})
}
