package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/queueless/queueless-api/internal/metrics"
	"github.com/queueless/queueless-api/internal/middleware"
	"github.com/queueless/queueless-api/internal/model"
	"github.com/queueless/queueless-api/internal/service"
)

// EstimateHandler serves waiting-time estimates and the best-slot scan.
type EstimateHandler struct {
	estimator *service.EstimatorService
	reference *service.ReferenceService
	now       func() time.Time
}

// NewEstimateHandler creates a new estimate handler.
func NewEstimateHandler(estimator *service.EstimatorService, reference *service.ReferenceService) *EstimateHandler {
	return &EstimateHandler{
		estimator: estimator,
		reference: reference,
		now:       time.Now,
	}
}

// parseDay reads the optional day query parameter, defaulting to today.
func (h *EstimateHandler) parseDay(c *gin.Context) (int, bool) {
	raw := c.Query("day")
	if raw == "" {
		return model.WeekdayIndex(h.now().Weekday()), true
	}

	day, err := strconv.Atoi(raw)
	if err != nil || !model.ValidDay(day) {
		return 0, false
	}
	return day, true
}

// resolveOffice loads the office or writes the error response.
func (h *EstimateHandler) resolveOffice(c *gin.Context) (*model.Office, bool) {
	officeID := c.Param("id")
	if !middleware.ValidateID(officeID) {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "invalid office id",
		})
		return nil, false
	}

	office, err := h.reference.Office(officeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Success: false,
			Error:   "failed to load office",
		})
		return nil, false
	}
	if office == nil {
		c.JSON(http.StatusNotFound, model.ErrorResponse{
			Success: false,
			Error:   "office not found",
		})
		return nil, false
	}
	return office, true
}

// GetEstimate computes the waiting-time estimate for one office and slot
// @Summary      Waiting-time estimate
// @Tags         estimates
// @Produce      json
// @Param        id path string true "Office ID"
// @Param        day query int false "Day of week, Monday=0 (default today)"
// @Param        slot query string true "Time slot, e.g. 09:00-10:00"
// @Success      200 {object} model.Response
// @Failure      400 {object} model.ErrorResponse
// @Failure      404 {object} model.ErrorResponse
// @Failure      500 {object} model.ErrorResponse
// @Router       /api/v1/offices/{id}/estimate [get]
func (h *EstimateHandler) GetEstimate(c *gin.Context) {
	office, ok := h.resolveOffice(c)
	if !ok {
		return
	}

	day, ok := h.parseDay(c)
	if !ok {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "day must be an integer between 0 (Monday) and 6 (Sunday)",
		})
		return
	}

	slot := middleware.SanitizeSlot(c.Query("slot"))
	if !model.ValidSlot(slot) {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "slot must be one of the offered time slots",
		})
		return
	}

	result, err := h.estimator.Estimate(c.Request.Context(), office.ID, day, slot, h.now())
	if err != nil {
		if errors.Is(err, model.ErrNoBaseline) {
			metrics.Get().IncrementEstimate("no_data")
			c.JSON(http.StatusNotFound, model.ErrorResponse{
				Success: false,
				Error:   "no baseline data for this office and slot",
			})
			return
		}

		metrics.Get().IncrementEstimate("error")
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Success: false,
			Error:   "failed to compute estimate",
		})
		return
	}

	metrics.Get().IncrementEstimate("ok")
	c.JSON(http.StatusOK, model.Response{
		Success: true,
		Data:    result,
	})
}

// GetBestSlot scans the day for the slot with the lowest baseline
// @Summary      Best slot of the day
// @Tags         estimates
// @Produce      json
// @Param        id path string true "Office ID"
// @Param        day query int false "Day of week, Monday=0 (default today)"
// @Success      200 {object} model.Response
// @Failure      400 {object} model.ErrorResponse
// @Failure      404 {object} model.ErrorResponse
// @Failure      500 {object} model.ErrorResponse
// @Router       /api/v1/offices/{id}/best-slot [get]
func (h *EstimateHandler) GetBestSlot(c *gin.Context) {
	office, ok := h.resolveOffice(c)
	if !ok {
		return
	}

	day, ok := h.parseDay(c)
	if !ok {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "day must be an integer between 0 (Monday) and 6 (Sunday)",
		})
		return
	}

	best, err := h.estimator.BestSlotToday(office.ID, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Success: false,
			Error:   "failed to scan slots",
		})
		return
	}

	if best == nil {
		metrics.Get().IncrementBestSlotScan(false)
		c.JSON(http.StatusNotFound, model.ErrorResponse{
			Success: false,
			Error:   "no baseline data for this office and day",
		})
		return
	}

	metrics.Get().IncrementBestSlotScan(true)
	c.JSON(http.StatusOK, model.Response{
		Success: true,
		Data:    best,
	})
}
