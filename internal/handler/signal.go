package handler

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/queueless/queueless-api/internal/middleware"
	"github.com/queueless/queueless-api/internal/model"
	"github.com/queueless/queueless-api/internal/service"
)

// SignalHandler receives the anonymous crowd check-ins.
type SignalHandler struct {
	checkins  *service.CheckInService
	reference *service.ReferenceService
	now       func() time.Time
}

// NewSignalHandler creates a new signal handler.
func NewSignalHandler(checkins *service.CheckInService, reference *service.ReferenceService) *SignalHandler {
	return &SignalHandler{
		checkins:  checkins,
		reference: reference,
		now:       time.Now,
	}
}

// CheckIn records one entered/completed signal for an office
// @Summary      Record a crowd signal
// @Tags         signals
// @Accept       json
// @Produce      json
// @Param        id path string true "Office ID"
// @Param        request body model.CheckInRequest true "Signal payload"
// @Success      201 {object} model.Response
// @Failure      400 {object} model.ErrorResponse
// @Failure      404 {object} model.ErrorResponse
// @Failure      429 {object} model.ErrorResponse
// @Failure      500 {object} model.ErrorResponse
// @Router       /api/v1/offices/{id}/signals [post]
func (h *SignalHandler) CheckIn(c *gin.Context) {
	officeID := c.Param("id")
	if !middleware.ValidateID(officeID) {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "invalid office id",
		})
		return
	}

	office, err := h.reference.Office(officeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Success: false,
			Error:   "failed to load office",
		})
		return
	}
	if office == nil {
		c.JSON(http.StatusNotFound, model.ErrorResponse{
			Success: false,
			Error:   "office not found",
		})
		return
	}

	var req model.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "invalid payload",
			Details: err.Error(),
		})
		return
	}
	if !req.SignalType.Valid() {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Success: false,
			Error:   "signal_type must be 'entered' or 'completed'",
		})
		return
	}

	sess, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Success: false,
			Error:   "session not resolved",
		})
		return
	}

	now := h.now()
	accepted, err := h.checkins.Record(c.Request.Context(), office.ID, req.SignalType, sess, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Success: false,
			Error:   "failed to record signal",
		})
		return
	}

	if !accepted {
		retryAfter := int(math.Ceil(sess.CooldownRemaining(now).Seconds()))
		c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
		c.JSON(http.StatusTooManyRequests, model.ErrorResponse{
			Success: false,
			Error:   "please wait before sending another signal",
			Details: fmt.Sprintf("retry in %d seconds", retryAfter),
		})
		return
	}

	c.JSON(http.StatusCreated, model.Response{
		Success: true,
		Message: "Signal recorded",
	})
}
