package handlers

import (
	"errors"
	"net/http"

	"folio/models"
	"folio/services/scheduling"
	"folio/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SchedulingHandler exposes the booking flow to the page.
type SchedulingHandler struct {
	Service scheduling.SchedulingService
	Logger  *zap.Logger
}

func NewSchedulingHandler(svc scheduling.SchedulingService, logger *zap.Logger) *SchedulingHandler {
	return &SchedulingHandler{Service: svc, Logger: logger}
}

// OpenSession starts (or restarts) a booking flow at the date step.
func (h *SchedulingHandler) OpenSession(c *gin.Context) {
	session, week, err := h.Service.OpenSession(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to open booking session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session": session,
		"week":    week,
	})
}

// GetSession returns the current flow state.
func (h *SchedulingHandler) GetSession(c *gin.Context) {
	session, err := h.Service.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// GetWeek returns the visible week, optionally paged with ?dir=next|previous.
func (h *SchedulingHandler) GetWeek(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var (
		week *models.WeekView
		err  error
	)
	if dir := c.Query("dir"); dir != "" {
		week, err = h.Service.NavigateWeek(c.Request.Context(), sessionID, dir)
	} else {
		week, err = h.Service.CurrentWeek(c.Request.Context(), sessionID)
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"week": week})
}

// SelectDate records the picked day and returns the computed availability.
func (h *SchedulingHandler) SelectDate(c *gin.Context) {
	var input struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := h.Service.SelectDate(c.Request.Context(), c.Param("sessionID"), input.Date)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// SelectTime records the picked slot label.
func (h *SchedulingHandler) SelectTime(c *gin.Context) {
	var input struct {
		Slot string `json:"slot" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := h.Service.SelectTime(c.Request.Context(), c.Param("sessionID"), input.Slot)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// Submit validates the details and attempts the calendar write. The response
// carries the resulting step: confirmation on success, error with the reason
// when the remote rejected the booking.
func (h *SchedulingHandler) Submit(c *gin.Context) {
	var input struct {
		Details models.BookingDetails `json:"details"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := h.Service.SubmitDetails(c.Request.Context(), c.Param("sessionID"), input.Details)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := gin.H{"session": session}
	if session.Step == models.StepConfirmed {
		resp["confirmation"] = models.BookingConfirmation{
			Date:      session.SelectedDate,
			Slot:      session.SelectedSlot,
			Details:   session.Details,
			CreatedAt: session.CreatedAt,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Retry returns a failed booking to the details step, details intact.
func (h *SchedulingHandler) Retry(c *gin.Context) {
	session, err := h.Service.Retry(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// Back steps the flow backwards where a back target exists.
func (h *SchedulingHandler) Back(c *gin.Context) {
	session, err := h.Service.Back(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// CloseSession discards the flow.
func (h *SchedulingHandler) CloseSession(c *gin.Context) {
	if err := h.Service.CloseSession(c.Request.Context(), c.Param("sessionID")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to close booking session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"closed": true})
}

// respondError maps domain errors onto HTTP statuses.
func (h *SchedulingHandler) respondError(c *gin.Context, err error) {
	var fieldErr *scheduling.FieldError
	if errors.As(err, &fieldErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": fieldErr.Message,
			"field": fieldErr.Field,
		})
		return
	}

	var flowErr *scheduling.FlowError
	if errors.As(err, &flowErr) {
		status := http.StatusConflict
		switch flowErr.Code {
		case "sessionNotFound":
			status = http.StatusNotFound
		case "invalidDate", "invalidDirection":
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": flowErr.Message, "code": flowErr.Code})
		return
	}

	h.Logger.Error("scheduling handler error", zap.Error(err))
	utils.JSONError(c, http.StatusInternalServerError, "scheduling operation failed", err.Error())
}
