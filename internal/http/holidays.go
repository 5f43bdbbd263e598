package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"attendance-server/internal/domain"
)

type HolidayResponse struct {
	ID        int64  `json:"holiday_id"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	CreatedAt string `json:"date_created"`
	UpdatedAt string `json:"updated_at"`
}

func holidayToResponse(holiday domain.Holiday) HolidayResponse {
	return HolidayResponse{
		ID:        holiday.ID,
		Name:      holiday.Name,
		Date:      holiday.Date,
		CreatedAt: holiday.CreatedAt.Format(time.RFC3339),
		UpdatedAt: holiday.UpdatedAt.Format(time.RFC3339),
	}
}

type holidayRequest struct {
	Name string `json:"name" binding:"required"`
	Date string `json:"date" binding:"required"`
}

func (h *Handler) listHolidays(c *gin.Context) {
	holidays, err := h.holidays.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]HolidayResponse, len(holidays))
	for i := range holidays {
		resp[i] = holidayToResponse(holidays[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getHoliday(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	holiday, err := h.holidays.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if holiday == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "holiday not found"})
		return
	}

	c.JSON(http.StatusOK, holidayToResponse(*holiday))
}

func (h *Handler) createHoliday(c *gin.Context) {
	var req holidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.holidays.Create(c.Request.Context(), req.Name, req.Date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"holiday_id": outcome.ID,
		"message":    outcome.Message,
	})
}

func (h *Handler) updateHoliday(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req holidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.holidays.Update(c.Request.Context(), id, req.Name, req.Date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": outcome.Success, "message": outcome.Message})
}

func (h *Handler) deleteHoliday(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	outcome, err := h.holidays.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": outcome.Success, "message": outcome.Message})
}
