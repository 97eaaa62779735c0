package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinicbook/clinicbook/internal/domain/schedule"
	"github.com/clinicbook/clinicbook/internal/service"
)

// ScheduleHandler lets doctors declare their working shifts.
type ScheduleHandler struct {
	scheduleSvc *service.ScheduleService
}

func NewScheduleHandler(scheduleSvc *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

type setAvailabilityRequest struct {
	DoctorID    string `json:"doctor_id" binding:"required,uuid"`
	Date        string `json:"date" binding:"required"`
	MorningOpen bool   `json:"morning_open"`
	EveningOpen bool   `json:"evening_open"`
}

func (h *ScheduleHandler) SetAvailability(c *gin.Context) {
	caller, ok := principal(c)
	if !ok {
		return
	}

	var req setAvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}

	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date: expected YYYY-MM-DD"})
		return
	}

	doctorID, ok := parseUUIDString(c, req.DoctorID, "doctor_id")
	if !ok {
		return
	}

	rec, err := h.scheduleSvc.SetAvailability(c.Request.Context(), &schedule.SetAvailabilityCommand{
		DoctorID:    doctorID,
		Day:         day,
		MorningOpen: req.MorningOpen,
		EveningOpen: req.EveningOpen,
	}, caller, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, rec)
}

// WeekCalendar returns the calling doctor's declared availability for the
// rolling 7-day window.
func (h *ScheduleHandler) WeekCalendar(c *gin.Context) {
	caller, ok := principal(c)
	if !ok {
		return
	}

	recs, err := h.scheduleSvc.WeekCalendar(c.Request.Context(), caller, time.Now(), service.HorizonDays)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, recs)
}
