package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinicbook/clinicbook/internal/domain"
	"github.com/clinicbook/clinicbook/internal/domain/schedule"
	"github.com/clinicbook/clinicbook/internal/service"
)

// BookingHandler exposes the availability grid and the booking operation.
type BookingHandler struct {
	availabilitySvc *service.AvailabilityService
	bookingSvc      *service.BookingService
	directorySvc    *service.DirectoryService
}

func NewBookingHandler(
	availabilitySvc *service.AvailabilityService,
	bookingSvc *service.BookingService,
	directorySvc *service.DirectoryService,
) *BookingHandler {
	return &BookingHandler{
		availabilitySvc: availabilitySvc,
		bookingSvc:      bookingSvc,
		directorySvc:    directorySvc,
	}
}

// Availability returns the 7-day slot grid for a doctor. The doctor must
// be visible to patients; blacklisted doctors 404 before any resolution.
func (h *BookingHandler) Availability(c *gin.Context) {
	doctorID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	d, err := h.directorySvc.VisibleDoctor(c.Request.Context(), doctorID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	dates := schedule.Horizon(time.Now(), service.HorizonDays)
	grid, err := h.availabilitySvc.ResolveGrid(c.Request.Context(), d.ID, dates)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"doctor": d, "days": grid})
}

type bookRequest struct {
	SlotID string `json:"slot_id" binding:"required"`
}

// Book claims a slot for the calling patient.
func (h *BookingHandler) Book(c *gin.Context) {
	caller, ok := principal(c)
	if !ok {
		return
	}
	if caller.Role != domain.RolePatient || caller.PatientID == nil {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "access denied"})
		return
	}

	doctorID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req bookRequest
	if !bindJSON(c, &req) {
		return
	}

	a, err := h.bookingSvc.BookSlot(
		c.Request.Context(),
		*caller.PatientID,
		doctorID,
		schedule.SlotID(req.SlotID),
		caller,
		c.ClientIP(),
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondCreated(c, a)
}
