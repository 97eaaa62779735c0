package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicbook/clinicbook/internal/domain/appointment"
	"github.com/clinicbook/clinicbook/internal/service"
)

type AppointmentHandler struct {
	apptSvc *service.AppointmentService
}

func NewAppointmentHandler(apptSvc *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{apptSvc: apptSvc}
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	caller, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	a, err := h.apptSvc.Get(c.Request.Context(), id, caller)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, a)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	caller, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	a, err := h.apptSvc.Cancel(c.Request.Context(), id, caller, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, a)
}

type completeRequest struct {
	Treatment *treatmentRequest `json:"treatment"`
}

type treatmentRequest struct {
	Diagnosis    string `json:"diagnosis" binding:"required"`
	Prescription string `json:"prescription"`
	TestsOrdered string `json:"tests_ordered"`
	Medicines    string `json:"medicines"`
	Notes        string `json:"notes"`
}

// Complete marks the visit done, optionally recording its treatment.
func (h *AppointmentHandler) Complete(c *gin.Context) {
	caller, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req completeRequest
	if !bindJSON(c, &req) {
		return
	}

	var input *appointment.TreatmentInput
	if req.Treatment != nil {
		input = &appointment.TreatmentInput{
			Diagnosis:    req.Treatment.Diagnosis,
			Prescription: req.Treatment.Prescription,
			TestsOrdered: req.Treatment.TestsOrdered,
			Medicines:    req.Treatment.Medicines,
			Notes:        req.Treatment.Notes,
		}
	}

	a, err := h.apptSvc.Complete(c.Request.Context(), id, caller, input, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, a)
}

// MyUpcoming lists the caller's future booked appointments; patients and
// doctors each see their own side of the ledger.
func (h *AppointmentHandler) MyUpcoming(c *gin.Context) {
	caller, ok := principal(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	switch {
	case caller.PatientID != nil:
		appts, err := h.apptSvc.UpcomingForPatient(ctx, *caller.PatientID, caller)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondOK(c, appts)
	case caller.DoctorID != nil:
		appts, err := h.apptSvc.UpcomingForDoctor(ctx, *caller.DoctorID, caller)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		respondOK(c, appts)
	default:
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "access denied"})
	}
}

// MyHistory lists the calling patient's completed and cancelled visits,
// most recent first.
func (h *AppointmentHandler) MyHistory(c *gin.Context) {
	caller, ok := principal(c)
	if !ok {
		return
	}
	if caller.PatientID == nil {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "access denied"})
		return
	}

	appts, err := h.apptSvc.HistoryForPatient(c.Request.Context(), *caller.PatientID, caller)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, appts)
}
