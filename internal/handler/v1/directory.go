package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/clinicbook/clinicbook/internal/service"
)

// DirectoryHandler serves the patient-facing department and doctor
// listings used to pick a doctor before checking availability.
type DirectoryHandler struct {
	directorySvc *service.DirectoryService
}

func NewDirectoryHandler(directorySvc *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directorySvc: directorySvc}
}

func (h *DirectoryHandler) ListDepartments(c *gin.Context) {
	deps, err := h.directorySvc.ListDepartments(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, deps)
}

func (h *DirectoryHandler) DepartmentDoctors(c *gin.Context) {
	depID, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	docs, err := h.directorySvc.DepartmentDoctors(c.Request.Context(), depID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, docs)
}

func (h *DirectoryHandler) GetDoctor(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	d, err := h.directorySvc.VisibleDoctor(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, d)
}
