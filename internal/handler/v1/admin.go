package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/clinicbook/clinicbook/internal/domain/doctor"
	"github.com/clinicbook/clinicbook/internal/service"
)

// AdminHandler exposes the administrative surface: doctor CRUD, blacklist
// toggles, account deletion, and the dashboard aggregate.
type AdminHandler struct {
	adminSvc *service.AdminService
}

func NewAdminHandler(adminSvc *service.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	caller, ok := principal(c)
	if !ok {
		return
	}

	d, err := h.adminSvc.Dashboard(c.Request.Context(), caller)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, d)
}

type addDepartmentRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description"`
}

func (h *AdminHandler) AddDepartment(c *gin.Context) {
	caller, ok := principal(c)
	if !ok {
		return
	}

	var req addDepartmentRequest
	if !bindJSON(c, &req) {
		return
	}

	dep, err := h.adminSvc.AddDepartment(c.Request.Context(), req.Name, req.Description, caller, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, dep)
}

type addDoctorRequest struct {
	Name           string `json:"name" binding:"required,max=120"`
	Email          string `json:"email" binding:"required,email"`
	Specialization string `json:"specialization" binding:"max=120"`
	DepartmentID   string `json:"department_id" binding:"omitempty,uuid"`
	ExperienceYrs  *int   `json:"experience_yrs" binding:"omitempty,min=0,max=80"`
}

func (h *AdminHandler) AddDoctor(c *gin.Context) {
	caller, ok := principal(c)
	if !ok {
		return
	}

	var req addDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := &doctor.CreateDoctorCommand{
		Name:           req.Name,
		Email:          req.Email,
		Specialization: req.Specialization,
		ExperienceYrs:  req.ExperienceYrs,
	}
	if req.DepartmentID != "" {
		depID, ok := parseUUIDString(c, req.DepartmentID, "department_id")
		if !ok {
			return
		}
		cmd.DepartmentID = &depID
	}

	d, err := h.adminSvc.AddDoctor(c.Request.Context(), cmd, caller, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, d)
}

type updateDoctorRequest struct {
	Name           *string `json:"name" binding:"omitempty,max=120"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Specialization *string `json:"specialization" binding:"omitempty,max=120"`
	DepartmentID   *string `json:"department_id" binding:"omitempty,uuid"`
	ExperienceYrs  *int    `json:"experience_yrs" binding:"omitempty,min=0,max=80"`
}

func (h *AdminHandler) UpdateDoctor(c *gin.Context) {
	caller, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req updateDoctorRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := &doctor.UpdateDoctorCommand{
		Name:           req.Name,
		Email:          req.Email,
		Specialization: req.Specialization,
		ExperienceYrs:  req.ExperienceYrs,
	}
	if req.DepartmentID != nil {
		depID, ok := parseUUIDString(c, *req.DepartmentID, "department_id")
		if !ok {
			return
		}
		cmd.DepartmentID = &depID
	}

	d, err := h.adminSvc.UpdateDoctor(c.Request.Context(), id, cmd, caller, c.ClientIP())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, d)
}

type blacklistRequest struct {
	Blacklisted *bool `json:"blacklisted" binding:"required"`
}

func (h *AdminHandler) SetDoctorBlacklisted(c *gin.Context) {
	caller, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req blacklistRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.adminSvc.SetDoctorBlacklisted(c.Request.Context(), id, *req.Blacklisted, caller, c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"blacklisted": *req.Blacklisted})
}

func (h *AdminHandler) SetPatientBlacklisted(c *gin.Context) {
	caller, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	var req blacklistRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.adminSvc.SetPatientBlacklisted(c.Request.Context(), id, *req.Blacklisted, caller, c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"blacklisted": *req.Blacklisted})
}

func (h *AdminHandler) DeleteDoctor(c *gin.Context) {
	caller, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.adminSvc.DeleteDoctor(c.Request.Context(), id, caller, c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}

func (h *AdminHandler) DeletePatient(c *gin.Context) {
	caller, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.adminSvc.DeletePatient(c.Request.Context(), id, caller, c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}
