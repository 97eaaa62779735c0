package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/clinicbook/clinicbook/internal/domain"
	"github.com/clinicbook/clinicbook/internal/middleware"
	"github.com/clinicbook/clinicbook/pkg/auth"
)

type Handlers struct {
	Auth        *AuthHandler
	Directory   *DirectoryHandler
	Booking     *BookingHandler
	Appointment *AppointmentHandler
	Schedule    *ScheduleHandler
	Admin       *AdminHandler
}

// RegisterRoutes wires the v1 API. Directory and auth endpoints are
// public; everything else requires a bearer token, with role gates on the
// doctor and admin groups.
func RegisterRoutes(r *gin.Engine, h *Handlers, jwtManager *auth.JWTManager) {
	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.Refresh)
		authGroup.POST("/change-password", middleware.Authenticate(jwtManager), h.Auth.ChangePassword)
	}

	directory := api.Group("/directory")
	{
		directory.GET("/departments", h.Directory.ListDepartments)
		directory.GET("/departments/:id/doctors", h.Directory.DepartmentDoctors)
		directory.GET("/doctors/:id", h.Directory.GetDoctor)
	}

	authed := api.Group("")
	authed.Use(middleware.Authenticate(jwtManager))
	{
		authed.GET("/doctors/:id/availability", h.Booking.Availability)
		authed.POST("/doctors/:id/book",
			middleware.RequireRole(domain.RolePatient), h.Booking.Book)

		appts := authed.Group("/appointments")
		{
			appts.GET("/upcoming", h.Appointment.MyUpcoming)
			appts.GET("/history",
				middleware.RequireRole(domain.RolePatient), h.Appointment.MyHistory)
			appts.GET("/:id", h.Appointment.Get)
			appts.POST("/:id/cancel", h.Appointment.Cancel)
			appts.POST("/:id/complete",
				middleware.RequireRole(domain.RoleDoctor), h.Appointment.Complete)
		}

		sched := authed.Group("/schedule")
		sched.Use(middleware.RequireRole(domain.RoleDoctor, domain.RoleAdmin))
		{
			sched.GET("/week", h.Schedule.WeekCalendar)
			sched.PUT("/availability", h.Schedule.SetAvailability)
		}

		admin := authed.Group("/admin")
		admin.Use(middleware.RequireRole(domain.RoleAdmin))
		{
			admin.GET("/dashboard", h.Admin.Dashboard)
			admin.POST("/departments", h.Admin.AddDepartment)
			admin.POST("/doctors", h.Admin.AddDoctor)
			admin.PATCH("/doctors/:id", h.Admin.UpdateDoctor)
			admin.PUT("/doctors/:id/blacklist", h.Admin.SetDoctorBlacklisted)
			admin.DELETE("/doctors/:id", h.Admin.DeleteDoctor)
			admin.PUT("/patients/:id/blacklist", h.Admin.SetPatientBlacklisted)
			admin.DELETE("/patients/:id", h.Admin.DeletePatient)
		}
	}
}
