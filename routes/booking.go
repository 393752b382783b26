package routes

import (
	"doclink/handlers"
	"doclink/middleware"
	"doclink/models"

	"github.com/gin-gonic/gin"
)

// RegisterPatientRoutes sets up the booking workflow and the patient's appointments.
func RegisterPatientRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	patient := api.Group("/patient")
	{
		patient.Use(middleware.RequireRole(string(models.RolePatient)))
		patient.GET("/booking", hb.BookingSnapshot)
		patient.POST("/booking/doctor", hb.SelectDoctor)
		patient.POST("/booking/retry", hb.RetrySlots)
		patient.POST("/booking/date", hb.SelectDate)
		patient.POST("/booking/slot", hb.SelectSlot)
		patient.DELETE("/booking/slot", hb.ChangeSlot)
		patient.POST("/booking/confirm", hb.ConfirmBooking)
		patient.GET("/appointments", hb.PatientAppointments)
		patient.PUT("/appointments/:id/cancel", hb.PatientCancel)
	}
}

// RegisterDoctorRoutes sets up the doctor's appointment actions and holidays.
func RegisterDoctorRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	doctor := api.Group("/doctor")
	{
		doctor.Use(middleware.RequireRole(string(models.RoleDoctor)))
		doctor.GET("/appointments", hb.DoctorAppointments)
		doctor.PUT("/appointments/:id/complete", hb.DoctorComplete)
		doctor.PUT("/appointments/:id/cancel", hb.DoctorCancel)
		doctor.POST("/holiday", hb.AddHoliday)
	}
}

// RegisterAdminRoutes sets up the admin lists and dashboard totals.
func RegisterAdminRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	admin := api.Group("/admin")
	{
		admin.Use(middleware.RequireRole(string(models.RoleAdmin)))
		admin.GET("/appointments", hb.AdminAppointments)
		admin.GET("/patients", hb.AdminPatients)
		admin.GET("/stats", hb.AdminStats)
	}
}
