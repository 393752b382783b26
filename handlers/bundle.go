// File: handlers/bundle.go
package handlers

import (
	"doclink/services/client"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandlerBundle groups the shell's endpoint handlers and what the routes need
// to wire them.
type HandlerBundle struct {
	Registry          *client.Registry
	Logger            *zap.Logger
	MaxRequestsPerMin int
	AllowedOrigins    []string

	// Session endpoints
	Login   gin.HandlerFunc
	Logout  gin.HandlerFunc
	Session gin.HandlerFunc
	Screen  gin.HandlerFunc
	Resume  gin.HandlerFunc
	Health  gin.HandlerFunc

	// Public endpoints
	ListDoctors gin.HandlerFunc

	// Patient endpoints
	BookingSnapshot     gin.HandlerFunc
	SelectDoctor        gin.HandlerFunc
	RetrySlots          gin.HandlerFunc
	SelectDate          gin.HandlerFunc
	SelectSlot          gin.HandlerFunc
	ChangeSlot          gin.HandlerFunc
	ConfirmBooking      gin.HandlerFunc
	PatientAppointments gin.HandlerFunc
	PatientCancel       gin.HandlerFunc

	// Doctor endpoints
	DoctorAppointments gin.HandlerFunc
	DoctorComplete     gin.HandlerFunc
	DoctorCancel       gin.HandlerFunc
	AddHoliday         gin.HandlerFunc

	// Admin endpoints
	AdminAppointments gin.HandlerFunc
	AdminPatients     gin.HandlerFunc
	AdminStats        gin.HandlerFunc
}

// NewHandlerBundle wires every handler.
func NewHandlerBundle(reg *client.Registry, logger *zap.Logger, maxRequestsPerMin int, origins []string) *HandlerBundle {
	return &HandlerBundle{
		Registry:          reg,
		Logger:            logger,
		MaxRequestsPerMin: maxRequestsPerMin,
		AllowedOrigins:    origins,

		Login:   LoginHandler,
		Logout:  LogoutHandler,
		Session: SessionHandler,
		Screen:  ScreenHandler,
		Resume:  ResumeHandler,
		Health:  HealthHandler,

		ListDoctors: ListDoctorsHandler,

		BookingSnapshot:     BookingSnapshotHandler,
		SelectDoctor:        SelectDoctorHandler,
		RetrySlots:          RetrySlotsHandler,
		SelectDate:          SelectDateHandler,
		SelectSlot:          SelectSlotHandler,
		ChangeSlot:          ChangeSlotHandler,
		ConfirmBooking:      ConfirmBookingHandler,
		PatientAppointments: PatientAppointmentsHandler,
		PatientCancel:       PatientCancelHandler,

		DoctorAppointments: DoctorAppointmentsHandler,
		DoctorComplete:     DoctorCompleteHandler,
		DoctorCancel:       DoctorCancelHandler,
		AddHoliday:         AddHolidayHandler,

		AdminAppointments: AdminAppointmentsHandler,
		AdminPatients:     AdminPatientsHandler,
		AdminStats:        AdminStatsHandler,
	}
}
