package handlers

import (
	"context"
	"errors"
	"net/http"

	"doclink/models"
	"doclink/services/api"
	"doclink/services/booking"
	"doclink/services/client"
	"doclink/utils"

	"github.com/gin-gonic/gin"
)

type confirmInput struct {
	Confirmed bool `json:"confirmed"`
}

func listAppointments(c *gin.Context, view booking.View) {
	cl, ok := currentClient(c)
	if !ok {
		return
	}
	listing, err := cl.Ledger.Load(c.Request.Context(), view)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

// PatientAppointmentsHandler lists the logged-in patient's appointments.
func PatientAppointmentsHandler(c *gin.Context) { listAppointments(c, booking.ViewPatient) }

// DoctorAppointmentsHandler lists the logged-in doctor's appointments.
func DoctorAppointmentsHandler(c *gin.Context) { listAppointments(c, booking.ViewDoctor) }

// AdminAppointmentsHandler lists every appointment, filtered by ?q= and ?status=.
func AdminAppointmentsHandler(c *gin.Context) {
	cl, ok := currentClient(c)
	if !ok {
		return
	}
	listing, err := cl.Ledger.Load(c.Request.Context(), booking.ViewAdmin)
	if err != nil {
		respondError(c, err)
		return
	}
	status := c.DefaultQuery("status", booking.StatusAll)
	listing.Appointments = booking.FilterAppointments(listing.Appointments, c.Query("q"), status)
	c.JSON(http.StatusOK, listing)
}

// AdminPatientsHandler lists every patient.
func AdminPatientsHandler(c *gin.Context) {
	cl, ok := currentClient(c)
	if !ok {
		return
	}
	patients, err := cl.Ledger.Patients(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"patients": patients})
}

// AdminStatsHandler returns the dashboard totals.
func AdminStatsHandler(c *gin.Context) {
	cl, ok := currentClient(c)
	if !ok {
		return
	}
	stats, err := booking.LoadStats(c.Request.Context(), cl.Directory, cl.Ledger)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

type statusAction func(ctx context.Context, cl *client.Client, id models.ID, confirmed bool) (models.Appointment, error)

func cancelAction(ctx context.Context, cl *client.Client, id models.ID, confirmed bool) (models.Appointment, error) {
	return cl.Ledger.Cancel(ctx, id, confirmed)
}

func completeAction(ctx context.Context, cl *client.Client, id models.ID, confirmed bool) (models.Appointment, error) {
	return cl.Ledger.Complete(ctx, id, confirmed)
}

func changeStatus(c *gin.Context, view booking.View, action statusAction) {
	cl, ok := currentClient(c)
	if !ok {
		return
	}
	var input confirmInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ctx := c.Request.Context()
	id := models.ID(c.Param("id"))
	appt, err := action(ctx, cl, id, input.Confirmed)
	if errors.Is(err, booking.ErrUnknownAppointment) {
		// The list may not have been loaded by this client yet.
		if _, loadErr := cl.Ledger.Load(ctx, view); loadErr != nil {
			respondError(c, loadErr)
			return
		}
		appt, err = action(ctx, cl, id, input.Confirmed)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

// PatientCancelHandler cancels one of the patient's appointments.
func PatientCancelHandler(c *gin.Context) { changeStatus(c, booking.ViewPatient, cancelAction) }

// DoctorCancelHandler cancels one of the doctor's appointments.
func DoctorCancelHandler(c *gin.Context) { changeStatus(c, booking.ViewDoctor, cancelAction) }

// DoctorCompleteHandler marks one of the doctor's appointments as completed.
func DoctorCompleteHandler(c *gin.Context) { changeStatus(c, booking.ViewDoctor, completeAction) }

// AddHolidayHandler records a day off for the logged-in doctor.
func AddHolidayHandler(c *gin.Context) {
	cl, ok := currentClient(c)
	if !ok {
		return
	}
	var h models.Holiday
	if err := c.ShouldBindJSON(&h); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	err := cl.Ledger.AddHoliday(c.Request.Context(), h)
	switch {
	case errors.Is(err, booking.ErrValidationIncomplete):
		utils.JSONError(c, http.StatusBadRequest, "Please select a holiday date and enter a reason", err.Error())
		return
	case errors.Is(err, api.ErrConflict):
		utils.JSONError(c, http.StatusConflict, "Holiday already exists for this date.", api.ServerMessage(err))
		return
	case err != nil:
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Holiday added successfully!"})
}
