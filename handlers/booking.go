package handlers

import (
	"net/http"

	"doclink/models"
	"doclink/utils"

	"github.com/gin-gonic/gin"
)

// BookingSnapshotHandler returns the workflow state.
func BookingSnapshotHandler(c *gin.Context) {
	cl, ok := currentClient(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cl.Workflow.Snapshot())
}

// SelectDoctorHandler toggles the doctor selection and loads its slots.
func SelectDoctorHandler(c *gin.Context) {
	cl, ok := currentClient(c)
	if !ok {
		return
	}
	var input struct {
		DoctorID models.ID `json:"doctorId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ctx := c.Request.Context()
	doctor, err := cl.Directory.Find(ctx, input.DoctorID)
	if err != nil {
		respondError(c, err)
		return
	}
	snap, err := cl.Workflow.SelectDoctor(ctx, doctor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// RetrySlotsHandler reloads the selected doctor's slots.
func RetrySlotsHandler(c *gin.Context) {
	cl, ok := currentClient(c)
	if !ok {
		return
	}
	snap, err := cl.Workflow.RetrySlots(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// SelectDateHandler picks a date from the offer.
func SelectDateHandler(c *gin.Context) {
	cl, ok := currentClient(c)
	if !ok {
		return
	}
	var input struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	snap, err := cl.Workflow.SelectDate(input.Date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// SelectSlotHandler toggles the slot selection.
func SelectSlotHandler(c *gin.Context) {
	cl, ok := currentClient(c)
	if !ok {
		return
	}
	var input struct {
		Date      string `json:"date" binding:"required"`
		StartTime string `json:"startTime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	start, err := models.ParseTimeOfDay(input.StartTime)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid start time", err.Error())
		return
	}
	snap, err := cl.Workflow.SelectSlot(input.Date, start)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// ChangeSlotHandler drops the selected slot.
func ChangeSlotHandler(c *gin.Context) {
	cl, ok := currentClient(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cl.Workflow.ChangeSlot())
}

// ConfirmBookingHandler submits the selection once.
func ConfirmBookingHandler(c *gin.Context) {
	cl, ok := currentClient(c)
	if !ok {
		return
	}
	appt, err := cl.Workflow.ConfirmBooking(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"appointment": appt, "booking": cl.Workflow.Snapshot()})
}
