package handlers

import (
	"net/http"

	"doclink/services/api"
	"doclink/services/booking"

	"github.com/gin-gonic/gin"
)

// ListDoctorsHandler returns the doctor list filtered by ?speciality= and ?location=.
// A failed fetch degrades to an empty list with an inline error.
func ListDoctorsHandler(c *gin.Context) {
	cl, ok := currentClient(c)
	if !ok {
		return
	}
	doctors, err := cl.Directory.List(c.Request.Context(), c.Query("refresh") == "true")
	if err != nil {
		if statusFor(err) == http.StatusUnauthorized {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"doctors": []interface{}{}, "specialities": []string{}, "error": api.UserMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"doctors":      booking.FilterDoctors(doctors, c.Query("speciality"), c.Query("location")),
		"specialities": booking.Specialities(doctors),
	})
}
