package models

import "fmt"

// Doctor is the read-mostly profile served by /doctor/findAllDoctors.
type Doctor struct {
	ID            ID        `json:"doctorId"`
	Name          string    `json:"doctorName"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Speciality    string    `json:"speciality"`
	Location      string    `json:"location"`
	Fees          float64   `json:"fees"`
	Experience    int       `json:"experience"`
	Qualification string    `json:"qualification"`
	StartTime     TimeOfDay `json:"startTime"`
	EndTime       TimeOfDay `json:"endTime"`
}

// Validate checks the working-hours window.
func (d Doctor) Validate() error {
	if d.StartTime >= d.EndTime {
		return fmt.Errorf("doctor %s: start time %s is not before end time %s", d.ID, d.StartTime, d.EndTime)
	}
	return nil
}

// Holiday is a day a doctor is unavailable.
type Holiday struct {
	HolidayDate string `json:"holidayDate"`
	Reason      string `json:"reason"`
}
