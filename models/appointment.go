package models

import "fmt"

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "BOOKED"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCancelled AppointmentStatus = "CANCELLED"
)

// Terminal reports whether no further transition is allowed.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether from -> to is a legal status move.
// Only BOOKED -> COMPLETED and BOOKED -> CANCELLED are allowed.
func CanTransition(from, to AppointmentStatus) bool {
	return from == StatusBooked && (to == StatusCompleted || to == StatusCancelled)
}

type Appointment struct {
	ID              ID                `json:"appointmentId"`
	PatientID       ID                `json:"patientId,omitempty"`
	PatientName     string            `json:"patientName,omitempty"`
	DoctorID        ID                `json:"doctorId,omitempty"`
	DoctorName      string            `json:"doctorName,omitempty"`
	Speciality      string            `json:"speciality,omitempty"`
	Doctor          *Doctor           `json:"doctor,omitempty"`
	AppointmentDate string            `json:"appointmentDate"`
	StartTime       TimeOfDay         `json:"startTime"`
	EndTime         TimeOfDay         `json:"endTime"`
	Status          AppointmentStatus `json:"status"`
}

// Normalize fills the flat doctor fields from the nested doctor object when
// the backend only sent one of the two shapes.
func (a *Appointment) Normalize() {
	if a.Doctor == nil {
		return
	}
	if a.DoctorName == "" {
		a.DoctorName = a.Doctor.Name
	}
	if a.Speciality == "" {
		a.Speciality = a.Doctor.Speciality
	}
	if a.DoctorID.IsZero() {
		a.DoctorID = a.Doctor.ID
	}
}

// Transition moves the appointment to the target status or reports why it cannot.
func (a *Appointment) Transition(to AppointmentStatus) error {
	if !CanTransition(a.Status, to) {
		return fmt.Errorf("appointment %s: cannot move from %s to %s", a.ID, a.Status, to)
	}
	a.Status = to
	return nil
}

// BookingRequest is the body of POST /patient/bookAppointment.
type BookingRequest struct {
	PatientID       ID        `json:"patientId"`
	DoctorID        ID        `json:"doctorId"`
	AppointmentDate string    `json:"appointmentDate"`
	StartTime       TimeOfDay `json:"startTime"`
	EndTime         TimeOfDay `json:"endTime"`
}
