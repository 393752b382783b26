package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"doclink/models"
)

// Login posts credentials. A 401 here means bad credentials, not an expired session.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	var resp models.LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", authNone, req, &resp)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		apiErr.Kind = ErrInvalidCredentials
	}
	return resp, err
}

func (c *Client) FindAllDoctors(ctx context.Context) ([]models.Doctor, error) {
	var doctors []models.Doctor
	if err := c.do(ctx, http.MethodGet, "/doctor/findAllDoctors", authOptional, nil, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

// PatientByUser resolves the patient record of the logged-in user.
func (c *Client) PatientByUser(ctx context.Context) (models.Patient, error) {
	var p models.Patient
	err := c.do(ctx, http.MethodGet, "/patient/byUser", authRequired, nil, &p)
	return p, err
}

// DoctorByUser resolves the doctor record of the logged-in user.
func (c *Client) DoctorByUser(ctx context.Context) (models.Doctor, error) {
	var d models.Doctor
	err := c.do(ctx, http.MethodGet, "/doctor/by-user", authRequired, nil, &d)
	return d, err
}

func (c *Client) AvailableSlots(ctx context.Context, doctorID models.ID) ([]models.Slot, error) {
	var resp models.AvailableSlotsResponse
	path := fmt.Sprintf("/patient/doctors/%s/available-slots", url.PathEscape(doctorID.String()))
	if err := c.do(ctx, http.MethodGet, path, authOptional, nil, &resp); err != nil {
		return nil, err
	}
	return resp.AvailableSlots, nil
}

func (c *Client) BookAppointment(ctx context.Context, req models.BookingRequest) (models.Appointment, error) {
	var appt models.Appointment
	err := c.do(ctx, http.MethodPost, "/patient/bookAppointment", authRequired, req, &appt)
	return appt, err
}

func (c *Client) CancelAppointment(ctx context.Context, appointmentID models.ID) error {
	path := "/Appointments/cancel/" + url.PathEscape(appointmentID.String())
	return c.do(ctx, http.MethodPut, path, authRequired, struct{}{}, nil)
}

func (c *Client) CompleteAppointment(ctx context.Context, appointmentID models.ID) error {
	path := "/doctor/complete/" + url.PathEscape(appointmentID.String())
	return c.do(ctx, http.MethodPut, path, authRequired, nil, nil)
}

func (c *Client) PatientAppointments(ctx context.Context, patientID models.ID) ([]models.Appointment, error) {
	return c.appointments(ctx, "/Appointments/patient/"+url.PathEscape(patientID.String()))
}

func (c *Client) DoctorAppointments(ctx context.Context, doctorID models.ID) ([]models.Appointment, error) {
	return c.appointments(ctx, "/Appointments/doctor/"+url.PathEscape(doctorID.String()))
}

func (c *Client) AllAppointments(ctx context.Context) ([]models.Appointment, error) {
	return c.appointments(ctx, "/Appointments/allAppointments")
}

func (c *Client) appointments(ctx context.Context, path string) ([]models.Appointment, error) {
	var list []models.Appointment
	if err := c.do(ctx, http.MethodGet, path, authRequired, nil, &list); err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Normalize()
	}
	return list, nil
}

func (c *Client) AllPatients(ctx context.Context) ([]models.Patient, error) {
	var patients []models.Patient
	if err := c.do(ctx, http.MethodGet, "/patient/AllPatients", authOptional, nil, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

func (c *Client) AddHoliday(ctx context.Context, doctorID models.ID, h models.Holiday) error {
	path := "/doctor/holiday/" + url.PathEscape(doctorID.String())
	return c.do(ctx, http.MethodPost, path, authRequired, h, nil)
}
