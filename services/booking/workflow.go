// File: services/booking/workflow.go
package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"doclink/models"
	"doclink/services/api"

	"go.uber.org/zap"
)

// BookingAPI is the backend surface the workflow calls.
type BookingAPI interface {
	WhoAmI
	AvailableSlots(ctx context.Context, doctorID models.ID) ([]models.Slot, error)
	BookAppointment(ctx context.Context, req models.BookingRequest) (models.Appointment, error)
}

// Workflow is the slot selection and booking state machine of one client.
// The lock is never held across a backend or session store call.
type Workflow struct {
	api      BookingAPI
	sessions Sessions
	logger   *zap.Logger
	now      func() time.Time

	mu            sync.Mutex
	phase         models.BookingPhase
	doctor        *models.Doctor
	date          string
	slot          *models.Slot
	slotsDoctorID models.ID
	groups        []models.SlotGroup
	slotsErr      string
	failure       string
	lastBooked    *models.Appointment
	seq           uint64 // bumped by every slot request and every reset
	epoch         uint64 // bumped by every reset
	selection     uint64 // bumped by every change to doctor, date or slot
	inFlight      bool
}

func NewWorkflow(bookingAPI BookingAPI, sessions Sessions, logger *zap.Logger) *Workflow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{
		api:      bookingAPI,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
		phase:    models.PhaseIdle,
	}
}

// SetClock replaces the clock used for the same-day cutoff.
func (w *Workflow) SetClock(now func() time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.now = now
}

// SelectDoctor toggles the doctor selection. Selecting the selected doctor again
// clears everything; selecting a new one clears date and slot and loads its slots.
func (w *Workflow) SelectDoctor(ctx context.Context, doctor models.Doctor) (models.BookingSnapshot, error) {
	w.mu.Lock()
	if w.doctor != nil && w.doctor.ID == doctor.ID {
		w.clearSelection()
		w.groups = nil
		w.slotsDoctorID = ""
		w.slotsErr = ""
		w.failure = ""
		w.seq++
		w.phase = models.PhaseIdle
		snap := w.snapshot()
		w.mu.Unlock()
		return snap, nil
	}

	d := doctor
	w.doctor = &d
	w.date = ""
	w.slot = nil
	w.selection++
	w.groups = nil
	w.slotsDoctorID = doctor.ID
	w.slotsErr = ""
	w.failure = ""
	w.phase = models.PhaseLoadingSlots
	w.seq++
	seq := w.seq
	w.mu.Unlock()

	w.logger.Debug("Loading slots", zap.String("doctorId", doctor.ID.String()))
	raw, err := w.api.AvailableSlots(ctx, doctor.ID)
	return w.onSlotsLoaded(doctor.ID, seq, raw, err), nil
}

// RetrySlots reissues the slot request for the selected doctor.
func (w *Workflow) RetrySlots(ctx context.Context) (models.BookingSnapshot, error) {
	w.mu.Lock()
	if w.doctor == nil {
		w.mu.Unlock()
		return w.Snapshot(), ErrNoDoctorSelected
	}
	doctorID := w.doctor.ID
	w.phase = models.PhaseLoadingSlots
	w.slotsErr = ""
	w.seq++
	seq := w.seq
	w.mu.Unlock()

	raw, err := w.api.AvailableSlots(ctx, doctorID)
	return w.onSlotsLoaded(doctorID, seq, raw, err), nil
}

// onSlotsLoaded applies a slot response issued with the given request context.
// Responses from a superseded request are discarded.
func (w *Workflow) onSlotsLoaded(doctorID models.ID, seq uint64, raw []models.Slot, fetchErr error) models.BookingSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	if seq != w.seq || w.slotsDoctorID != doctorID {
		w.logger.Debug("Discarding stale slot response", zap.String("doctorId", doctorID.String()))
		return w.snapshot()
	}

	if fetchErr != nil {
		w.logger.Warn("Failed to load slots", zap.String("doctorId", doctorID.String()), zap.Error(fetchErr))
		w.groups = nil
		w.slotsErr = api.UserMessage(fetchErr)
	} else {
		w.groups = GroupSlots(raw, w.now())
		w.slotsErr = ""
	}
	if w.phase == models.PhaseLoadingSlots {
		w.phase = models.PhaseReady
	}
	return w.snapshot()
}

// SelectDate picks a date from the current offer. The slot is cleared when it
// belongs to another date.
func (w *Workflow) SelectDate(date string) (models.BookingSnapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.doctor == nil {
		return w.snapshot(), ErrNoDoctorSelected
	}
	if !hasDate(w.groups, date) {
		return w.snapshot(), ErrUnknownSlot
	}
	w.date = date
	if w.slot != nil && w.slot.Date != date {
		w.slot = nil
	}
	w.selection++
	w.settle()
	return w.snapshot(), nil
}

// SelectSlot sets date and slot together. Selecting the selected slot again
// clears both.
func (w *Workflow) SelectSlot(date string, start models.TimeOfDay) (models.BookingSnapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.doctor == nil {
		return w.snapshot(), ErrNoDoctorSelected
	}
	if w.slot != nil && w.slot.Date == date && w.slot.StartTime == start {
		w.date = ""
		w.slot = nil
		w.selection++
		w.settle()
		return w.snapshot(), nil
	}
	s, ok := findSlot(w.groups, date, start)
	if !ok {
		return w.snapshot(), ErrUnknownSlot
	}
	w.date = date
	w.slot = &s
	w.selection++
	w.settle()
	return w.snapshot(), nil
}

// ChangeSlot drops the slot but keeps doctor and date.
func (w *Workflow) ChangeSlot() models.BookingSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.slot = nil
	w.selection++
	w.settle()
	return w.snapshot()
}

// settle leaves a failed or finished booking once the selection is edited.
func (w *Workflow) settle() {
	if w.phase == models.PhaseBookingFailed || w.phase == models.PhaseBookingSucceeded {
		w.phase = models.PhaseReady
		w.failure = ""
	}
}

// ConfirmBooking submits the current selection. Only one submission may be in
// flight. On success the selection is cleared and the booked doctor's slots are
// reloaded; on failure the selection is kept. When the selection changed while
// the call was in flight, the result is returned but the newer selection and
// its slots are left alone.
func (w *Workflow) ConfirmBooking(ctx context.Context) (models.Appointment, error) {
	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return models.Appointment{}, ErrBookingInProgress
	}
	if w.doctor == nil || w.date == "" || w.slot == nil {
		w.mu.Unlock()
		return models.Appointment{}, ErrValidationIncomplete
	}
	doctor := *w.doctor
	slot := *w.slot
	epoch := w.epoch
	selection := w.selection
	w.inFlight = true
	w.failure = ""
	w.phase = models.PhaseBooking
	w.mu.Unlock()

	appt, err := w.submit(ctx, doctor, slot)

	w.mu.Lock()
	if epoch != w.epoch {
		// Reset while the call was in flight; the anonymous state wins.
		w.mu.Unlock()
		return appt, err
	}
	w.inFlight = false
	if selection != w.selection {
		if w.phase == models.PhaseBooking {
			w.phase = models.PhaseReady
		}
		if err == nil {
			appt.Normalize()
			w.lastBooked = &appt
		}
		w.mu.Unlock()
		w.logger.Debug("Booking finished for a superseded selection", zap.String("doctorId", doctor.ID.String()), zap.Error(err))
		return appt, err
	}
	if err != nil {
		w.phase = models.PhaseBookingFailed
		w.failure = api.UserMessage(err)
		w.mu.Unlock()
		w.logger.Warn("Booking failed", zap.String("doctorId", doctor.ID.String()), zap.String("slot", slot.Key()), zap.Error(err))
		return models.Appointment{}, err
	}

	appt.Normalize()
	w.lastBooked = &appt
	w.clearSelection()
	w.phase = models.PhaseBookingSucceeded
	w.slotsDoctorID = doctor.ID
	w.seq++
	seq := w.seq
	w.mu.Unlock()

	w.logger.Info("Appointment booked", zap.String("appointmentId", appt.ID.String()), zap.String("doctorId", doctor.ID.String()))
	raw, fetchErr := w.api.AvailableSlots(ctx, doctor.ID)
	w.onSlotsLoaded(doctor.ID, seq, raw, fetchErr)
	return appt, nil
}

func (w *Workflow) submit(ctx context.Context, doctor models.Doctor, slot models.Slot) (models.Appointment, error) {
	pid, err := patientID(ctx, w.sessions, w.api)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			w.logger.Warn("Patient profile not available yet", zap.Error(err))
		}
		return models.Appointment{}, err
	}
	return w.api.BookAppointment(ctx, models.BookingRequest{
		PatientID:       pid,
		DoctorID:        doctor.ID,
		AppointmentDate: slot.Date,
		StartTime:       slot.StartTime,
		EndTime:         slot.EndTime,
	})
}

// Reset returns the workflow to Idle and drops every derived list. In-flight
// responses issued before the reset are ignored.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clearSelection()
	w.groups = nil
	w.slotsDoctorID = ""
	w.slotsErr = ""
	w.failure = ""
	w.lastBooked = nil
	w.inFlight = false
	w.phase = models.PhaseIdle
	w.seq++
	w.epoch++
}

func (w *Workflow) clearSelection() {
	w.doctor = nil
	w.date = ""
	w.slot = nil
	w.selection++
}

// Snapshot copies the current state.
func (w *Workflow) Snapshot() models.BookingSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshot()
}

func (w *Workflow) snapshot() models.BookingSnapshot {
	snap := models.BookingSnapshot{
		Phase:         w.phase,
		SelectedDate:  w.date,
		SlotsDoctorID: w.slotsDoctorID,
		SlotsError:    w.slotsErr,
		FailureReason: w.failure,
		SlotsByDate:   make([]models.SlotGroup, 0, len(w.groups)),
	}
	if w.doctor != nil {
		d := *w.doctor
		snap.SelectedDoctor = &d
	}
	if w.slot != nil {
		s := *w.slot
		snap.SelectedSlot = &s
	}
	if w.lastBooked != nil {
		a := *w.lastBooked
		snap.LastBooked = &a
	}
	for _, g := range w.groups {
		g.Slots = append([]models.DisplaySlot(nil), g.Slots...)
		snap.SlotsByDate = append(snap.SlotsByDate, g)
	}
	return snap
}
