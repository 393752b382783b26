package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"doclink/models"
	"doclink/services/api"

	"go.uber.org/zap"
)

// View selects whose appointments a Ledger lists.
type View string

const (
	ViewPatient View = "patient"
	ViewDoctor  View = "doctor"
	ViewAdmin   View = "admin"
)

// StatusAll disables the status filter.
const StatusAll = "ALL"

// LedgerAPI is the backend surface for appointment lists and status changes.
type LedgerAPI interface {
	WhoAmI
	PatientAppointments(ctx context.Context, patientID models.ID) ([]models.Appointment, error)
	DoctorAppointments(ctx context.Context, doctorID models.ID) ([]models.Appointment, error)
	AllAppointments(ctx context.Context) ([]models.Appointment, error)
	CancelAppointment(ctx context.Context, appointmentID models.ID) error
	CompleteAppointment(ctx context.Context, appointmentID models.ID) error
	AllPatients(ctx context.Context) ([]models.Patient, error)
	AddHoliday(ctx context.Context, doctorID models.ID, h models.Holiday) error
}

// Listing is a loaded appointment list. Error carries the inline message of a
// failed read; the list is then empty.
type Listing struct {
	Appointments []models.Appointment `json:"appointments"`
	Upcoming     int                  `json:"upcoming"`
	Error        string               `json:"error,omitempty"`
}

// Ledger keeps the last fetched appointment list of one client and applies
// cancel and complete actions to it after the backend confirms them.
type Ledger struct {
	api      LedgerAPI
	sessions Sessions
	logger   *zap.Logger

	mu    sync.Mutex
	items []models.Appointment
	epoch uint64
}

func NewLedger(ledgerAPI LedgerAPI, sessions Sessions, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{api: ledgerAPI, sessions: sessions, logger: logger}
}

// Load fetches the list for view. Read failures degrade to an empty listing
// with an inline error; only an expired session is returned as an error.
func (l *Ledger) Load(ctx context.Context, view View) (Listing, error) {
	l.mu.Lock()
	epoch := l.epoch
	l.mu.Unlock()

	list, err := l.fetch(ctx, view)
	if err != nil {
		if errors.Is(err, api.ErrAuthExpired) {
			return Listing{}, err
		}
		l.logger.Warn("Failed to load appointments", zap.String("view", string(view)), zap.Error(err))
		return Listing{Appointments: []models.Appointment{}, Error: api.UserMessage(err)}, nil
	}

	switch view {
	case ViewDoctor:
		SortForDoctor(list)
	case ViewAdmin:
		SortForAdmin(list)
	}

	l.mu.Lock()
	if epoch == l.epoch {
		l.items = append([]models.Appointment(nil), list...)
	}
	l.mu.Unlock()
	return Listing{Appointments: list, Upcoming: UpcomingCount(list)}, nil
}

func (l *Ledger) fetch(ctx context.Context, view View) ([]models.Appointment, error) {
	switch view {
	case ViewPatient:
		id, err := patientID(ctx, l.sessions, l.api)
		if err != nil {
			return nil, err
		}
		return l.api.PatientAppointments(ctx, id)
	case ViewDoctor:
		id, err := doctorID(ctx, l.sessions, l.api)
		if err != nil {
			return nil, err
		}
		return l.api.DoctorAppointments(ctx, id)
	case ViewAdmin:
		return l.api.AllAppointments(ctx)
	}
	return nil, fmt.Errorf("unknown appointment view %q", view)
}

// Items returns a copy of the last loaded list.
func (l *Ledger) Items() []models.Appointment {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.Appointment(nil), l.items...)
}

// Cancel cancels a BOOKED appointment. It requires confirmed and never calls
// the backend for an appointment that is not BOOKED.
func (l *Ledger) Cancel(ctx context.Context, id models.ID, confirmed bool) (models.Appointment, error) {
	return l.transition(ctx, id, confirmed, models.StatusCancelled, l.api.CancelAppointment)
}

// Complete marks a BOOKED appointment as completed, under the same rules as Cancel.
func (l *Ledger) Complete(ctx context.Context, id models.ID, confirmed bool) (models.Appointment, error) {
	return l.transition(ctx, id, confirmed, models.StatusCompleted, l.api.CompleteAppointment)
}

func (l *Ledger) transition(ctx context.Context, id models.ID, confirmed bool, to models.AppointmentStatus, call func(context.Context, models.ID) error) (models.Appointment, error) {
	if !confirmed {
		return models.Appointment{}, ErrNotConfirmed
	}

	l.mu.Lock()
	idx := l.indexOf(id)
	if idx < 0 {
		l.mu.Unlock()
		return models.Appointment{}, ErrUnknownAppointment
	}
	current := l.items[idx]
	l.mu.Unlock()

	if !models.CanTransition(current.Status, to) {
		return current, fmt.Errorf("%w: %s is %s", ErrInvalidTransition, id, current.Status)
	}
	if err := call(ctx, id); err != nil {
		return current, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if idx = l.indexOf(id); idx >= 0 {
		if err := l.items[idx].Transition(to); err == nil {
			current = l.items[idx]
		}
	} else {
		current.Status = to
	}
	l.logger.Info("Appointment status changed", zap.String("appointmentId", id.String()), zap.String("status", string(to)))
	return current, nil
}

func (l *Ledger) indexOf(id models.ID) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Patients lists every patient for the admin screens.
func (l *Ledger) Patients(ctx context.Context) ([]models.Patient, error) {
	return l.api.AllPatients(ctx)
}

// AddHoliday records a day off for the logged-in doctor.
func (l *Ledger) AddHoliday(ctx context.Context, h models.Holiday) error {
	h.Reason = strings.TrimSpace(h.Reason)
	if h.HolidayDate == "" || h.Reason == "" {
		return ErrValidationIncomplete
	}
	id, err := doctorID(ctx, l.sessions, l.api)
	if err != nil {
		return err
	}
	return l.api.AddHoliday(ctx, id, h)
}

// Reset drops the cached list.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
	l.epoch++
}

// SortForDoctor orders by date descending, then start time ascending.
func SortForDoctor(list []models.Appointment) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].AppointmentDate != list[j].AppointmentDate {
			return list[i].AppointmentDate > list[j].AppointmentDate
		}
		return list[i].StartTime < list[j].StartTime
	})
}

// SortForAdmin orders by date descending.
func SortForAdmin(list []models.Appointment) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].AppointmentDate > list[j].AppointmentDate
	})
}

// UpcomingCount counts BOOKED appointments.
func UpcomingCount(list []models.Appointment) int {
	n := 0
	for _, a := range list {
		if a.Status == models.StatusBooked {
			n++
		}
	}
	return n
}

// FilterAppointments matches query against patient name, doctor name
// (case-insensitive) and appointment id, and status against the status unless
// it is StatusAll or empty.
func FilterAppointments(list []models.Appointment, query, status string) []models.Appointment {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Appointment, 0, len(list))
	for _, a := range list {
		if status != "" && status != StatusAll && string(a.Status) != status {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(a.PatientName), q) &&
			!strings.Contains(strings.ToLower(a.DoctorName), q) &&
			!strings.Contains(a.ID.String(), q) {
			continue
		}
		out = append(out, a)
	}
	return out
}
