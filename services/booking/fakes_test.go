package booking

import (
	"context"
	"sync"
	"time"

	"doclink/models"
)

var testNow = time.Date(2026, 10, 14, 10, 30, 0, 0, time.Local)

const (
	today    = "2026-10-14"
	tomorrow = "2026-10-15"
)

type fakeSessions struct {
	mu   sync.Mutex
	sess models.Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sess: models.Session{Token: "tok", Role: "ROLE_PATIENT", UserID: "1"}}
}

func (f *fakeSessions) Current(context.Context) (models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sess, nil
}

func (f *fakeSessions) CachePatientID(_ context.Context, id models.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sess.PatientID = id
	return nil
}

func (f *fakeSessions) CacheDoctorID(_ context.Context, id models.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sess.DoctorID = id
	return nil
}

type fakeAPI struct {
	mu           sync.Mutex
	slots        map[models.ID][]models.Slot
	slotsErr     error
	slotGates    map[models.ID]chan struct{}
	slotsStarted chan models.ID
	bookGate     chan struct{}
	bookStarted  chan struct{}
	bookErr      error
	bookCalls    int
	whoamiCalls  int
	patient      models.Patient
	doctor       models.Doctor
	appointments []models.Appointment
	listErr      error
	statusCalls  []string
	statusErr    error
	holidays     []models.Holiday
	patientsErr  error
	doctorsErr   error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		slots:     map[models.ID][]models.Slot{},
		slotGates: map[models.ID]chan struct{}{},
		patient:   models.Patient{ID: "42", Name: "Pat"},
		doctor:    models.Doctor{ID: "7", Name: "Dr. Who"},
	}
}

func (f *fakeAPI) PatientByUser(context.Context) (models.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.whoamiCalls++
	return f.patient, nil
}

func (f *fakeAPI) DoctorByUser(context.Context) (models.Doctor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.whoamiCalls++
	return f.doctor, nil
}

func (f *fakeAPI) AvailableSlots(_ context.Context, id models.ID) ([]models.Slot, error) {
	f.mu.Lock()
	gate := f.slotGates[id]
	started := f.slotsStarted
	f.mu.Unlock()
	if started != nil {
		started <- id
	}
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.slotsErr != nil {
		return nil, f.slotsErr
	}
	return append([]models.Slot(nil), f.slots[id]...), nil
}

func (f *fakeAPI) BookAppointment(_ context.Context, req models.BookingRequest) (models.Appointment, error) {
	f.mu.Lock()
	f.bookCalls++
	gate, started := f.bookGate, f.bookStarted
	f.mu.Unlock()
	if started != nil {
		close(started)
	}
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.bookErr != nil {
		return models.Appointment{}, f.bookErr
	}
	remaining := f.slots[req.DoctorID][:0]
	for _, s := range f.slots[req.DoctorID] {
		if s.Date == req.AppointmentDate && s.StartTime == req.StartTime {
			continue
		}
		remaining = append(remaining, s)
	}
	f.slots[req.DoctorID] = remaining
	return models.Appointment{
		ID: "100", PatientID: req.PatientID, DoctorID: req.DoctorID,
		AppointmentDate: req.AppointmentDate, StartTime: req.StartTime, EndTime: req.EndTime,
		Status: models.StatusBooked,
	}, nil
}

func (f *fakeAPI) PatientAppointments(context.Context, models.ID) ([]models.Appointment, error) {
	return f.list()
}

func (f *fakeAPI) DoctorAppointments(context.Context, models.ID) ([]models.Appointment, error) {
	return f.list()
}

func (f *fakeAPI) AllAppointments(context.Context) ([]models.Appointment, error) {
	return f.list()
}

func (f *fakeAPI) list() ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Appointment(nil), f.appointments...), nil
}

func (f *fakeAPI) CancelAppointment(_ context.Context, id models.ID) error {
	return f.status("cancel:" + id.String())
}

func (f *fakeAPI) CompleteAppointment(_ context.Context, id models.ID) error {
	return f.status("complete:" + id.String())
}

func (f *fakeAPI) status(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls = append(f.statusCalls, call)
	return f.statusErr
}

func (f *fakeAPI) AllPatients(context.Context) ([]models.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.patientsErr != nil {
		return nil, f.patientsErr
	}
	return []models.Patient{f.patient}, nil
}

func (f *fakeAPI) AddHoliday(_ context.Context, _ models.ID, h models.Holiday) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.holidays = append(f.holidays, h)
	return nil
}

func (f *fakeAPI) FindAllDoctors(context.Context) ([]models.Doctor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.doctorsErr != nil {
		return nil, f.doctorsErr
	}
	return []models.Doctor{drA, drB}, nil
}

var (
	drA = models.Doctor{ID: "1", Name: "A", Speciality: "Cardiology", Location: "Pune",
		StartTime: models.MustTimeOfDay("09:00"), EndTime: models.MustTimeOfDay("17:00")}
	drB = models.Doctor{ID: "2", Name: "B", Speciality: "Dermatology", Location: "Mumbai",
		StartTime: models.MustTimeOfDay("10:00"), EndTime: models.MustTimeOfDay("14:00")}
)

func slot(date, start, end string) models.Slot {
	return models.Slot{Date: date, StartTime: models.MustTimeOfDay(start), EndTime: models.MustTimeOfDay(end)}
}
