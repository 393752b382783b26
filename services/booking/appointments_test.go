package booking

import (
	"context"
	"testing"

	"doclink/models"
	"doclink/services/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appt(id, date, start string, status models.AppointmentStatus) models.Appointment {
	return models.Appointment{
		ID: models.ID(id), AppointmentDate: date, StartTime: models.MustTimeOfDay(start),
		Status: status, PatientName: "Pat " + id, DoctorName: "Dr " + id,
	}
}

func loadedLedger(t *testing.T, view View, list ...models.Appointment) (*Ledger, *fakeAPI, *fakeSessions) {
	t.Helper()
	fake := newFakeAPI()
	fake.appointments = list
	sessions := newFakeSessions()
	l := NewLedger(fake, sessions, nil)
	_, err := l.Load(context.Background(), view)
	require.NoError(t, err)
	return l, fake, sessions
}

func TestCancelRequiresConfirmation(t *testing.T) {
	l, fake, _ := loadedLedger(t, ViewPatient, appt("1", today, "09:00", models.StatusBooked))

	_, err := l.Cancel(context.Background(), "1", false)
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.Empty(t, fake.statusCalls)
}

func TestTerminalAppointmentsRejectedWithoutCall(t *testing.T) {
	l, fake, _ := loadedLedger(t, ViewDoctor,
		appt("1", today, "09:00", models.StatusCancelled),
		appt("2", today, "10:00", models.StatusCompleted),
	)
	ctx := context.Background()

	for _, id := range []models.ID{"1", "2"} {
		_, err := l.Cancel(ctx, id, true)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		_, err = l.Complete(ctx, id, true)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	}
	assert.Empty(t, fake.statusCalls)
}

func TestCancelMovesStatusAfterServerConfirms(t *testing.T) {
	l, fake, _ := loadedLedger(t, ViewPatient, appt("1", today, "09:00", models.StatusBooked))

	got, err := l.Cancel(context.Background(), "1", true)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, got.Status)
	assert.Equal(t, []string{"cancel:1"}, fake.statusCalls)
	assert.Equal(t, models.StatusCancelled, l.Items()[0].Status)
}

func TestFailedWriteLeavesStatus(t *testing.T) {
	l, fake, _ := loadedLedger(t, ViewDoctor, appt("1", today, "09:00", models.StatusBooked))
	fake.statusErr = &api.APIError{Kind: api.ErrForbidden, Status: 403}

	_, err := l.Complete(context.Background(), "1", true)
	assert.ErrorIs(t, err, api.ErrForbidden)
	assert.Equal(t, models.StatusBooked, l.Items()[0].Status)
}

func TestUnknownAppointment(t *testing.T) {
	l, fake, _ := loadedLedger(t, ViewPatient)
	_, err := l.Cancel(context.Background(), "9", true)
	assert.ErrorIs(t, err, ErrUnknownAppointment)
	assert.Empty(t, fake.statusCalls)
}

func TestLoadSortsDoctorView(t *testing.T) {
	l, fake, sessions := loadedLedger(t, ViewDoctor,
		appt("1", today, "11:00", models.StatusBooked),
		appt("2", tomorrow, "09:00", models.StatusCompleted),
		appt("3", today, "09:00", models.StatusBooked),
	)

	items := l.Items()
	ids := []models.ID{items[0].ID, items[1].ID, items[2].ID}
	assert.Equal(t, []models.ID{"2", "3", "1"}, ids)

	cur, _ := sessions.Current(context.Background())
	assert.Equal(t, models.ID("7"), cur.DoctorID)
	assert.Equal(t, 1, fake.whoamiCalls)
}

func TestLoadReportsUpcoming(t *testing.T) {
	fake := newFakeAPI()
	fake.appointments = []models.Appointment{
		appt("1", today, "11:00", models.StatusBooked),
		appt("2", tomorrow, "09:00", models.StatusBooked),
		appt("3", today, "09:00", models.StatusCancelled),
	}
	l := NewLedger(fake, newFakeSessions(), nil)

	listing, err := l.Load(context.Background(), ViewAdmin)
	require.NoError(t, err)
	assert.Equal(t, 2, listing.Upcoming)
	assert.Equal(t, models.ID("2"), listing.Appointments[0].ID)
}

func TestLoadDegradesOnReadFailure(t *testing.T) {
	fake := newFakeAPI()
	fake.listErr = &api.APIError{Kind: api.ErrNetworkUnavailable}
	l := NewLedger(fake, newFakeSessions(), nil)

	listing, err := l.Load(context.Background(), ViewAdmin)
	require.NoError(t, err)
	assert.Empty(t, listing.Appointments)
	assert.Contains(t, listing.Error, "Network error")

	fake.listErr = &api.APIError{Kind: api.ErrAuthExpired, Status: 401}
	_, err = l.Load(context.Background(), ViewAdmin)
	assert.ErrorIs(t, err, api.ErrAuthExpired)
}

func TestFilterAppointments(t *testing.T) {
	list := []models.Appointment{
		appt("11", today, "09:00", models.StatusBooked),
		appt("12", today, "10:00", models.StatusCancelled),
		appt("3", today, "11:00", models.StatusBooked),
	}

	assert.Len(t, FilterAppointments(list, "", StatusAll), 3)
	assert.Len(t, FilterAppointments(list, "", "BOOKED"), 2)
	assert.Len(t, FilterAppointments(list, "pat 1", ""), 2)
	assert.Len(t, FilterAppointments(list, "12", StatusAll), 1)
	assert.Len(t, FilterAppointments(list, "DR 3", "BOOKED"), 1)
	assert.Empty(t, FilterAppointments(list, "DR 3", "CANCELLED"))
}

func TestFilterDoctorsAndSpecialities(t *testing.T) {
	doctors := []models.Doctor{drA, drB, {ID: "3", Speciality: "Cardiology", Location: "Mumbai"}}

	assert.Len(t, FilterDoctors(doctors, "Cardiology", ""), 2)
	assert.Len(t, FilterDoctors(doctors, "", "mum"), 2)
	assert.Len(t, FilterDoctors(doctors, "Cardiology", "MUMBAI"), 1)
	assert.Equal(t, []string{"Cardiology", "Dermatology"}, Specialities(doctors))
}

func TestDirectoryFind(t *testing.T) {
	d := NewDirectory(newFakeAPI(), nil)
	doc, err := d.Find(context.Background(), drB.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", doc.Name)

	_, err = d.Find(context.Background(), "99")
	assert.ErrorIs(t, err, ErrUnknownDoctor)
}

func TestAddHolidayValidation(t *testing.T) {
	fake := newFakeAPI()
	l := NewLedger(fake, newFakeSessions(), nil)
	ctx := context.Background()

	assert.ErrorIs(t, l.AddHoliday(ctx, models.Holiday{Reason: "trip"}), ErrValidationIncomplete)
	assert.ErrorIs(t, l.AddHoliday(ctx, models.Holiday{HolidayDate: tomorrow, Reason: "   "}), ErrValidationIncomplete)
	assert.Empty(t, fake.holidays)

	require.NoError(t, l.AddHoliday(ctx, models.Holiday{HolidayDate: tomorrow, Reason: " trip "}))
	require.Len(t, fake.holidays, 1)
	assert.Equal(t, "trip", fake.holidays[0].Reason)
}
