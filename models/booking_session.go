package models

// BookingPhase is the state of the booking workflow.
type BookingPhase string

const (
	PhaseIdle             BookingPhase = "Idle"
	PhaseLoadingSlots     BookingPhase = "LoadingSlots"
	PhaseReady            BookingPhase = "Ready"
	PhaseBooking          BookingPhase = "Booking"
	PhaseBookingFailed    BookingPhase = "BookingFailed"
	PhaseBookingSucceeded BookingPhase = "BookingSucceeded"
)

// BookingSnapshot is a copy of the workflow state handed to screens.
type BookingSnapshot struct {
	Phase          BookingPhase `json:"phase"`
	SelectedDoctor *Doctor      `json:"selectedDoctor,omitempty"`
	SelectedDate   string       `json:"selectedDate,omitempty"`
	SelectedSlot   *Slot        `json:"selectedSlot,omitempty"`
	SlotsDoctorID  ID           `json:"slotsDoctorId,omitempty"`
	SlotsByDate    []SlotGroup  `json:"slotsByDate"`
	SlotsError     string       `json:"slotsError,omitempty"`
	FailureReason  string       `json:"failureReason,omitempty"`
	LastBooked     *Appointment `json:"lastBooked,omitempty"`
}
