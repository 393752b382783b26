package booking

import "errors"

var (
	ErrValidationIncomplete = errors.New("doctor, date and slot must all be selected")
	ErrBookingInProgress    = errors.New("a booking is already in flight")
	ErrNotConfirmed         = errors.New("action requires explicit confirmation")
	ErrInvalidTransition    = errors.New("appointment status does not allow this action")
	ErrUnknownSlot          = errors.New("no such date or slot in the current offer")
	ErrNoDoctorSelected     = errors.New("no doctor selected")
	ErrUnknownDoctor        = errors.New("doctor not found")
	ErrUnknownAppointment   = errors.New("appointment not found")
)
