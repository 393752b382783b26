package booking

import (
	"context"
	"fmt"

	"doclink/models"
)

// Sessions is the slice of the session store the booking services need.
type Sessions interface {
	Current(ctx context.Context) (models.Session, error)
	CachePatientID(ctx context.Context, id models.ID) error
	CacheDoctorID(ctx context.Context, id models.ID) error
}

// WhoAmI resolves the profile records of the logged-in user.
type WhoAmI interface {
	PatientByUser(ctx context.Context) (models.Patient, error)
	DoctorByUser(ctx context.Context) (models.Doctor, error)
}

// patientID returns the cached patient id, resolving and caching it on first use.
func patientID(ctx context.Context, sessions Sessions, who WhoAmI) (models.ID, error) {
	sess, err := sessions.Current(ctx)
	if err != nil {
		return "", err
	}
	if !sess.PatientID.IsZero() {
		return sess.PatientID, nil
	}
	p, err := who.PatientByUser(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to resolve patient profile: %w", err)
	}
	if p.ID.IsZero() {
		return "", fmt.Errorf("patient profile has no id")
	}
	if err := sessions.CachePatientID(ctx, p.ID); err != nil {
		return "", err
	}
	return p.ID, nil
}

// doctorID returns the cached doctor id, resolving and caching it on first use.
func doctorID(ctx context.Context, sessions Sessions, who WhoAmI) (models.ID, error) {
	sess, err := sessions.Current(ctx)
	if err != nil {
		return "", err
	}
	if !sess.DoctorID.IsZero() {
		return sess.DoctorID, nil
	}
	d, err := who.DoctorByUser(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to resolve doctor profile: %w", err)
	}
	if d.ID.IsZero() {
		return "", fmt.Errorf("doctor profile has no id")
	}
	if err := sessions.CacheDoctorID(ctx, d.ID); err != nil {
		return "", err
	}
	return d.ID, nil
}
