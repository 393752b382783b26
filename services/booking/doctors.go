package booking

import (
	"context"
	"strings"
	"sync"

	"doclink/models"

	"go.uber.org/zap"
)

type DoctorLister interface {
	FindAllDoctors(ctx context.Context) ([]models.Doctor, error)
}

// Directory caches the doctor list of one client.
type Directory struct {
	api    DoctorLister
	logger *zap.Logger

	mu      sync.Mutex
	doctors []models.Doctor
	loaded  bool
}

func NewDirectory(api DoctorLister, logger *zap.Logger) *Directory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Directory{api: api, logger: logger}
}

// List returns the doctor list, fetching it when not cached or when refresh is set.
// Doctors with an inverted working-hours window are skipped; doctors without
// published hours are kept.
func (d *Directory) List(ctx context.Context, refresh bool) ([]models.Doctor, error) {
	d.mu.Lock()
	if d.loaded && !refresh {
		out := append([]models.Doctor(nil), d.doctors...)
		d.mu.Unlock()
		return out, nil
	}
	d.mu.Unlock()

	fetched, err := d.api.FindAllDoctors(ctx)
	if err != nil {
		return nil, err
	}
	valid := make([]models.Doctor, 0, len(fetched))
	for _, doc := range fetched {
		if doc.EndTime == 0 {
			valid = append(valid, doc)
			continue
		}
		if err := doc.Validate(); err != nil {
			d.logger.Warn("Skipping doctor with invalid working hours", zap.Error(err))
			continue
		}
		valid = append(valid, doc)
	}

	d.mu.Lock()
	d.doctors = valid
	d.loaded = true
	d.mu.Unlock()
	return append([]models.Doctor(nil), valid...), nil
}

// Find returns the doctor with id, loading the list if needed.
func (d *Directory) Find(ctx context.Context, id models.ID) (models.Doctor, error) {
	list, err := d.List(ctx, false)
	if err != nil {
		return models.Doctor{}, err
	}
	for _, doc := range list {
		if doc.ID == id {
			return doc, nil
		}
	}
	list, err = d.List(ctx, true)
	if err != nil {
		return models.Doctor{}, err
	}
	for _, doc := range list {
		if doc.ID == id {
			return doc, nil
		}
	}
	return models.Doctor{}, ErrUnknownDoctor
}

// Reset drops the cached list.
func (d *Directory) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.doctors = nil
	d.loaded = false
}

// FilterDoctors keeps doctors with the given speciality (exact) whose location
// contains location (case-insensitive). Empty filters match everything.
func FilterDoctors(doctors []models.Doctor, speciality, location string) []models.Doctor {
	loc := strings.ToLower(strings.TrimSpace(location))
	out := make([]models.Doctor, 0, len(doctors))
	for _, d := range doctors {
		if speciality != "" && d.Speciality != speciality {
			continue
		}
		if loc != "" && !strings.Contains(strings.ToLower(d.Location), loc) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Specialities lists distinct non-empty specialities in first-seen order.
func Specialities(doctors []models.Doctor) []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range doctors {
		if d.Speciality == "" || seen[d.Speciality] {
			continue
		}
		seen[d.Speciality] = true
		out = append(out, d.Speciality)
	}
	return out
}
