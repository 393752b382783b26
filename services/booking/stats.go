package booking

import (
	"context"
	"errors"

	"doclink/services/api"

	"go.uber.org/zap"
)

const statsFailedMessage = "Failed to load statistics. Please try again."

// Stats are the admin dashboard totals.
type Stats struct {
	Doctors  int    `json:"doctors"`
	Patients int    `json:"patients"`
	Error    string `json:"error,omitempty"`
}

// LoadStats counts doctors and patients with fresh reads. A failed read
// degrades to zero totals with an inline error; only an expired session is
// returned as an error.
func LoadStats(ctx context.Context, dir *Directory, ledger *Ledger) (Stats, error) {
	doctors, err := dir.List(ctx, true)
	if err != nil {
		return statsFailure(ledger, err)
	}
	patients, err := ledger.Patients(ctx)
	if err != nil {
		return statsFailure(ledger, err)
	}
	return Stats{Doctors: len(doctors), Patients: len(patients)}, nil
}

func statsFailure(ledger *Ledger, err error) (Stats, error) {
	if errors.Is(err, api.ErrAuthExpired) {
		return Stats{}, err
	}
	ledger.logger.Warn("Failed to load statistics", zap.Error(err))
	return Stats{Error: statsFailedMessage}, nil
}
