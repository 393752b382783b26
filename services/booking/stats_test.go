package booking

import (
	"context"
	"testing"

	"doclink/services/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStats(t *testing.T) {
	ctx := context.Background()
	fake := newFakeAPI()
	dir := NewDirectory(fake, nil)
	l := NewLedger(fake, newFakeSessions(), nil)

	stats, err := LoadStats(ctx, dir, l)
	require.NoError(t, err)
	assert.Equal(t, Stats{Doctors: 2, Patients: 1}, stats)
}

func TestLoadStatsDegrades(t *testing.T) {
	ctx := context.Background()
	fake := newFakeAPI()
	fake.patientsErr = &api.APIError{Kind: api.ErrServerError, Status: 500}
	dir := NewDirectory(fake, nil)
	l := NewLedger(fake, newFakeSessions(), nil)

	stats, err := LoadStats(ctx, dir, l)
	require.NoError(t, err)
	assert.Equal(t, Stats{Error: statsFailedMessage}, stats)

	fake.mu.Lock()
	fake.patientsErr = nil
	fake.doctorsErr = &api.APIError{Kind: api.ErrAuthExpired, Status: 401}
	fake.mu.Unlock()
	_, err = LoadStats(ctx, dir, l)
	assert.ErrorIs(t, err, api.ErrAuthExpired)
}
