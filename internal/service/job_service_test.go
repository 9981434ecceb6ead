package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campervan/internal/entities"
	"campervan/internal/logging"
	"campervan/internal/repository"
)

func TestJobService_CompleteFinishedBookings(t *testing.T) {
	repo := repository.NewBookingRepository(repository.DefaultBookings())
	job := NewJobService(repo, logging.Discard())

	now := time.Date(2025, 8, 22, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, job.CompleteFinishedBookings(now))
	assert.Equal(t, 0, job.CompleteFinishedBookings(now))

	b, err := repo.GetByID("BK002")
	require.NoError(t, err)
	assert.Equal(t, entities.StatusCompleted, b.Status)

	b, err = repo.GetByID("BK001")
	require.NoError(t, err)
	assert.Equal(t, entities.StatusConfirmed, b.Status)
}
