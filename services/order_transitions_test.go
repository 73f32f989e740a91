package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusgrub/cafeteria-app/models"
	"github.com/campusgrub/cafeteria-app/services"
)

func TestTransitionTable(t *testing.T) {
	statuses := []string{
		models.OrderStatusPending,
		models.OrderStatusPreparing,
		models.OrderStatusReady,
		models.OrderStatusCompleted,
		models.OrderStatusCancelled,
	}

	legal := map[[2]string]bool{
		{models.OrderStatusPending, models.OrderStatusPreparing}:   true,
		{models.OrderStatusPending, models.OrderStatusCancelled}:   true,
		{models.OrderStatusPreparing, models.OrderStatusReady}:     true,
		{models.OrderStatusPreparing, models.OrderStatusCancelled}: true,
		{models.OrderStatusReady, models.OrderStatusCompleted}:     true,
		{models.OrderStatusReady, models.OrderStatusCancelled}:     true,
	}

	// every (from, to) pair behaves exactly as the table says
	for _, from := range statuses {
		for _, to := range statuses {
			got := services.CanTransition(from, to)
			assert.Equalf(t, legal[[2]string{from, to}], got, "%s -> %s", from, to)
		}
	}
}

func TestKnownStatus(t *testing.T) {
	assert.True(t, services.KnownStatus(models.OrderStatusPending))
	assert.True(t, services.KnownStatus(models.OrderStatusCancelled))
	assert.False(t, services.KnownStatus("shipped"))
	assert.False(t, services.KnownStatus(""))
}
