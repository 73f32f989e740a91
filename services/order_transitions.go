package services

import "github.com/campusgrub/cafeteria-app/models"

// Fulfillment lifecycle: each forward step advances exactly one stage,
// cancellation is reachable from any non-terminal state, and completed /
// cancelled are terminal.
var orderStatusFlow = map[string][]string{
	models.OrderStatusPending:   {models.OrderStatusPreparing, models.OrderStatusCancelled},
	models.OrderStatusPreparing: {models.OrderStatusReady, models.OrderStatusCancelled},
	models.OrderStatusReady:     {models.OrderStatusCompleted, models.OrderStatusCancelled},
	models.OrderStatusCompleted: {},
	models.OrderStatusCancelled: {},
}

// CanTransition reports whether from -> to is a legal fulfillment edge.
func CanTransition(from, to string) bool {
	for _, next := range orderStatusFlow[from] {
		if next == to {
			return true
		}
	}
	return false
}

// KnownStatus reports whether s is a fulfillment state at all.
func KnownStatus(s string) bool {
	_, ok := orderStatusFlow[s]
	return ok
}
