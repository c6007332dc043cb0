package status

import "restaurant-hub/internal/models"

// OrderSequence is the only path an order takes.
var OrderSequence = []models.OrderStatus{
	models.OrderPending,
	models.OrderPreparing,
	models.OrderReady,
	models.OrderServed,
	models.OrderPaid,
}

var orderTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderPending:   {models.OrderPreparing},
	models.OrderPreparing: {models.OrderReady},
	models.OrderReady:     {models.OrderServed},
	models.OrderServed:    {models.OrderPaid},
	models.OrderPaid:      nil,
}

func IsOrderStatus(s models.OrderStatus) bool {
	_, ok := orderTransitions[s]
	return ok
}

// NextOrderStatus returns the single action offered for s. ok is false for
// paid and for unknown statuses.
func NextOrderStatus(s models.OrderStatus) (models.OrderStatus, bool) {
	next := orderTransitions[s]
	if len(next) == 0 {
		return "", false
	}
	return next[0], true
}

func ValidateOrderTransition(from, to models.OrderStatus) error {
	if !IsOrderStatus(from) || !IsOrderStatus(to) {
		return &TransitionError{Entity: "order", From: string(from), To: string(to), Err: ErrUnknownStatus}
	}
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return &TransitionError{Entity: "order", From: string(from), To: string(to), Err: ErrIllegalTransition}
}
