package service

import (
	"time"

	"github.com/horsh321/teem-server/internal/model"
)

// Events reports the notifications a patch triggered.
type Events struct {
	Paid      bool
	Delivered bool
}

// ApplyPatch applies patch to order in place. Payment and delivery are
// stamped the first time they become true; the timestamps are never cleared
// or restamped, so each event fires at most once per order. With guard set,
// the status may not move backwards.
func ApplyPatch(order *model.Order, patch model.OrderPatch, now time.Time, guard bool) (Events, error) {
	var events Events

	if patch.Empty() {
		return events, model.ErrEmptyPatch
	}

	if patch.OrderStatus != nil {
		next := *patch.OrderStatus
		if !next.Valid() {
			return events, model.ErrInvalidOrderStatus
		}
		if guard && next.Rank() < order.OrderStatus.Rank() {
			return events, model.ErrInvalidTransition
		}
	}

	if patch.OrderStatus != nil {
		order.OrderStatus = *patch.OrderStatus
	}

	if patch.IsPaid != nil {
		if *patch.IsPaid && order.PaidAt == nil {
			paidAt := now
			order.PaidAt = &paidAt
			events.Paid = true
		}
		order.IsPaid = *patch.IsPaid
	}

	if patch.IsDelivered != nil {
		if *patch.IsDelivered && order.DeliveredAt == nil {
			deliveredAt := now
			order.DeliveredAt = &deliveredAt
			events.Delivered = true
		}
		order.IsDelivered = *patch.IsDelivered
	}

	// An empty reference is treated as absent.
	if patch.Reference != nil && *patch.Reference != "" {
		ref := *patch.Reference
		order.Reference = &ref
	}

	order.UpdatedAt = now
	return events, nil
}
