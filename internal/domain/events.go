package domain

import "time"

// Bus channel names for order lifecycle events.
const (
	NewPendingOrder = "new_pending_order"
	NewCookedOrder  = "new_cooked_order"
	NewOrderUpdate  = "new_order_update"
)

// OrderEvent is the payload published to the message bus and mirrored to the
// Kafka event log. It carries enough party identities for subscribers to
// filter on their own relationship to the order.
type OrderEvent struct {
	Channel      string      `json:"channel"`
	OrderID      int         `json:"order_id"`
	RestaurantID int         `json:"restaurant_id"`
	OwnerID      int         `json:"owner_id"`
	CustomerID   int         `json:"customer_id"`
	DriverID     int         `json:"driver_id,omitempty"`
	Status       OrderStatus `json:"status"`
	Total        float64     `json:"total"`
	Timestamp    time.Time   `json:"timestamp"`
}
