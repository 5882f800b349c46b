package domain

import "fmt"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// transitions is the full lifecycle: a linear happy path plus cancellation,
// which is only possible before shipment.
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

func (s OrderStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal reports whether the status has no outbound transitions.
func (s OrderStatus) IsTerminal() bool {
	return len(transitions[s]) == 0 && s.Valid()
}

// CanTransition reports whether to is reachable from s in one step.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

// InvalidTransitionError is returned when a requested status change is not
// allowed by the lifecycle table. It should not occur if callers respect
// the allowed transitions.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order status transition %s -> %s", e.From, e.To)
}

// StatusDisplay is the UI metadata attached to each status.
type StatusDisplay struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var statusDisplays = map[OrderStatus]StatusDisplay{
	OrderStatusPending:    {Label: "Pending", Icon: "credit-card", Color: "text-yellow-500"},
	OrderStatusProcessing: {Label: "Processing", Icon: "package", Color: "text-blue-500"},
	OrderStatusShipped:    {Label: "Shipped", Icon: "truck", Color: "text-purple-500"},
	OrderStatusDelivered:  {Label: "Delivered", Icon: "check-circle", Color: "text-green-500"},
	OrderStatusCancelled:  {Label: "Cancelled", Icon: "x-circle", Color: "text-red-500"},
}

// Display returns the UI metadata for the status. Unknown statuses get a
// zero value rather than a panic; the UI shows the raw status string then.
func (s OrderStatus) Display() StatusDisplay {
	return statusDisplays[s]
}
