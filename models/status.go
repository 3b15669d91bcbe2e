package models

import "fmt"

// Status values follow the front-of-house vocabulary. Orders and order
// items have enforced transition tables; tables stay free-form because
// staff can move a table between any two states by explicit command.

const (
	TableAvailable = "available"
	TableOccupied  = "occupied"
	TableReserved  = "reserved"
	TableCleaning  = "cleaning"
)

const (
	TableSizeSmall  = "small"
	TableSizeMedium = "medium"
	TableSizeLarge  = "large"
	TableSizeBooth  = "booth"
)

const (
	OrderPending    = "pending"
	OrderInProgress = "in-progress"
	OrderServed     = "served"
	OrderCompleted  = "completed"
	OrderCanceled   = "canceled"
)

const (
	CourseAppetizer = "appetizer"
	CourseMain      = "main"
	CourseDessert   = "dessert"
	CourseDrink     = "drink"
)

const (
	ReservationConfirmed = "confirmed"
	ReservationCanceled  = "canceled"
	ReservationSeated    = "seated"
	ReservationNoShow    = "no-show"
)

const (
	RoleHost    = "host"
	RoleServer  = "server"
	RoleKitchen = "kitchen"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

var tableStatuses = map[string]bool{
	TableAvailable: true,
	TableOccupied:  true,
	TableReserved:  true,
	TableCleaning:  true,
}

var tableSizes = map[string]bool{
	TableSizeSmall:  true,
	TableSizeMedium: true,
	TableSizeLarge:  true,
	TableSizeBooth:  true,
}

var courseTypes = map[string]bool{
	CourseAppetizer: true,
	CourseMain:      true,
	CourseDessert:   true,
	CourseDrink:     true,
}

var reservationStatuses = map[string]bool{
	ReservationConfirmed: true,
	ReservationCanceled:  true,
	ReservationSeated:    true,
	ReservationNoShow:    true,
}

var staffRoles = map[string]bool{
	RoleHost:    true,
	RoleServer:  true,
	RoleKitchen: true,
	RoleManager: true,
	RoleAdmin:   true,
}

// orderTransitions is the strict order machine: completed and canceled are
// terminal, canceled absorbs every non-terminal state.
var orderTransitions = map[string][]string{
	OrderPending:    {OrderInProgress, OrderCanceled},
	OrderInProgress: {OrderServed, OrderCanceled},
	OrderServed:     {OrderCompleted, OrderCanceled},
	OrderCompleted:  {},
	OrderCanceled:   {},
}

// itemTransitions is the narrower per-item machine. Items are never
// canceled; cancellation is order-level only. "served" may be skipped.
var itemTransitions = map[string][]string{
	OrderPending:    {OrderInProgress},
	OrderInProgress: {OrderServed, OrderCompleted},
	OrderServed:     {OrderCompleted},
	OrderCompleted:  {},
}

func ValidTableStatus(s string) bool       { return tableStatuses[s] }
func ValidTableSize(s string) bool         { return tableSizes[s] }
func ValidCourseType(s string) bool        { return courseTypes[s] }
func ValidReservationStatus(s string) bool { return reservationStatuses[s] }
func ValidStaffRole(s string) bool         { return staffRoles[s] }

func ValidOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

func ValidOrderItemStatus(s string) bool {
	_, ok := itemTransitions[s]
	return ok
}

// CanTransitionOrder reports whether an order may move from->to. Writing
// the current status back is a no-op and always allowed.
func CanTransitionOrder(from, to string) bool {
	return canTransition(orderTransitions, from, to)
}

// CanTransitionOrderItem reports whether an order item may move from->to.
func CanTransitionOrderItem(from, to string) bool {
	return canTransition(itemTransitions, from, to)
}

func canTransition(table map[string][]string, from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckOrderTransition returns a descriptive error for a rejected move.
func CheckOrderTransition(from, to string) error {
	if !ValidOrderStatus(to) {
		return fmt.Errorf("unknown order status %q", to)
	}
	if !CanTransitionOrder(from, to) {
		return fmt.Errorf("order cannot move from %q to %q", from, to)
	}
	return nil
}

func CheckOrderItemTransition(from, to string) error {
	if !ValidOrderItemStatus(to) {
		return fmt.Errorf("unknown order item status %q", to)
	}
	if !CanTransitionOrderItem(from, to) {
		return fmt.Errorf("order item cannot move from %q to %q", from, to)
	}
	return nil
}
