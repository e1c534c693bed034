package models

// OrderStatus is the lifecycle state shared by sales, service and supply orders.
//
//	Active → Finished
//	Active → Cancelled
//
// Finished and Cancelled are terminal.
type OrderStatus string

const (
	StatusActive    OrderStatus = "Active"
	StatusFinished  OrderStatus = "Finished"
	StatusCancelled OrderStatus = "Cancelled"
)

// Valid reports whether s is one of the known statuses
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusActive, StatusFinished, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed from s
func (s OrderStatus) IsTerminal() bool {
	return s == StatusFinished || s == StatusCancelled
}

// CanTransitionTo reports whether an order in status s may move to next.
// Only Active orders move, and only to Finished or Cancelled.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return s == StatusActive && (next == StatusFinished || next == StatusCancelled)
}
