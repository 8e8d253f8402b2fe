package order

import "fmt"

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

// validNext is the full transition table. Statuses with an empty entry
// are terminal.
var validNext = map[Status]map[Status]bool{
	StatusPending:   {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed: {StatusShipped: true, StatusCancelled: true},
	StatusShipped:   {StatusDelivered: true},
	StatusDelivered: {},
	StatusCancelled: {},
}

// AllStatuses returns every recognized status, in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusConfirmed,
		StatusShipped,
		StatusDelivered,
		StatusCancelled,
	}
}

// ParseStatus maps an external status name onto the enum. Unrecognized
// names are rejected before any transition lookup happens.
func ParseStatus(name string) (Status, error) {
	s := Status(name)
	if _, ok := validNext[s]; !ok {
		return "", fmt.Errorf("%w: unrecognized status %q", ErrInvalidTransition, name)
	}
	return s, nil
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

func (s Status) IsTerminal() bool {
	next, ok := validNext[s]
	return ok && len(next) == 0
}

// AcceptsTracking reports whether a tracking number may be attached while
// moving to this status.
func (s Status) AcceptsTracking() bool {
	return s == StatusShipped || s == StatusDelivered
}
