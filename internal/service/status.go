package service

import "fmt"

// Order statuses form a closed set. The admin UI historically sent free
// text here; anything outside this set is now rejected.
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusShipped   = "Shipped"
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"
)

var statusTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusShipped, StatusCancelled},
	StatusConfirmed: {StatusShipped, StatusCancelled},
	StatusShipped:   {StatusDelivered},
	StatusDelivered: {},
	StatusCancelled: {},
}

func ValidStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

func CheckTransition(from, to string) error {
	if !ValidStatus(to) {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, to)
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
