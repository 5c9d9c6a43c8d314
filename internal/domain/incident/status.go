package incident

import (
	"errors"
	"strings"
)

// Status is an incident lifecycle status as stored in the `incident_status` enum.
type Status string

const (
	StatusRequested Status = "requested"
	StatusTriaged   Status = "triaged"
	StatusAssigned  Status = "assigned"
	StatusEnRoute   Status = "en_route"
	StatusArrived   Status = "arrived"
	StatusResolved  Status = "resolved"
)

var ErrInvalidStatus = errors.New("invalid incident status")

// statusOrder is the documented forward lifecycle order.
var statusOrder = map[Status]int{
	StatusRequested: 0,
	StatusTriaged:   1,
	StatusAssigned:  2,
	StatusEnRoute:   3,
	StatusArrived:   4,
	StatusResolved:  5,
}

// ParseStatus normalizes (lowercases+trims) and validates a status string.
func ParseStatus(in string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(in)))
	if status.Valid() {
		return status, nil
	}
	return "", ErrInvalidStatus
}

// Valid reports whether status is one of the allowed incident status constants.
func (status Status) Valid() bool {
	_, ok := statusOrder[status]
	return ok
}

// String returns the string representation of the Status.
func (status Status) String() string {
	return string(status)
}

// ForwardOf reports whether next is strictly later in the lifecycle order.
// Skipping stages is allowed (an incident may be dispatched without manual
// triage); moving backwards or staying in place is not.
func (status Status) ForwardOf(next Status) bool {
	a, ok := statusOrder[status]
	if !ok {
		return false
	}
	b, ok := statusOrder[next]
	if !ok {
		return false
	}
	return b > a
}
