package assignment

import (
	"errors"
	"strings"
)

// Status is an assignment status as stored in the `assignment_status` enum.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

var ErrInvalidStatus = errors.New("invalid assignment status")

// ParseStatus normalizes (lowercases+trims) and validates a status string.
func ParseStatus(in string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(in)))
	if status.Valid() {
		return status, nil
	}
	return "", ErrInvalidStatus
}

// Valid reports whether status is one of the allowed assignment status constants.
func (status Status) Valid() bool {
	switch status {
	case StatusPending, StatusAccepted, StatusRejected, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// String returns the string representation of the Status.
func (status Status) String() string {
	return string(status)
}

// Terminal indicates the assignment can no longer be transitioned.
func (status Status) Terminal() bool {
	switch status {
	case StatusRejected, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// Active indicates the assignment counts against the one-active-per-pair
// uniqueness invariant.
func (status Status) Active() bool {
	return status == StatusPending || status == StatusAccepted
}
