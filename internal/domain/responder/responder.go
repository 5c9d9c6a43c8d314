package responder

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"relief-dispatch/internal/domain/geo"
)

// DefaultTrustScore is assumed for responders with no recorded history.
const DefaultTrustScore = 0.5

// Responder is a field unit available for dispatch, corresponding to the
// `responders` table.
type Responder struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time

	// Linked identity
	UserID uuid.UUID

	DisplayName string
	Skills      []string
	VehicleType *string

	// TrustScore reflects historical reliability, expected in [0,1] but not
	// clamped here; recalculation happens outside this service.
	TrustScore float64

	Location    geo.Point
	IsAvailable bool
}

var (
	ErrUserIDRequired      = errors.New("responder user id is required")
	ErrDisplayNameRequired = errors.New("responder display name is required")
)

// New creates an available responder with the default trust score.
func New(userID uuid.UUID, displayName string, skills []string, vehicleType string, location geo.Point) (*Responder, error) {
	if userID == uuid.Nil {
		return nil, ErrUserIDRequired
	}
	if displayName = strings.TrimSpace(displayName); displayName == "" {
		return nil, ErrDisplayNameRequired
	}
	if err := location.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	r := &Responder{
		CreatedAt:   now,
		UpdatedAt:   now,
		UserID:      userID,
		DisplayName: displayName,
		Skills:      normalizeSkills(skills),
		TrustScore:  DefaultTrustScore,
		Location:    location,
		IsAvailable: true,
	}
	if vt := strings.TrimSpace(vehicleType); vt != "" {
		r.VehicleType = &vt
	}
	return r, nil
}

// Trust returns the trust score, substituting the default for an unset value.
// A zero score is treated as unset: a genuinely untrusted unit would have been
// deactivated, not zeroed.
func (r *Responder) Trust() float64 {
	if r.TrustScore == 0 {
		return DefaultTrustScore
	}
	return r.TrustScore
}

func normalizeSkills(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
