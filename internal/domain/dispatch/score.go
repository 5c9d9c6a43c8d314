package dispatch

import (
	"errors"
	"sort"

	"github.com/google/uuid"

	"relief-dispatch/internal/domain/geo"
	"relief-dispatch/internal/domain/incident"
	"relief-dispatch/internal/domain/responder"
)

// ScoreConfig carries the tunables of the scoring pass. Passed explicitly so
// tests can run across configurations without touching process state.
type ScoreConfig struct {
	MaxRadiusKM float64 // candidates farther than this are discarded
	AvgSpeedKmh float64 // assumed straight-line travel speed for the ETA
}

// ScoredCandidate is one ranked responder for an incident.
type ScoredCandidate struct {
	ResponderID uuid.UUID `json:"responder_id"`
	Score       float64   `json:"score"`
	DistanceKM  float64   `json:"distance_km"`
	ETAMinutes  float64   `json:"eta_minutes"`
}

var ErrInvalidLocation = errors.New("incident has no valid location")

// Urgency weights applied on top of the trust/distance mix.
const (
	weightCritical = 1.5
	weightUrgent   = 1.2
	weightDefault  = 1.0
)

// Rank scores the given responders against the incident and returns them sorted
// by score descending. The sort is stable, so equal scores keep input order.
//
// Unavailable responders are skipped even though callers normally pre-filter;
// so are responders with a malformed location, since one bad record must not
// abort the batch. Candidates beyond MaxRadiusKM are discarded. An empty
// responder set ranks to an empty, non-nil slice.
func Rank(inc *incident.Incident, responders []*responder.Responder, cfg ScoreConfig) ([]ScoredCandidate, error) {
	if inc == nil || inc.Location.Validate() != nil {
		return nil, ErrInvalidLocation
	}

	weight := urgencyWeight(inc.UrgencyLabel())

	ranked := make([]ScoredCandidate, 0, len(responders))
	for _, r := range responders {
		if r == nil || !r.IsAvailable {
			continue
		}
		if r.Location.Validate() != nil {
			continue
		}

		distance := geo.HaversineKM(inc.Location, r.Location)
		if distance > cfg.MaxRadiusKM {
			continue
		}

		// distance_penalty is in [0,1] thanks to the radius filter above
		penalty := distance / cfg.MaxRadiusKM
		score := weight * (r.Trust()*1.5 + (1 - penalty))

		ranked = append(ranked, ScoredCandidate{
			ResponderID: r.ID,
			Score:       score,
			DistanceKM:  distance,
			ETAMinutes:  geo.ETAMinutes(distance, cfg.AvgSpeedKmh),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked, nil
}

func urgencyWeight(label string) float64 {
	switch label {
	case incident.UrgencyCritical:
		return weightCritical
	case incident.UrgencyUrgent:
		return weightUrgent
	default:
		return weightDefault
	}
}
