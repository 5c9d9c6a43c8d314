package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"relief-dispatch/internal/domain/assignment"
	"relief-dispatch/internal/domain/geo"
	"relief-dispatch/internal/domain/incident"
	"relief-dispatch/internal/domain/responder"
	"relief-dispatch/internal/ports"
)

// fakeStore is an in-memory stand-in for the postgres repositories, with
// copy-on-begin transaction semantics so rollback behavior is observable.
type fakeStore struct {
	mu          sync.Mutex
	incidents   map[uuid.UUID]*incident.Incident
	responders  []*responder.Responder
	assignments map[uuid.UUID]*assignment.Assignment
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		incidents:   make(map[uuid.UUID]*incident.Incident),
		assignments: make(map[uuid.UUID]*assignment.Assignment),
	}
}

func (s *fakeStore) addIncident(urgency string, location geo.Point) *incident.Incident {
	inc := &incident.Incident{
		ID:          uuid.New(),
		Description: "test incident",
		Urgency:     &urgency,
		Location:    location,
		Status:      incident.StatusRequested,
		CreatedAt:   time.Now().UTC(),
	}
	s.incidents[inc.ID] = inc
	return inc
}

func (s *fakeStore) addResponder(trust float64, location geo.Point, available bool) *responder.Responder {
	r := &responder.Responder{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		DisplayName: "unit",
		TrustScore:  trust,
		Location:    location,
		IsAvailable: available,
	}
	s.responders = append(s.responders, r)
	return r
}

func (s *fakeStore) activePair(incidentID, responderID uuid.UUID) bool {
	for _, a := range s.assignments {
		if a.IncidentID == incidentID && a.ResponderID == responderID && a.Status.Active() {
			return true
		}
	}
	return false
}

// fakeUow snapshots the assignment table on begin and restores it when fn
// fails, mirroring a rolled-back transaction.
type fakeUow struct {
	store *fakeStore
}

func (u *fakeUow) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	u.store.mu.Lock()
	snapshot := make(map[uuid.UUID]*assignment.Assignment, len(u.store.assignments))
	for id, a := range u.store.assignments {
		snapshot[id] = a
	}
	u.store.mu.Unlock()

	if err := fn(ctx); err != nil {
		u.store.mu.Lock()
		u.store.assignments = snapshot
		u.store.mu.Unlock()
		return err
	}
	return nil
}

type fakeIncidentRepo struct {
	store *fakeStore
}

func (r *fakeIncidentRepo) Create(_ context.Context, inc *incident.Incident) error {
	inc.ID = uuid.New()
	r.store.incidents[inc.ID] = inc
	return nil
}

func (r *fakeIncidentRepo) GetByID(_ context.Context, id uuid.UUID) (*incident.Incident, error) {
	inc, ok := r.store.incidents[id]
	if !ok {
		return nil, fmt.Errorf("incident %s: %w", id, ports.ErrNotFound)
	}
	return inc, nil
}

func (r *fakeIncidentRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*incident.Incident, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeIncidentRepo) SetStatus(_ context.Context, id uuid.UUID, status incident.Status) error {
	inc, ok := r.store.incidents[id]
	if !ok {
		return fmt.Errorf("incident %s: %w", id, ports.ErrNotFound)
	}
	inc.Status = status
	return nil
}

func (r *fakeIncidentRepo) List(_ context.Context, _, _ int) ([]*incident.Incident, error) {
	out := make([]*incident.Incident, 0, len(r.store.incidents))
	for _, inc := range r.store.incidents {
		out = append(out, inc)
	}
	return out, nil
}

func (r *fakeIncidentRepo) CountTotal(_ context.Context) (int, error) {
	return len(r.store.incidents), nil
}

func (r *fakeIncidentRepo) CountByStatus(_ context.Context) (map[incident.Status]int, error) {
	counts := make(map[incident.Status]int)
	for _, inc := range r.store.incidents {
		counts[inc.Status]++
	}
	return counts, nil
}

func (r *fakeIncidentRepo) Hotspots(_ context.Context, _ int) ([]ports.Hotspot, error) {
	return nil, nil
}

func (r *fakeIncidentRepo) CountCreatedSince(_ context.Context, since time.Time) (int, error) {
	n := 0
	for _, inc := range r.store.incidents {
		if !inc.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

type fakeResponderRepo struct {
	store *fakeStore
}

func (r *fakeResponderRepo) Create(_ context.Context, res *responder.Responder) error {
	for _, existing := range r.store.responders {
		if existing.UserID == res.UserID {
			return fmt.Errorf("user %s: %w", res.UserID, ports.ErrConflict)
		}
	}
	res.ID = uuid.New()
	r.store.responders = append(r.store.responders, res)
	return nil
}

func (r *fakeResponderRepo) GetByID(_ context.Context, id uuid.UUID) (*responder.Responder, error) {
	for _, res := range r.store.responders {
		if res.ID == id {
			return res, nil
		}
	}
	return nil, fmt.Errorf("responder %s: %w", id, ports.ErrNotFound)
}

func (r *fakeResponderRepo) List(_ context.Context) ([]*responder.Responder, error) {
	return r.store.responders, nil
}

func (r *fakeResponderRepo) ListAvailable(_ context.Context) ([]*responder.Responder, error) {
	out := make([]*responder.Responder, 0, len(r.store.responders))
	for _, res := range r.store.responders {
		if res.IsAvailable {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *fakeResponderRepo) SetAvailability(ctx context.Context, id uuid.UUID, available bool) error {
	res, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	res.IsAvailable = available
	return nil
}

func (r *fakeResponderRepo) UpdateLocation(ctx context.Context, id uuid.UUID, location geo.Point) error {
	res, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	res.Location = location
	return nil
}

type fakeAssignmentRepo struct {
	store *fakeStore
	order []uuid.UUID
}

func (r *fakeAssignmentRepo) Create(_ context.Context, a *assignment.Assignment) error {
	if r.store.activePair(a.IncidentID, a.ResponderID) {
		return fmt.Errorf("active assignment exists: %w", ports.ErrConflict)
	}
	a.ID = uuid.New()
	r.store.assignments[a.ID] = a
	r.order = append(r.order, a.ID)
	return nil
}

func (r *fakeAssignmentRepo) GetByID(_ context.Context, id uuid.UUID) (*assignment.Assignment, error) {
	a, ok := r.store.assignments[id]
	if !ok {
		return nil, fmt.Errorf("assignment %s: %w", id, ports.ErrNotFound)
	}
	return a, nil
}

func (r *fakeAssignmentRepo) SetStatus(_ context.Context, id uuid.UUID, status assignment.Status) error {
	a, ok := r.store.assignments[id]
	if !ok {
		return fmt.Errorf("assignment %s: %w", id, ports.ErrNotFound)
	}
	if a.Status.Terminal() {
		return fmt.Errorf("assignment %s is %s: %w", id, a.Status, ports.ErrInvalidTransition)
	}
	a.Status = status
	return nil
}

func (r *fakeAssignmentRepo) ListByIncident(_ context.Context, incidentID uuid.UUID) ([]*assignment.Assignment, error) {
	out := make([]*assignment.Assignment, 0)
	for _, id := range r.order {
		if a, ok := r.store.assignments[id]; ok && a.IncidentID == incidentID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakePublisher struct {
	mu       sync.Mutex
	messages []publishedMessage
}

type publishedMessage struct {
	exchange, routingKey string
	body                 []byte
}

func (p *fakePublisher) Publish(exchange, routingKey string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, publishedMessage{exchange, routingKey, body})
	return nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages [][]byte
}

func (n *fakeNotifier) Broadcast(message []byte) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}
