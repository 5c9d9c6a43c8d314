package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"relief-dispatch/internal/domain/incident"
	"relief-dispatch/internal/ports"
)

type passthroughUow struct{}

func (passthroughUow) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeIncidentRepo struct {
	mu           sync.Mutex
	incidents    map[uuid.UUID]*incident.Incident
	getCalls     int
	hotspotLimit int
}

func newFakeIncidentRepo() *fakeIncidentRepo {
	return &fakeIncidentRepo{incidents: make(map[uuid.UUID]*incident.Incident)}
}

func (r *fakeIncidentRepo) Create(_ context.Context, inc *incident.Incident) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inc.ID = uuid.New()
	r.incidents[inc.ID] = inc
	return nil
}

func (r *fakeIncidentRepo) GetByID(_ context.Context, id uuid.UUID) (*incident.Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getCalls++
	inc, ok := r.incidents[id]
	if !ok {
		return nil, fmt.Errorf("incident %s: %w", id, ports.ErrNotFound)
	}
	return inc, nil
}

func (r *fakeIncidentRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*incident.Incident, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeIncidentRepo) SetStatus(_ context.Context, id uuid.UUID, status incident.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inc, ok := r.incidents[id]
	if !ok {
		return fmt.Errorf("incident %s: %w", id, ports.ErrNotFound)
	}
	inc.Status = status
	return nil
}

func (r *fakeIncidentRepo) List(_ context.Context, limit, offset int) ([]*incident.Incident, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*incident.Incident, 0, len(r.incidents))
	for _, inc := range r.incidents {
		all = append(all, inc)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeIncidentRepo) CountTotal(_ context.Context) (int, error) {
	return len(r.incidents), nil
}

func (r *fakeIncidentRepo) CountByStatus(_ context.Context) (map[incident.Status]int, error) {
	counts := make(map[incident.Status]int)
	for _, inc := range r.incidents {
		counts[inc.Status]++
	}
	return counts, nil
}

func (r *fakeIncidentRepo) CountCreatedSince(_ context.Context, since time.Time) (int, error) {
	n := 0
	for _, inc := range r.incidents {
		if !inc.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (r *fakeIncidentRepo) Hotspots(_ context.Context, limit int) ([]ports.Hotspot, error) {
	r.mu.Lock()
	r.hotspotLimit = limit
	r.mu.Unlock()

	cells := make(map[[2]float64]int)
	for _, inc := range r.incidents {
		key := [2]float64{
			math.Round(inc.Location.Latitude*1000) / 1000,
			math.Round(inc.Location.Longitude*1000) / 1000,
		}
		cells[key]++
	}

	hotspots := make([]ports.Hotspot, 0, len(cells))
	for cell, n := range cells {
		hotspots = append(hotspots, ports.Hotspot{Latitude: cell[0], Longitude: cell[1], Count: n})
	}
	sort.Slice(hotspots, func(i, j int) bool {
		if hotspots[i].Count != hotspots[j].Count {
			return hotspots[i].Count > hotspots[j].Count
		}
		if hotspots[i].Latitude != hotspots[j].Latitude {
			return hotspots[i].Latitude < hotspots[j].Latitude
		}
		return hotspots[i].Longitude < hotspots[j].Longitude
	})
	if len(hotspots) > limit {
		hotspots = hotspots[:limit]
	}
	return hotspots, nil
}

type fakeEventRepo struct {
	mu     sync.Mutex
	events []*incident.Event
	nextID int64
}

func (r *fakeEventRepo) Append(_ context.Context, event *incident.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	event.ID = r.nextID
	r.events = append(r.events, event)
	return nil
}

func (r *fakeEventRepo) ListByIncident(_ context.Context, incidentID uuid.UUID) ([]*incident.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*incident.Event, 0)
	for _, e := range r.events {
		if e.IncidentID == incidentID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeCache struct {
	mu          sync.Mutex
	entries     map[uuid.UUID]*incident.Incident
	hits        int
	invalidated []uuid.UUID
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[uuid.UUID]*incident.Incident)}
}

func (c *fakeCache) Get(_ context.Context, id uuid.UUID) (*incident.Incident, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	inc, ok := c.entries[id]
	if !ok {
		return nil, fmt.Errorf("cache miss: %w", ports.ErrNotFound)
	}
	c.hits++
	return inc, nil
}

func (c *fakeCache) Set(_ context.Context, inc *incident.Incident) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[inc.ID] = inc
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
	return nil
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
