package service

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relief-dispatch/internal/domain/assignment"
	"relief-dispatch/internal/domain/geo"
	"relief-dispatch/internal/domain/incident"
	"relief-dispatch/internal/general/config"
	"relief-dispatch/internal/general/contracts"
	"relief-dispatch/internal/ports"
)

func newTestService(store *fakeStore) (*Service, *fakeAssignmentRepo, *fakePublisher) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	assignments := &fakeAssignmentRepo{store: store}
	pub := &fakePublisher{}

	svc := New(
		&fakeUow{store: store},
		&fakeIncidentRepo{store: store},
		&fakeResponderRepo{store: store},
		assignments,
		pub,
		&fakeNotifier{},
		config.DispatchConfig{DefaultMaxRadiusKM: 50, AvgSpeedKmh: 30, DefaultLimit: 5},
		log,
	)
	return svc, assignments, pub
}

func mustPoint(t *testing.T, lat, lng float64) geo.Point {
	t.Helper()
	p, err := geo.NewPoint(lat, lng)
	require.NoError(t, err)
	return p
}

func TestAutoDispatchCreatesTopRankedAssignments(t *testing.T) {
	store := newFakeStore()
	inc := store.addIncident(incident.UrgencyCritical, mustPoint(t, 0, 0))

	near := store.addResponder(0.9, mustPoint(t, 0.01, 0), true)
	mid := store.addResponder(0.9, mustPoint(t, 0.05, 0), true)
	store.addResponder(0.9, mustPoint(t, 0.2, 0), true)

	svc, _, pub := newTestService(store)

	created, err := svc.AutoDispatch(context.Background(), ports.AutoDispatchInput{
		IncidentID: inc.ID,
		Limit:      2,
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	assert.Equal(t, near.ID, created[0].ResponderID)
	assert.Equal(t, mid.ID, created[1].ResponderID)
	for _, a := range created {
		assert.Equal(t, assignment.StatusPending, a.Status)
		assert.Equal(t, inc.ID, a.IncidentID)
		assert.Greater(t, a.Score, 0.0)
		assert.Greater(t, a.ETAMinutes, 0.0)
	}

	assert.Len(t, pub.messages, 2)
	assert.Len(t, store.assignments, 2)
}

func TestAutoDispatchAttributesActor(t *testing.T) {
	store := newFakeStore()
	inc := store.addIncident(incident.UrgencyCritical, mustPoint(t, 0, 0))
	store.addResponder(0.9, mustPoint(t, 0.01, 0), true)

	svc, _, pub := newTestService(store)
	admin := uuid.New()

	_, err := svc.AutoDispatch(context.Background(), ports.AutoDispatchInput{
		IncidentID: inc.ID,
		ActorID:    &admin,
	})
	require.NoError(t, err)
	require.Len(t, pub.messages, 1)

	var msg contracts.AssignmentCreatedMessage
	require.NoError(t, json.Unmarshal(pub.messages[0].body, &msg))
	assert.Equal(t, admin.String(), msg.DispatchedBy)
}

func TestAutoDispatchUnknownIncident(t *testing.T) {
	store := newFakeStore()
	store.addResponder(0.9, mustPoint(t, 0.01, 0), true)

	svc, _, _ := newTestService(store)

	created, err := svc.AutoDispatch(context.Background(), ports.AutoDispatchInput{
		IncidentID: uuid.New(),
	})
	assert.ErrorIs(t, err, ports.ErrNotFound)
	assert.Nil(t, created)
	assert.Empty(t, store.assignments)
}

func TestAutoDispatchNoEligibleCandidates(t *testing.T) {
	store := newFakeStore()
	inc := store.addIncident(incident.UrgencyUrgent, mustPoint(t, 0, 0))

	// one unavailable, one outside the radius
	store.addResponder(0.9, mustPoint(t, 0.01, 0), false)
	store.addResponder(0.9, mustPoint(t, 5, 5), true)

	svc, _, pub := newTestService(store)

	created, err := svc.AutoDispatch(context.Background(), ports.AutoDispatchInput{
		IncidentID: inc.ID,
	})
	require.NoError(t, err)
	assert.Empty(t, created)
	assert.Empty(t, pub.messages)
}

func TestAutoDispatchConflictRollsBackWholeRun(t *testing.T) {
	store := newFakeStore()
	inc := store.addIncident(incident.UrgencyCritical, mustPoint(t, 0, 0))

	near := store.addResponder(0.9, mustPoint(t, 0.01, 0), true)
	mid := store.addResponder(0.9, mustPoint(t, 0.05, 0), true)

	// mid already holds an active assignment for this incident
	existing, err := assignment.New(inc.ID, mid.ID, 1.0, 5.0)
	require.NoError(t, err)
	existing.ID = uuid.New()
	store.assignments[existing.ID] = existing

	svc, _, pub := newTestService(store)

	created, err := svc.AutoDispatch(context.Background(), ports.AutoDispatchInput{
		IncidentID: inc.ID,
		Limit:      2,
	})
	assert.ErrorIs(t, err, ports.ErrConflict)
	assert.Nil(t, created)
	assert.Empty(t, pub.messages)

	// the assignment for the nearer responder must not survive the rollback
	require.Len(t, store.assignments, 1)
	for _, a := range store.assignments {
		assert.NotEqual(t, near.ID, a.ResponderID)
	}
}

func TestAutoDispatchRejectsBadInput(t *testing.T) {
	store := newFakeStore()
	inc := store.addIncident(incident.UrgencyLow, mustPoint(t, 0, 0))

	svc, _, _ := newTestService(store)

	_, err := svc.AutoDispatch(context.Background(), ports.AutoDispatchInput{
		IncidentID:  inc.ID,
		MaxRadiusKM: -1,
	})
	assert.ErrorIs(t, err, ports.ErrValidation)

	_, err = svc.AutoDispatch(context.Background(), ports.AutoDispatchInput{
		IncidentID: inc.ID,
		Limit:      -3,
	})
	assert.ErrorIs(t, err, ports.ErrValidation)
}

func TestAutoDispatchDefaultsComeFromConfig(t *testing.T) {
	store := newFakeStore()
	inc := store.addIncident(incident.UrgencyCritical, mustPoint(t, 0, 0))

	for i := 0; i < 7; i++ {
		store.addResponder(0.9, mustPoint(t, 0.01*float64(i+1), 0), true)
	}

	svc, _, _ := newTestService(store)

	created, err := svc.AutoDispatch(context.Background(), ports.AutoDispatchInput{
		IncidentID: inc.ID,
	})
	require.NoError(t, err)
	assert.Len(t, created, 5)
}

func TestAssignmentLifecycleTransitions(t *testing.T) {
	store := newFakeStore()
	inc := store.addIncident(incident.UrgencyCritical, mustPoint(t, 0, 0))
	store.addResponder(0.9, mustPoint(t, 0.01, 0), true)

	svc, _, _ := newTestService(store)

	created, err := svc.AutoDispatch(context.Background(), ports.AutoDispatchInput{
		IncidentID: inc.ID,
		Limit:      1,
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	id := created[0].ID

	accepted, err := svc.AcceptAssignment(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, assignment.StatusAccepted, accepted.Status)

	completed, err := svc.CompleteAssignment(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, assignment.StatusCompleted, completed.Status)

	// completed is terminal
	_, err = svc.CancelAssignment(context.Background(), id)
	assert.ErrorIs(t, err, ports.ErrInvalidTransition)
}

func TestListAssignmentsReturnsRankOrder(t *testing.T) {
	store := newFakeStore()
	inc := store.addIncident(incident.UrgencyCritical, mustPoint(t, 0, 0))

	near := store.addResponder(0.9, mustPoint(t, 0.01, 0), true)
	mid := store.addResponder(0.9, mustPoint(t, 0.05, 0), true)

	svc, _, _ := newTestService(store)

	_, err := svc.AutoDispatch(context.Background(), ports.AutoDispatchInput{
		IncidentID: inc.ID,
		Limit:      2,
	})
	require.NoError(t, err)

	listed, err := svc.ListAssignments(context.Background(), inc.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, near.ID, listed[0].ResponderID)
	assert.Equal(t, mid.ID, listed[1].ResponderID)
}
