package v1

import (
	"relief-dispatch/internal/domain/assignment"
	"relief-dispatch/internal/domain/incident"
	"relief-dispatch/internal/domain/responder"
)

func toIncidentResponse(inc *incident.Incident) *IncidentResponse {
	return &IncidentResponse{
		ID:           inc.ID,
		ReporterID:   inc.ReporterID,
		Description:  inc.Description,
		Category:     inc.Category,
		Urgency:      inc.Urgency,
		InjuredCount: inc.InjuredCount,
		Trapped:      inc.Trapped,
		WaterLevelM:  inc.WaterLevelM,
		Latitude:     inc.Location.Latitude,
		Longitude:    inc.Location.Longitude,
		Address:      inc.Address,
		Status:       inc.Status.String(),
		CreatedAt:    inc.CreatedAt,
		UpdatedAt:    inc.UpdatedAt,
	}
}

func toIncidentResponses(incidents []*incident.Incident) []*IncidentResponse {
	out := make([]*IncidentResponse, len(incidents))
	for i, inc := range incidents {
		out[i] = toIncidentResponse(inc)
	}
	return out
}

func toEventResponse(event *incident.Event) *EventResponse {
	resp := &EventResponse{
		ID:         event.ID,
		IncidentID: event.IncidentID,
		ActorID:    event.ActorID,
		Type:       event.Type.String(),
		Note:       event.Note,
		CreatedAt:  event.CreatedAt,
	}
	if event.FromStatus != nil {
		from := event.FromStatus.String()
		resp.FromStatus = &from
	}
	if event.ToStatus != nil {
		to := event.ToStatus.String()
		resp.ToStatus = &to
	}
	return resp
}

func toEventResponses(events []*incident.Event) []*EventResponse {
	out := make([]*EventResponse, len(events))
	for i, event := range events {
		out[i] = toEventResponse(event)
	}
	return out
}

func toAssignmentResponse(a *assignment.Assignment) *AssignmentResponse {
	return &AssignmentResponse{
		ID:          a.ID,
		IncidentID:  a.IncidentID,
		ResponderID: a.ResponderID,
		Status:      a.Status.String(),
		Score:       a.Score,
		ETAMinutes:  a.ETAMinutes,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toAssignmentResponses(assignments []*assignment.Assignment) []*AssignmentResponse {
	out := make([]*AssignmentResponse, len(assignments))
	for i, a := range assignments {
		out[i] = toAssignmentResponse(a)
	}
	return out
}

func toResponderResponse(r *responder.Responder) *ResponderResponse {
	return &ResponderResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		DisplayName: r.DisplayName,
		Skills:      r.Skills,
		VehicleType: r.VehicleType,
		TrustScore:  r.TrustScore,
		Latitude:    r.Location.Latitude,
		Longitude:   r.Location.Longitude,
		IsAvailable: r.IsAvailable,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toResponderResponses(responders []*responder.Responder) []*ResponderResponse {
	out := make([]*ResponderResponse, len(responders))
	for i, r := range responders {
		out[i] = toResponderResponse(r)
	}
	return out
}
