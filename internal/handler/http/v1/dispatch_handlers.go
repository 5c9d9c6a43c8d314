package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"relief-dispatch/internal/domain/assignment"
	"relief-dispatch/internal/ports"
)

func (h *Handler) autoDispatch(c *gin.Context) {
	var input AutoDispatchRequest
	log := h.logger.WithField("method", "autoDispatch")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incidentID, err := uuid.Parse(input.IncidentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}

	created, err := h.dispatchService.AutoDispatch(c.Request.Context(), ports.AutoDispatchInput{
		IncidentID:  incidentID,
		MaxRadiusKM: input.MaxRadiusKM,
		Limit:       input.Limit,
		ActorID:     actorID(c),
	})
	if err != nil {
		h.respondServiceError(c, log.WithField("incident_id", incidentID), err)
		return
	}
	c.JSON(http.StatusCreated, toAssignmentResponses(created))
}

func (h *Handler) listIncidentAssignments(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "listIncidentAssignments").WithField("id", id)

	assignments, err := h.dispatchService.ListAssignments(c.Request.Context(), id)
	if err != nil {
		h.respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, toAssignmentResponses(assignments))
}

func (h *Handler) acceptAssignment(c *gin.Context) {
	h.transitionAssignment(c, "acceptAssignment", h.dispatchService.AcceptAssignment)
}

func (h *Handler) rejectAssignment(c *gin.Context) {
	h.transitionAssignment(c, "rejectAssignment", h.dispatchService.RejectAssignment)
}

func (h *Handler) cancelAssignment(c *gin.Context) {
	h.transitionAssignment(c, "cancelAssignment", h.dispatchService.CancelAssignment)
}

func (h *Handler) completeAssignment(c *gin.Context) {
	h.transitionAssignment(c, "completeAssignment", h.dispatchService.CompleteAssignment)
}

func (h *Handler) transitionAssignment(
	c *gin.Context,
	method string,
	op func(ctx context.Context, id uuid.UUID) (*assignment.Assignment, error),
) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment ID"})
		return
	}
	log := h.logger.WithField("method", method).WithField("id", id)

	updated, err := op(c.Request.Context(), id)
	if err != nil {
		h.respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, toAssignmentResponse(updated))
}
