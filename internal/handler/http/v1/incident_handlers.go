package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"relief-dispatch/internal/domain/incident"
	"relief-dispatch/internal/ports"
)

func (h *Handler) createIncident(c *gin.Context) {
	var input CreateIncidentRequest
	log := h.logger.WithField("method", "createIncident")

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

	inc, err := h.incidentService.Create(c.Request.Context(), ports.CreateIncidentInput{
		ReporterID:   actorID(c),
		Description:  input.Description,
		RawText:      input.RawText,
		Category:     input.Category,
		Urgency:      input.Urgency,
		InjuredCount: input.InjuredCount,
		Trapped:      input.Trapped,
		WaterLevelM:  input.WaterLevelM,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		Address:      input.Address,
	})
	if err != nil {
		h.respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, toIncidentResponse(inc))
}

func (h *Handler) smsInbound(c *gin.Context) {
	var input SMSInboundRequest
	log := h.logger.WithField("method", "smsInbound")

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

	inc, err := h.incidentService.CreateFromSMS(c.Request.Context(), ports.InboundSMSInput{
		FromNumber: input.From,
		Body:       input.Body,
		ReceivedAt: input.ReceivedAt,
	})
	if err != nil {
		h.respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, toIncidentResponse(inc))
}

func (h *Handler) getIncident(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	inc, err := h.incidentService.Get(c.Request.Context(), id)
	if err != nil {
		h.respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, toIncidentResponse(inc))
}

func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	incidents, err := h.incidentService.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, toIncidentResponses(incidents))
}

func (h *Handler) updateIncidentStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "updateIncidentStatus").WithField("id", id)

	var input UpdateIncidentStatusRequest
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

	status, err := incident.ParseStatus(input.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	inc, err := h.incidentService.UpdateStatus(c.Request.Context(), ports.UpdateIncidentStatusInput{
		IncidentID: id,
		NewStatus:  status,
		Note:       input.Note,
		ActorID:    actorID(c),
	})
	if err != nil {
		h.respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, toIncidentResponse(inc))
}

func (h *Handler) listIncidentEvents(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid incident ID"})
		return
	}
	log := h.logger.WithField("method", "listIncidentEvents").WithField("id", id)

	events, err := h.incidentService.ListEvents(c.Request.Context(), id)
	if err != nil {
		h.respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, toEventResponses(events))
}

func (h *Handler) incidentSummary(c *gin.Context) {
	log := h.logger.WithField("method", "incidentSummary")

	summary, err := h.incidentService.Summary(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) incidentHotspots(c *gin.Context) {
	log := h.logger.WithField("method", "incidentHotspots")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	hotspots, err := h.incidentService.Hotspots(c.Request.Context(), limit)
	if err != nil {
		h.respondServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, hotspots)
}
