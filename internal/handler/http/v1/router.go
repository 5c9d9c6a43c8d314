package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"relief-dispatch/internal/domain/identity"
	"relief-dispatch/internal/general/jwt"
)

// RegisterRoutes wires all API v1 routes. The SMS webhook and health check are
// unauthenticated; everything else requires a bearer token.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, jwtMgr *jwt.Manager, log *logrus.Logger) {
	anyActor := JWTAuthMiddleware(jwtMgr, log, identity.RoleCitizen, identity.RoleResponder, identity.RoleAdmin)
	opsOnly := JWTAuthMiddleware(jwtMgr, log, identity.RoleResponder, identity.RoleAdmin)
	adminOnly := JWTAuthMiddleware(jwtMgr, log, identity.RoleAdmin)

	incidents := api.Group("/incidents")
	{
		incidents.POST("", anyActor, h.createIncident)
		incidents.GET("", opsOnly, h.listIncidents)
		incidents.GET("/summary", opsOnly, h.incidentSummary)
		incidents.GET("/hotspots", opsOnly, h.incidentHotspots)
		incidents.GET("/:id", opsOnly, h.getIncident)
		incidents.PATCH("/:id/status", opsOnly, h.updateIncidentStatus)
		incidents.GET("/:id/events", opsOnly, h.listIncidentEvents)
		incidents.GET("/:id/assignments", opsOnly, h.listIncidentAssignments)
	}

	api.POST("/sms/inbound", h.smsInbound)

	api.POST("/dispatch/auto", adminOnly, h.autoDispatch)

	assignments := api.Group("/assignments", opsOnly)
	{
		assignments.POST("/:id/accept", h.acceptAssignment)
		assignments.POST("/:id/reject", h.rejectAssignment)
		assignments.POST("/:id/cancel", h.cancelAssignment)
		assignments.POST("/:id/complete", h.completeAssignment)
	}

	responders := api.Group("/responders")
	{
		responders.POST("", adminOnly, h.createResponder)
		responders.GET("", opsOnly, h.listResponders)
		responders.PATCH("/:id/availability", opsOnly, h.updateResponderAvailability)
		responders.PATCH("/:id/location", opsOnly, h.updateResponderLocation)
	}

	api.GET("/system/health", h.healthCheck)
}
