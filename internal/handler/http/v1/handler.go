package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"relief-dispatch/internal/domain/dispatch"
	"relief-dispatch/internal/ports"
)

type Handler struct {
	incidentService  ports.IncidentService
	dispatchService  ports.DispatchService
	responderService ports.ResponderService
	logger           *logrus.Logger
	validate         *validator.Validate
}

func NewHandler(
	incidentService ports.IncidentService,
	dispatchService ports.DispatchService,
	responderService ports.ResponderService,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		incidentService:  incidentService,
		dispatchService:  dispatchService,
		responderService: responderService,
		logger:           logger,
		validate:         validator.New(),
	}
}

// respondServiceError maps the ports error taxonomy onto HTTP statuses.
func (h *Handler) respondServiceError(c *gin.Context, log *logrus.Entry, err error) {
	switch {
	case errors.Is(err, ports.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ports.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, ports.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict with existing state"})
	case errors.Is(err, ports.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, dispatch.ErrInvalidLocation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, ports.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "store timeout"})
	default:
		log.WithError(err).Error("Unhandled service error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
