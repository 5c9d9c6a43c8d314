package service

import (
	"github.com/sirupsen/logrus"

	"relief-dispatch/internal/general/config"
	"relief-dispatch/internal/ports"
)

// Service owns incident intake, the status state machine, and the audit trail.
type Service struct {
	uow        ports.UnitOfWork
	incidents  ports.IncidentRepository
	events     ports.IncidentEventRepository
	cache      ports.IncidentCache
	classifier ports.Classifier
	pub        ports.MessagePublisher
	ops        ports.OpsNotifier
	cfg        config.DispatchConfig
	log        *logrus.Logger
}

func New(
	uow ports.UnitOfWork,
	incidents ports.IncidentRepository,
	events ports.IncidentEventRepository,
	cache ports.IncidentCache,
	classifier ports.Classifier,
	pub ports.MessagePublisher,
	ops ports.OpsNotifier,
	cfg config.DispatchConfig,
	log *logrus.Logger,
) *Service {
	return &Service{
		uow:        uow,
		incidents:  incidents,
		events:     events,
		cache:      cache,
		classifier: classifier,
		pub:        pub,
		ops:        ops,
		cfg:        cfg,
		log:        log,
	}
}

var _ ports.IncidentService = (*Service)(nil)
