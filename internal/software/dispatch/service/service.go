package service

import (
	"github.com/sirupsen/logrus"

	"relief-dispatch/internal/general/config"
	"relief-dispatch/internal/ports"
)

// Service orchestrates dispatch runs and the assignment lifecycle.
type Service struct {
	uow         ports.UnitOfWork
	incidents   ports.IncidentRepository
	responders  ports.ResponderRepository
	assignments ports.AssignmentRepository
	pub         ports.MessagePublisher
	ops         ports.OpsNotifier
	cfg         config.DispatchConfig
	log         *logrus.Logger
}

func New(
	uow ports.UnitOfWork,
	incidents ports.IncidentRepository,
	responders ports.ResponderRepository,
	assignments ports.AssignmentRepository,
	pub ports.MessagePublisher,
	ops ports.OpsNotifier,
	cfg config.DispatchConfig,
	log *logrus.Logger,
) *Service {
	return &Service{
		uow:         uow,
		incidents:   incidents,
		responders:  responders,
		assignments: assignments,
		pub:         pub,
		ops:         ops,
		cfg:         cfg,
		log:         log,
	}
}

var _ ports.DispatchService = (*Service)(nil)
