package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"relief-dispatch/internal/domain/geo"
	"relief-dispatch/internal/domain/responder"
	"relief-dispatch/internal/ports"
)

// Service manages the responder registry.
type Service struct {
	uow        ports.UnitOfWork
	responders ports.ResponderRepository
	log        *logrus.Logger
}

func New(uow ports.UnitOfWork, responders ports.ResponderRepository, log *logrus.Logger) *Service {
	return &Service{uow: uow, responders: responders, log: log}
}

var _ ports.ResponderService = (*Service)(nil)

// Create registers a field unit. A second profile for the same user fails
// with ErrConflict.
func (s *Service) Create(ctx context.Context, in ports.CreateResponderInput) (*responder.Responder, error) {
	location, err := geo.NewPoint(in.Latitude, in.Longitude)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ports.ErrValidation)
	}

	res, err := responder.New(in.UserID, in.DisplayName, in.Skills, in.VehicleType, location)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ports.ErrValidation)
	}

	err = s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		return s.responders.Create(txCtx, res)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"responder_id": res.ID,
		"user_id":      res.UserID,
	}).Info("Responder registered")

	return res, nil
}

// List returns every registered responder.
func (s *Service) List(ctx context.Context) ([]*responder.Responder, error) {
	return s.responders.List(ctx)
}

// SetAvailability flips whether the responder is eligible for dispatch.
func (s *Service) SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*responder.Responder, error) {
	var updated *responder.Responder

	err := s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.responders.SetAvailability(txCtx, id, available); err != nil {
			return err
		}
		res, err := s.responders.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		updated = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"responder_id": id,
		"available":    available,
	}).Info("Responder availability updated")

	return updated, nil
}

// UpdateLocation records a fresh position report.
func (s *Service) UpdateLocation(ctx context.Context, id uuid.UUID, latitude, longitude float64) (*responder.Responder, error) {
	location, err := geo.NewPoint(latitude, longitude)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ports.ErrValidation)
	}

	var updated *responder.Responder

	err = s.uow.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.responders.UpdateLocation(txCtx, id, location); err != nil {
			return err
		}
		res, err := s.responders.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		updated = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
