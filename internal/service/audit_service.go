package service

import (
	"context"

	"hotel-ortus/internal/domain/entity"
	"hotel-ortus/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const auditEntityBooking = "booking"

// AuditService records who changed what. A nil actor means the system did it.
type AuditService interface {
	LogBookingChange(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action string, bookingID uuid.UUID, oldValue, newValue interface{}) error
	LogUserAction(ctx context.Context, tx *gorm.DB, userID uuid.UUID, action string, details entity.JSON) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) LogBookingChange(ctx context.Context, tx *gorm.DB, actorID *uuid.UUID, action string, bookingID uuid.UUID, oldValue, newValue interface{}) error {
	metadata := entity.JSON{
		"entity":    auditEntityBooking,
		"entity_id": bookingID.String(),
		"old_value": oldValue,
		"new_value": newValue,
	}
	if actorID == nil {
		metadata["actor"] = "system"
	}

	return s.write(tx.WithContext(ctx), &entity.AuditLog{
		UserID:   actorID,
		Action:   action,
		Metadata: metadata,
	})
}

func (s *auditService) LogUserAction(ctx context.Context, tx *gorm.DB, userID uuid.UUID, action string, details entity.JSON) error {
	return s.write(tx.WithContext(ctx), &entity.AuditLog{
		UserID:   &userID,
		Action:   action,
		Metadata: details,
	})
}

func (s *auditService) write(tx *gorm.DB, auditLog *entity.AuditLog) error {
	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log %s: %+v", auditLog.Action, err)
		return err
	}
	return nil
}
