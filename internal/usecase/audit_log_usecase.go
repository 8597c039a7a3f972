package usecase

import (
	"context"

	"clinic-scheduler/internal/converter"
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditLogUsecase is the admin read side of the audit store.
type AuditLogUsecase interface {
	GetAll(ctx context.Context) (*dto.AuditEntryListResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.AuditEntryResponse, error)
}

type auditLogUsecase struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditRepository
}

func NewAuditLogUsecase(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditRepository) AuditLogUsecase {
	return &auditLogUsecase{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

func (u *auditLogUsecase) GetAll(ctx context.Context) (*dto.AuditEntryListResponse, error) {
	entries, err := u.auditRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list audit entries: %+v", err)
		return nil, err
	}

	return &dto.AuditEntryListResponse{
		Entries: converter.AuditEntriesToResponses(entries),
		Total:   len(entries),
	}, nil
}

func (u *auditLogUsecase) GetByID(ctx context.Context, id int64) (*dto.AuditEntryResponse, error) {
	entry, err := u.auditRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find audit entry %d: %+v", id, err)
		return nil, err
	}
	if entry == nil {
		return nil, ErrAuditEntryNotFound
	}

	return converter.AuditEntryToResponse(entry), nil
}
