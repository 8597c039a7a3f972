package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-scheduler/internal/converter"
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/delivery/http/middleware"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"
	"clinic-scheduler/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const slotTimeLayout = "15:04"

// ScheduleUsecase manages the inputs of availability: the global slot
// catalog, each doctor's weekly template and the per-date time blocks.
// Admins may edit any doctor's schedule; doctors only their own.
type ScheduleUsecase interface {
	CreateTimeSlot(ctx context.Context, req *dto.CreateTimeSlotRequest) (*dto.TimeSlotResponse, error)
	ListTimeSlots(ctx context.Context) (*dto.TimeSlotListResponse, error)
	DeleteTimeSlot(ctx context.Context, id int) error

	GetTemplate(ctx context.Context, doctorPublicID string) (*dto.TemplateResponse, error)
	UpsertTemplateEntry(ctx context.Context, doctorPublicID string, req *dto.UpsertTemplateEntryRequest) (*dto.TemplateResponse, error)
	DeleteTemplateEntry(ctx context.Context, doctorPublicID string, weekday, slotID int) error

	CreateTimeBlock(ctx context.Context, doctorPublicID string, req *dto.CreateTimeBlockRequest) (*dto.TimeBlockResponse, error)
	ListTimeBlocks(ctx context.Context, doctorPublicID, startDate, endDate string) (*dto.TimeBlockListResponse, error)
	DeleteTimeBlock(ctx context.Context, doctorPublicID string, blockID int) error
}

type scheduleUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	slotRepo     repository.TimeSlotRepository
	templateRepo repository.AvailabilityTemplateRepository
	blockRepo    repository.TimeBlockRepository
	doctorRepo   repository.DoctorRepository
	recorder     service.Recorder
	cache        *service.AvailabilityCache
}

func NewScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	slotRepo repository.TimeSlotRepository,
	templateRepo repository.AvailabilityTemplateRepository,
	blockRepo repository.TimeBlockRepository,
	doctorRepo repository.DoctorRepository,
	recorder service.Recorder,
	cache *service.AvailabilityCache,
) ScheduleUsecase {
	return &scheduleUsecase{
		db:           db,
		log:          log,
		slotRepo:     slotRepo,
		templateRepo: templateRepo,
		blockRepo:    blockRepo,
		doctorRepo:   doctorRepo,
		recorder:     recorder,
		cache:        cache,
	}
}

// Slot catalog

func (u *scheduleUsecase) CreateTimeSlot(ctx context.Context, req *dto.CreateTimeSlotRequest) (*dto.TimeSlotResponse, error) {
	actorID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	start, err := time.Parse(slotTimeLayout, req.StartTime)
	if err != nil {
		return nil, ErrInvalidSlotTime
	}
	end, err := time.Parse(slotTimeLayout, req.EndTime)
	if err != nil {
		return nil, ErrInvalidSlotTime
	}
	if !end.After(start) {
		return nil, ErrSlotEndNotAfter
	}

	slot := &entity.TimeSlot{
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationMinutes: int(end.Sub(start).Minutes()),
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.slotRepo.Create(tx, slot); err != nil {
			return err
		}
		return u.recorder.RecordCreate(tx, &actorID, entity.AuditActionSlotCreate,
			"time_slots", req.StartTime+"-"+req.EndTime,
			entity.JSON{"start_time": slot.StartTime, "end_time": slot.EndTime, "duration_minutes": slot.DurationMinutes},
			requestMeta(ctx))
	})
	if err != nil {
		u.log.Warnf("Failed to create time slot %s-%s: %+v", req.StartTime, req.EndTime, err)
		return nil, err
	}

	u.log.Infof("Time slot created: id=%d, %s-%s", slot.ID, slot.StartTime, slot.EndTime)
	return converter.TimeSlotToResponse(slot), nil
}

func (u *scheduleUsecase) ListTimeSlots(ctx context.Context) (*dto.TimeSlotListResponse, error) {
	slots, err := u.slotRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list time slots: %+v", err)
		return nil, err
	}

	return &dto.TimeSlotListResponse{
		Slots: converter.TimeSlotsToResponses(slots),
		Total: len(slots),
	}, nil
}

func (u *scheduleUsecase) DeleteTimeSlot(ctx context.Context, id int) error {
	actorID, err := actorFromContext(ctx)
	if err != nil {
		return err
	}

	slot, err := u.slotRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find time slot %d: %+v", id, err)
		return err
	}
	if slot == nil {
		return ErrSlotNotFound
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.slotRepo.Delete(tx, id); err != nil {
			return err
		}
		return u.recorder.RecordDelete(tx, &actorID, entity.AuditActionSlotDelete,
			"time_slots", slot.StartTime+"-"+slot.EndTime,
			entity.JSON{"start_time": slot.StartTime, "end_time": slot.EndTime},
			requestMeta(ctx))
	})
	if err != nil {
		u.log.Warnf("Failed to delete time slot %d: %+v", id, err)
		return err
	}

	u.log.Infof("Time slot deleted: id=%d", id)
	return nil
}

// Weekly template

func (u *scheduleUsecase) GetTemplate(ctx context.Context, doctorPublicID string) (*dto.TemplateResponse, error) {
	doctor, err := u.findDoctor(ctx, doctorPublicID)
	if err != nil {
		return nil, err
	}

	entries, err := u.templateRepo.FindByDoctor(u.db.WithContext(ctx), doctor.ID)
	if err != nil {
		u.log.Warnf("Failed to load template for doctor %s: %+v", doctorPublicID, err)
		return nil, err
	}

	return converter.TemplateToResponse(doctor.PublicID, entries), nil
}

func (u *scheduleUsecase) UpsertTemplateEntry(ctx context.Context, doctorPublicID string, req *dto.UpsertTemplateEntryRequest) (*dto.TemplateResponse, error) {
	actorID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	doctor, err := u.findDoctorForWrite(ctx, actorID, doctorPublicID)
	if err != nil {
		return nil, err
	}

	slot, err := u.slotRepo.FindByID(u.db.WithContext(ctx), req.SlotID)
	if err != nil {
		u.log.Warnf("Failed to find slot %d: %+v", req.SlotID, err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}

	entry := &entity.AvailabilityTemplate{
		DoctorID:  doctor.ID,
		Weekday:   req.Weekday,
		SlotID:    req.SlotID,
		IsEnabled: *req.IsEnabled,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.templateRepo.Upsert(tx, entry); err != nil {
			return err
		}
		return u.recorder.RecordUpdate(tx, &actorID, entity.AuditActionTemplateUpsert,
			"availability_templates", doctor.PublicID,
			nil,
			entity.JSON{"weekday": req.Weekday, "slot_id": req.SlotID, "is_enabled": *req.IsEnabled},
			requestMeta(ctx))
	})
	if err != nil {
		u.log.Warnf("Failed to upsert template entry for doctor %s: %+v", doctorPublicID, err)
		return nil, err
	}

	u.cache.Invalidate(ctx, doctor.ID)
	u.log.Infof("Template entry upserted: doctor=%s, weekday=%d, slot=%d, enabled=%t",
		doctorPublicID, req.Weekday, req.SlotID, *req.IsEnabled)

	return u.GetTemplate(ctx, doctorPublicID)
}

func (u *scheduleUsecase) DeleteTemplateEntry(ctx context.Context, doctorPublicID string, weekday, slotID int) error {
	actorID, err := actorFromContext(ctx)
	if err != nil {
		return err
	}

	doctor, err := u.findDoctorForWrite(ctx, actorID, doctorPublicID)
	if err != nil {
		return err
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows, err := u.templateRepo.Delete(tx, doctor.ID, weekday, slotID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrSlotNotFound
		}
		return u.recorder.RecordDelete(tx, &actorID, entity.AuditActionTemplateDelete,
			"availability_templates", doctor.PublicID,
			entity.JSON{"weekday": weekday, "slot_id": slotID},
			requestMeta(ctx))
	})
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) {
			return ErrSlotNotFound
		}
		u.log.Warnf("Failed to delete template entry for doctor %s: %+v", doctorPublicID, err)
		return err
	}

	u.cache.Invalidate(ctx, doctor.ID)
	u.log.Infof("Template entry deleted: doctor=%s, weekday=%d, slot=%d", doctorPublicID, weekday, slotID)
	return nil
}

// Time blocks

func (u *scheduleUsecase) CreateTimeBlock(ctx context.Context, doctorPublicID string, req *dto.CreateTimeBlockRequest) (*dto.TimeBlockResponse, error) {
	actorID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	doctor, err := u.findDoctorForWrite(ctx, actorID, doctorPublicID)
	if err != nil {
		return nil, err
	}

	blockDate, err := parseDate(req.BlockDate)
	if err != nil {
		return nil, err
	}

	slot, err := u.slotRepo.FindByID(u.db.WithContext(ctx), req.SlotID)
	if err != nil {
		u.log.Warnf("Failed to find slot %d: %+v", req.SlotID, err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}

	block := &entity.TimeBlock{
		DoctorID:  doctor.ID,
		BlockDate: blockDate,
		SlotID:    req.SlotID,
		Reason:    req.Reason,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.blockRepo.Create(tx, block); err != nil {
			return err
		}
		return u.recorder.RecordCreate(tx, &actorID, entity.AuditActionBlockCreate,
			"time_blocks", doctor.PublicID,
			entity.JSON{"block_date": req.BlockDate, "slot_id": req.SlotID, "reason": req.Reason},
			requestMeta(ctx))
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrBlockExists
		}
		u.log.Warnf("Failed to create time block for doctor %s on %s: %+v", doctorPublicID, req.BlockDate, err)
		return nil, err
	}

	u.cache.Invalidate(ctx, doctor.ID)
	u.log.Infof("Time block created: doctor=%s, date=%s, slot=%d", doctorPublicID, req.BlockDate, req.SlotID)

	return converter.TimeBlockToResponse(block, doctor.PublicID), nil
}

func (u *scheduleUsecase) ListTimeBlocks(ctx context.Context, doctorPublicID, startDate, endDate string) (*dto.TimeBlockListResponse, error) {
	doctor, err := u.findDoctor(ctx, doctorPublicID)
	if err != nil {
		return nil, err
	}

	start, err := parseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(endDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	blocks, err := u.blockRepo.FindByDoctorAndRange(u.db.WithContext(ctx), doctor.ID, start, end)
	if err != nil {
		u.log.Warnf("Failed to list time blocks for doctor %s: %+v", doctorPublicID, err)
		return nil, err
	}

	return &dto.TimeBlockListResponse{
		Blocks: converter.TimeBlocksToResponses(blocks, doctor.PublicID),
		Total:  len(blocks),
	}, nil
}

func (u *scheduleUsecase) DeleteTimeBlock(ctx context.Context, doctorPublicID string, blockID int) error {
	actorID, err := actorFromContext(ctx)
	if err != nil {
		return err
	}

	doctor, err := u.findDoctorForWrite(ctx, actorID, doctorPublicID)
	if err != nil {
		return err
	}

	block, err := u.blockRepo.FindByID(u.db.WithContext(ctx), blockID)
	if err != nil {
		u.log.Warnf("Failed to find time block %d: %+v", blockID, err)
		return err
	}
	if block == nil || block.DoctorID != doctor.ID {
		return ErrBlockNotFound
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.blockRepo.Delete(tx, blockID); err != nil {
			return err
		}
		return u.recorder.RecordDelete(tx, &actorID, entity.AuditActionBlockDelete,
			"time_blocks", doctor.PublicID,
			entity.JSON{"block_date": block.BlockDate.Format(dateLayout), "slot_id": block.SlotID},
			requestMeta(ctx))
	})
	if err != nil {
		u.log.Warnf("Failed to delete time block %d: %+v", blockID, err)
		return err
	}

	u.cache.Invalidate(ctx, doctor.ID)
	u.log.Infof("Time block deleted: doctor=%s, id=%d", doctorPublicID, blockID)
	return nil
}

// Helpers

func (u *scheduleUsecase) findDoctor(ctx context.Context, publicID string) (*entity.Doctor, error) {
	doctor, err := u.doctorRepo.FindByPublicID(u.db.WithContext(ctx), publicID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", publicID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}

// findDoctorForWrite resolves the doctor and enforces the schedule ownership
// rule: doctors edit only their own schedule, admins edit any.
func (u *scheduleUsecase) findDoctorForWrite(ctx context.Context, actorID uuid.UUID, publicID string) (*entity.Doctor, error) {
	doctor, err := u.findDoctor(ctx, publicID)
	if err != nil {
		return nil, err
	}

	roleID, _ := middleware.GetRoleIDFromContext(ctx)
	if roleID == entity.RoleIDAdmin {
		return doctor, nil
	}
	if doctor.UserID != actorID {
		return nil, ErrNotOwned
	}
	return doctor, nil
}
