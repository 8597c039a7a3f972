package usecase

import (
	"context"

	"clinic-scheduler/internal/availability"
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/repository"
	"clinic-scheduler/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AvailabilityUsecase interface {
	GetAvailability(ctx context.Context, doctorPublicID, startDate, endDate string) (*dto.AvailabilityResponse, error)
}

type availabilityUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	maxRangeDays int
	doctorRepo   repository.DoctorRepository
	slotRepo     repository.TimeSlotRepository
	templateRepo repository.AvailabilityTemplateRepository
	blockRepo    repository.TimeBlockRepository
	apptRepo     repository.AppointmentRepository
	cache        *service.AvailabilityCache
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	maxRangeDays int,
	doctorRepo repository.DoctorRepository,
	slotRepo repository.TimeSlotRepository,
	templateRepo repository.AvailabilityTemplateRepository,
	blockRepo repository.TimeBlockRepository,
	apptRepo repository.AppointmentRepository,
	cache *service.AvailabilityCache,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:           db,
		log:          log,
		maxRangeDays: maxRangeDays,
		doctorRepo:   doctorRepo,
		slotRepo:     slotRepo,
		templateRepo: templateRepo,
		blockRepo:    blockRepo,
		apptRepo:     apptRepo,
		cache:        cache,
	}
}

// GetAvailability answers which of the doctor's template slots are open over
// the inclusive [startDate, endDate] range. A pure read: blocks and active
// bookings are subtracted from the weekly template and every template-eligible
// cell is reported either way.
func (u *availabilityUsecase) GetAvailability(ctx context.Context, doctorPublicID, startDate, endDate string) (*dto.AvailabilityResponse, error) {
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
	if int(end.Sub(start).Hours()/24) >= u.maxRangeDays {
		return nil, ErrRangeTooLarge
	}

	doctor, err := u.doctorRepo.FindByPublicID(u.db.WithContext(ctx), doctorPublicID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorPublicID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	// The version observed here is the one the grid below is stored under, so
	// a mutation committed while we read the DB orphans our Set.
	cacheVersion := int64(-1)
	if u.cache != nil {
		var cached dto.AvailabilityResponse
		var hit bool
		if cacheVersion, hit = u.cache.Get(ctx, doctor.ID, startDate, endDate, &cached); hit {
			return &cached, nil
		}
	}

	slots, err := u.slotRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to load slot catalog: %+v", err)
		return nil, err
	}

	entries, err := u.templateRepo.FindEnabledByDoctor(u.db.WithContext(ctx), doctor.ID)
	if err != nil {
		u.log.Warnf("Failed to load template for doctor %s: %+v", doctor.ID, err)
		return nil, err
	}

	blocks, err := u.blockRepo.FindByDoctorAndRange(u.db.WithContext(ctx), doctor.ID, start, end)
	if err != nil {
		u.log.Warnf("Failed to load time blocks for doctor %s: %+v", doctor.ID, err)
		return nil, err
	}

	booked, err := u.apptRepo.FindActiveByDoctorAndRange(u.db.WithContext(ctx), doctor.ID, start, end)
	if err != nil {
		u.log.Warnf("Failed to load active bookings for doctor %s: %+v", doctor.ID, err)
		return nil, err
	}

	catalog := make([]availability.Slot, len(slots))
	for i, s := range slots {
		catalog[i] = availability.Slot{ID: s.ID, StartTime: s.StartTime, EndTime: s.EndTime}
	}
	templateEntries := make([]availability.TemplateEntry, len(entries))
	for i, e := range entries {
		templateEntries[i] = availability.TemplateEntry{Weekday: e.Weekday, SlotID: e.SlotID}
	}
	blocked := make([]availability.Block, len(blocks))
	for i, b := range blocks {
		blocked[i] = availability.Block{Date: b.BlockDate, SlotID: b.SlotID}
	}
	taken := make([]availability.Booking, len(booked))
	for i, a := range booked {
		taken[i] = availability.Booking{Date: a.AppointmentDate, SlotID: a.SlotID}
	}

	grid := availability.Grid(start, end, catalog, templateEntries, blocked, taken)

	cells := make([]dto.AvailabilitySlotResponse, len(grid))
	for i, cell := range grid {
		cells[i] = dto.AvailabilitySlotResponse{
			Date:        cell.Date.Format(dateLayout),
			SlotID:      cell.SlotID,
			StartTime:   cell.StartTime,
			EndTime:     cell.EndTime,
			IsAvailable: cell.Available,
		}
	}

	resp := &dto.AvailabilityResponse{
		DoctorID:  doctor.PublicID,
		StartDate: startDate,
		EndDate:   endDate,
		Slots:     cells,
		Total:     len(cells),
	}

	if u.cache != nil {
		u.cache.Set(ctx, doctor.ID, cacheVersion, startDate, endDate, resp)
	}

	return resp, nil
}
