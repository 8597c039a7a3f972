package usecase

import (
	"context"
	"errors"

	"clinic-scheduler/internal/converter"
	"clinic-scheduler/internal/delivery/dto"
	"clinic-scheduler/internal/domain/entity"
	"clinic-scheduler/internal/domain/repository"
	"clinic-scheduler/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrDoctorExists = errors.New("a doctor with this email or license number already exists")

// DoctorUsecase is the catalog admin surface: doctors, their specialty links
// and the specialty list itself.
type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, publicID string) (*dto.DoctorResponse, error)
	ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	CreateSpecialty(ctx context.Context, req *dto.CreateSpecialtyRequest) (*dto.SpecialtyResponse, error)
	ListSpecialties(ctx context.Context) (*dto.SpecialtyListResponse, error)
}

type doctorUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	doctorRepo    repository.DoctorRepository
	specialtyRepo repository.SpecialtyRepository
	userRepo      repository.UserRepository
	recorder      service.Recorder
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	specialtyRepo repository.SpecialtyRepository,
	userRepo repository.UserRepository,
	recorder service.Recorder,
) DoctorUsecase {
	return &doctorUsecase{
		db:            db,
		log:           log,
		doctorRepo:    doctorRepo,
		specialtyRepo: specialtyRepo,
		userRepo:      userRepo,
		recorder:      recorder,
	}
}

// CreateDoctor provisions the identity row, the doctor row and the specialty
// links in one transaction. Exactly one of the linked specialties is primary.
func (u *doctorUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	actorID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	primaryLinked := false
	for _, id := range req.SpecialtyIDs {
		specialty, err := u.specialtyRepo.FindByID(u.db.WithContext(ctx), id)
		if err != nil {
			u.log.Warnf("Failed to find specialty %d: %+v", id, err)
			return nil, err
		}
		if specialty == nil {
			return nil, ErrSpecialtyNotFound
		}
		if id == req.PrimaryID {
			primaryLinked = true
		}
	}
	if !primaryLinked {
		return nil, ErrSpecialtyNotLinked
	}

	active := true
	user := &entity.User{
		ID:       uuid.New(),
		RoleID:   entity.RoleIDDoctor,
		Email:    req.Email,
		FullName: req.FullName,
		IsActive: &active,
	}
	doctor := &entity.Doctor{
		UserID:        user.ID,
		LicenseNumber: req.LicenseNumber,
		IsActive:      &active,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.userRepo.Create(tx, user); err != nil {
			return err
		}
		if err := u.doctorRepo.Create(tx, doctor); err != nil {
			return err
		}
		for _, id := range req.SpecialtyIDs {
			link := &entity.DoctorSpecialty{
				DoctorID:    doctor.ID,
				SpecialtyID: id,
				IsPrimary:   id == req.PrimaryID,
			}
			if err := u.doctorRepo.AssignSpecialty(tx, link); err != nil {
				return err
			}
		}
		return u.recorder.RecordCreate(tx, &actorID, entity.AuditActionDoctorCreate,
			"doctors", doctor.PublicID,
			entity.JSON{
				"email":          req.Email,
				"full_name":      req.FullName,
				"license_number": req.LicenseNumber,
				"specialty_ids":  req.SpecialtyIDs,
			},
			requestMeta(ctx))
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDoctorExists
		}
		u.log.Warnf("Failed to create doctor %s: %+v", req.Email, err)
		return nil, err
	}

	u.log.Infof("Doctor created: id=%s, license=%s", doctor.PublicID, req.LicenseNumber)
	return u.GetDoctor(ctx, doctor.PublicID)
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, publicID string) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByPublicID(u.db.WithContext(ctx), publicID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", publicID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) ListDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) CreateSpecialty(ctx context.Context, req *dto.CreateSpecialtyRequest) (*dto.SpecialtyResponse, error) {
	actorID, err := actorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	active := true
	specialty := &entity.Specialty{
		Name:     req.Name,
		BaseFee:  req.BaseFee,
		IsActive: &active,
	}

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.specialtyRepo.Create(tx, specialty); err != nil {
			return err
		}
		return u.recorder.RecordCreate(tx, &actorID, entity.AuditActionSpecialtyCreate,
			"specialties", req.Name,
			entity.JSON{"name": req.Name, "base_fee": req.BaseFee.String()},
			requestMeta(ctx))
	})
	if err != nil {
		u.log.Warnf("Failed to create specialty %s: %+v", req.Name, err)
		return nil, err
	}

	u.log.Infof("Specialty created: id=%d, name=%s", specialty.ID, specialty.Name)
	return converter.SpecialtyToResponse(specialty), nil
}

func (u *doctorUsecase) ListSpecialties(ctx context.Context) (*dto.SpecialtyListResponse, error) {
	specialties, err := u.specialtyRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list specialties: %+v", err)
		return nil, err
	}

	return &dto.SpecialtyListResponse{
		Specialties: converter.SpecialtiesToResponses(specialties),
		Total:       len(specialties),
	}, nil
}
