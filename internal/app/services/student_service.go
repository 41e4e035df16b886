package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sekolahku/siswa-api/internal/app/models"
	"github.com/sekolahku/siswa-api/internal/app/models/dto"
	"github.com/sekolahku/siswa-api/internal/app/repositories"
	"github.com/sekolahku/siswa-api/internal/pkg/apperrors"
	"github.com/sekolahku/siswa-api/internal/pkg/validation"
)

// Field length limits for student records
const (
	studentNISMaxLength     = 8
	studentNameMaxLength    = 255
	studentEmailMaxLength   = 255
	studentPhoneMaxLength   = 15
	studentAddressMaxLength = 255
	studentPlaceMaxLength   = 255
	studentClassMaxLength   = 50
)

// StudentService handles student management operations
type StudentService interface {
	GetAllStudents(ctx context.Context) ([]*models.Student, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	CreateStudent(ctx context.Context, req *dto.StudentRequest, createdBy int64) (*models.Student, error)
	UpdateStudent(ctx context.Context, id int64, req *dto.StudentRequest) (*models.Student, error)
	DeleteStudent(ctx context.Context, id int64) error
}

type studentService struct {
	studentRepo repositories.IStudentRepository
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo repositories.IStudentRepository) StudentService {
	return &studentService{
		studentRepo: studentRepo,
	}
}

// GetAllStudents retrieves all students with their creator embedded
func (s *studentService) GetAllStudents(ctx context.Context) ([]*models.Student, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	return students, nil
}

// GetStudentByID retrieves a student by ID with its creator embedded
func (s *studentService) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// normalizeOptional collapses blank optional strings to nil
func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// validateStudent checks every field constraint and aggregates all
// violations. excludeID is the record being updated, 0 on create.
func (s *studentService) validateStudent(ctx context.Context, req *dto.StudentRequest, excludeID int64) (dateOfBirth time.Time, phone, address *string, verr error, err error) {
	v := validation.NewErrors()

	if v.Required("nis", req.NIS) {
		v.MaxLen("nis", req.NIS, studentNISMaxLength)
		exists, checkErr := s.studentRepo.NISExists(ctx, req.NIS, excludeID)
		if checkErr != nil {
			return time.Time{}, nil, nil, nil, fmt.Errorf("error checking nis uniqueness: %w", checkErr)
		}
		if exists {
			v.Taken("nis")
		}
	}

	if v.Required("name", req.Name) {
		v.MaxLen("name", req.Name, studentNameMaxLength)
	}

	if v.Required("email", req.Email) {
		v.MaxLen("email", req.Email, studentEmailMaxLength)
		v.Email("email", req.Email)
		exists, checkErr := s.studentRepo.EmailExists(ctx, req.Email, excludeID)
		if checkErr != nil {
			return time.Time{}, nil, nil, nil, fmt.Errorf("error checking email uniqueness: %w", checkErr)
		}
		if exists {
			v.Taken("email")
		}
	}

	phone = normalizeOptional(req.Phone)
	if phone != nil {
		v.MaxLen("phone", *phone, studentPhoneMaxLength)
		exists, checkErr := s.studentRepo.PhoneExists(ctx, *phone, excludeID)
		if checkErr != nil {
			return time.Time{}, nil, nil, nil, fmt.Errorf("error checking phone uniqueness: %w", checkErr)
		}
		if exists {
			v.Taken("phone")
		}
	}

	address = normalizeOptional(req.Address)
	if address != nil {
		v.MaxLen("address", *address, studentAddressMaxLength)
	}

	if v.Required("date_of_birth", req.DateOfBirth) {
		dateOfBirth, _ = v.Date("date_of_birth", req.DateOfBirth)
	}

	if v.Required("place_of_birth", req.PlaceOfBirth) {
		v.MaxLen("place_of_birth", req.PlaceOfBirth, studentPlaceMaxLength)
	}

	if v.Required("class_name", req.ClassName) {
		v.MaxLen("class_name", req.ClassName, studentClassMaxLength)
	}

	if v.Has() {
		return time.Time{}, nil, nil, apperrors.NewValidationError(v.Fields()), nil
	}

	return dateOfBirth, phone, address, nil, nil
}

// mapUniquenessRace reports a duplicate from the storage constraint in
// the same per-field form the pre-check would have produced
func mapUniquenessRace(err error) error {
	v := validation.NewErrors()
	switch {
	case errors.Is(err, apperrors.ErrNISAlreadyExists):
		v.Taken("nis")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		v.Taken("email")
	case errors.Is(err, apperrors.ErrPhoneAlreadyExists):
		v.Taken("phone")
	default:
		return err
	}
	return apperrors.NewValidationError(v.Fields())
}

// CreateStudent validates and persists a new student. created_by is
// stamped here from the authenticated caller; the request can never
// carry it.
func (s *studentService) CreateStudent(ctx context.Context, req *dto.StudentRequest, createdBy int64) (*models.Student, error) {
	dateOfBirth, phone, address, verr, err := s.validateStudent(ctx, req, 0)
	if err != nil {
		return nil, err
	}
	if verr != nil {
		return nil, verr
	}

	student := &models.Student{
		NIS:          req.NIS,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        phone,
		Address:      address,
		DateOfBirth:  dateOfBirth,
		PlaceOfBirth: req.PlaceOfBirth,
		ClassName:    req.ClassName,
		CreatedBy:    createdBy,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, mapUniquenessRace(err)
	}

	// Reload with the creator embedded for the response
	return s.studentRepo.GetByID(ctx, student.ID)
}

// UpdateStudent validates and overwrites a student's mutable fields.
// created_by is never altered.
func (s *studentService) UpdateStudent(ctx context.Context, id int64, req *dto.StudentRequest) (*models.Student, error) {
	existing, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dateOfBirth, phone, address, verr, err := s.validateStudent(ctx, req, id)
	if err != nil {
		return nil, err
	}
	if verr != nil {
		return nil, verr
	}

	existing.NIS = req.NIS
	existing.Name = req.Name
	existing.Email = req.Email
	existing.Phone = phone
	existing.Address = address
	existing.DateOfBirth = dateOfBirth
	existing.PlaceOfBirth = req.PlaceOfBirth
	existing.ClassName = req.ClassName

	if err := s.studentRepo.Update(ctx, existing); err != nil {
		return nil, mapUniquenessRace(err)
	}

	return s.studentRepo.GetByID(ctx, id)
}

// DeleteStudent deletes a student by ID
func (s *studentService) DeleteStudent(ctx context.Context, id int64) error {
	return s.studentRepo.Delete(ctx, id)
}
