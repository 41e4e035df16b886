package dto

import (
	"time"

	"github.com/sekolahku/siswa-api/internal/app/models"
	"github.com/sekolahku/siswa-api/internal/pkg/validation"
)

// StudentRequest defines the payload for creating or updating a
// student. created_by is deliberately absent: it is stamped from the
// authenticated caller and never accepted from input.
type StudentRequest struct {
	NIS          string  `json:"nis" example:"12345678"`
	Name         string  `json:"name" example:"John Doe"`
	Email        string  `json:"email" example:"john@example.com"`
	Phone        *string `json:"phone,omitempty" example:"08123456789"`
	Address      *string `json:"address,omitempty" example:"Jl. Mawar No. 1"`
	DateOfBirth  string  `json:"date_of_birth" example:"2000-01-01"`
	PlaceOfBirth string  `json:"place_of_birth" example:"Jakarta"`
	ClassName    string  `json:"class_name" example:"XII IPA 1"`
}

// StudentResponse is the wire representation of a student
type StudentResponse struct {
	ID           int64         `json:"id" example:"1"`
	NIS          string        `json:"nis" example:"12345678"`
	Name         string        `json:"name" example:"John Doe"`
	Email        string        `json:"email" example:"john@example.com"`
	Phone        *string       `json:"phone"`
	Address      *string       `json:"address"`
	DateOfBirth  string        `json:"date_of_birth" example:"2000-01-01"`
	PlaceOfBirth string        `json:"place_of_birth" example:"Jakarta"`
	ClassName    string        `json:"class_name" example:"XII IPA 1"`
	CreatedBy    int64         `json:"created_by" example:"1"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	Creator      *UserResponse `json:"creator,omitempty"`
}

// NewStudentResponse maps a student model to its wire representation
func NewStudentResponse(student *models.Student) *StudentResponse {
	if student == nil {
		return nil
	}
	return &StudentResponse{
		ID:           student.ID,
		NIS:          student.NIS,
		Name:         student.Name,
		Email:        student.Email,
		Phone:        student.Phone,
		Address:      student.Address,
		DateOfBirth:  student.DateOfBirth.Format(validation.DateFormat),
		PlaceOfBirth: student.PlaceOfBirth,
		ClassName:    student.ClassName,
		CreatedBy:    student.CreatedBy,
		CreatedAt:    student.CreatedAt,
		UpdatedAt:    student.UpdatedAt,
		Creator:      NewUserResponse(student.Creator),
	}
}

// NewStudentListResponse maps a slice of student models
func NewStudentListResponse(students []*models.Student) []*StudentResponse {
	responses := make([]*StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, NewStudentResponse(student))
	}
	return responses
}
