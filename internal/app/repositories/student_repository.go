package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sekolahku/siswa-api/internal/app/models"
	"github.com/sekolahku/siswa-api/internal/pkg/apperrors"
	"github.com/sekolahku/siswa-api/internal/pkg/dberrors"
)

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

const studentWithCreatorColumns = `
	s.id, s.nis, s.name, s.email, s.phone, s.address,
	s.date_of_birth, s.place_of_birth, s.class_name, s.created_by,
	s.created_at, s.updated_at,
	u.id, u.name, u.email, u.password, u.created_at, u.updated_at
`

// scanStudentWithCreator scans a joined student row with its creator
func scanStudentWithCreator(row pgx.Row) (*models.Student, error) {
	var student models.Student
	var creator models.User

	err := row.Scan(
		&student.ID,
		&student.NIS,
		&student.Name,
		&student.Email,
		&student.Phone,
		&student.Address,
		&student.DateOfBirth,
		&student.PlaceOfBirth,
		&student.ClassName,
		&student.CreatedBy,
		&student.CreatedAt,
		&student.UpdatedAt,
		&creator.ID,
		&creator.Name,
		&creator.Email,
		&creator.Password,
		&creator.CreatedAt,
		&creator.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	student.Creator = &creator
	return &student, nil
}

// GetAll retrieves all students with their creator embedded
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	query := `
		SELECT ` + studentWithCreatorColumns + `
		FROM students s
		JOIN users u ON u.id = s.created_by
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudentWithCreator(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// GetByID retrieves a student by ID with its creator embedded
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT ` + studentWithCreatorColumns + `
		FROM students s
		JOIN users u ON u.id = s.created_by
		WHERE s.id = $1
	`

	student, err := scanStudentWithCreator(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// NISExists checks if a nis is already used by a student other than
// excludeID. Pass 0 to check against all students.
func (r *StudentRepository) NISExists(ctx context.Context, nis string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE nis = $1 AND id != $2)`,
		nis, excludeID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking nis existence: %w", err)
	}

	return exists, nil
}

// EmailExists checks if an email is already used by another student
func (r *StudentRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE email = $1 AND id != $2)`,
		email, excludeID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}

	return exists, nil
}

// PhoneExists checks if a phone number is already used by another student
func (r *StudentRepository) PhoneExists(ctx context.Context, phone string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE phone = $1 AND id != $2)`,
		phone, excludeID).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking phone existence: %w", err)
	}

	return exists, nil
}

// mapStudentConstraintError translates a unique violation on one of the
// students constraints into its sentinel. The constraints are the
// authority under concurrent writes; pre-checks only make messages nicer.
func mapStudentConstraintError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, "students_nis_key"):
		return apperrors.ErrNISAlreadyExists
	case dberrors.IsDuplicateConstraintError(err, "students_email_key"):
		return apperrors.ErrEmailAlreadyExists
	case dberrors.IsDuplicateConstraintError(err, "students_phone_key"):
		return apperrors.ErrPhoneAlreadyExists
	default:
		return nil
	}
}

// Create inserts a new student. created_by must already be set by the caller.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (nis, name, email, phone, address, date_of_birth, place_of_birth, class_name, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		student.NIS,
		student.Name,
		student.Email,
		student.Phone,
		student.Address,
		student.DateOfBirth,
		student.PlaceOfBirth,
		student.ClassName,
		student.CreatedBy,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)

	if err != nil {
		if mapped := mapStudentConstraintError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// Update overwrites a student's mutable fields. created_by is not part
// of the statement and cannot change.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET nis = $1, name = $2, email = $3, phone = $4, address = $5,
		    date_of_birth = $6, place_of_birth = $7, class_name = $8,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $9
		RETURNING created_by, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		student.NIS,
		student.Name,
		student.Email,
		student.Phone,
		student.Address,
		student.DateOfBirth,
		student.PlaceOfBirth,
		student.ClassName,
		student.ID,
	).Scan(&student.CreatedBy, &student.CreatedAt, &student.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrStudentNotFound
		}
		if mapped := mapStudentConstraintError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("error updating student: %w", err)
	}

	return nil
}

// Delete removes a student by ID
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
