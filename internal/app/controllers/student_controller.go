package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sekolahku/siswa-api/internal/app/models/dto"
	"github.com/sekolahku/siswa-api/internal/app/services"
	"github.com/sekolahku/siswa-api/internal/middleware"
)

// StudentController handles student management endpoints
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// Index returns all students with their creator embedded
func (c *StudentController) Index(ctx *gin.Context) {
	students, err := c.studentService.GetAllStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err, "An error occurred while fetching students.")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStudentListResponse(students))
}

// Show returns one student by ID with its creator embedded
func (c *StudentController) Show(ctx *gin.Context) {
	id, ok := parseID(ctx, "Student not found.")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudentByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "An error occurred while fetching the student.")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStudentResponse(student))
}

// Store creates a new student attributed to the authenticated caller
func (c *StudentController) Store(ctx *gin.Context) {
	var req dto.StudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse("Invalid request body."))
		return
	}

	createdBy := ctx.GetInt64(middleware.ContextUserIDKey)

	student, err := c.studentService.CreateStudent(ctx.Request.Context(), &req, createdBy)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "An error occurred while creating the student.")
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStudentResponse(student))
}

// Update overwrites a student's mutable fields; created_by never changes
func (c *StudentController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx, "Student not found.")
	if !ok {
		return
	}

	var req dto.StudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse("Invalid request body."))
		return
	}

	student, err := c.studentService.UpdateStudent(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err, "An error occurred while updating the student.")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStudentResponse(student))
}

// Destroy deletes a student
func (c *StudentController) Destroy(ctx *gin.Context) {
	id, ok := parseID(ctx, "Student not found.")
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err, "An error occurred while deleting the student.")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Student deleted successfully."))
}
