package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Gagan-Meena1/upkraft-sub006/internal/models"
	"github.com/Gagan-Meena1/upkraft-sub006/internal/services"
)

// CourseHandler handles course authoring, enrollment and scheduling.
type CourseHandler struct {
	courses services.CourseService
}

// NewCourseHandler creates the course handler.
func NewCourseHandler(courses services.CourseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// CreateCourseRequest is the course payload.
type CreateCourseRequest struct {
	Title      string          `json:"title" binding:"required"`
	Price      decimal.Decimal `json:"price" binding:"required"`
	Curriculum string          `json:"curriculum"`
}

// EnrollRequest names the student to enroll; defaults to the caller.
type EnrollRequest struct {
	StudentID *uuid.UUID `json:"studentId"`
}

// AssignInstructorRequest names the tutor an academy assigns.
type AssignInstructorRequest struct {
	TutorID uuid.UUID `json:"tutorId" binding:"required"`
}

// CreateClassRequest is the session payload.
type CreateClassRequest struct {
	Title   string     `json:"title"`
	StartAt time.Time  `json:"startAt" binding:"required"`
	EndAt   time.Time  `json:"endAt"`
	TutorID *uuid.UUID `json:"tutorId"`
}

// UpdateClassStatusRequest changes a session's lifecycle state.
type UpdateClassStatusRequest struct {
	Status models.ClassStatus `json:"status" binding:"required"`
}

// Create handles POST /api/courses.
func (h *CourseHandler) Create(c *gin.Context) {
	var req CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	course, err := h.courses.Create(currentUser(c), services.CreateCourseRequest{
		Title:      req.Title,
		Price:      req.Price,
		Curriculum: req.Curriculum,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "course": course})
}

// List handles GET /api/courses.
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courses.List()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "courses": courses})
}

// Get handles GET /api/courses/:id.
func (h *CourseHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid course ID"})
		return
	}

	course, err := h.courses.Get(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "course": course})
}

// Enroll handles POST /api/courses/:id/enroll. Students enroll
// themselves; staff may enroll a named student.
func (h *CourseHandler) Enroll(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid course ID"})
		return
	}

	var req EnrollRequest
	_ = c.ShouldBindJSON(&req)

	user := currentUser(c)
	studentID := user.ID
	if req.StudentID != nil && user.Role != models.RoleStudent {
		studentID = *req.StudentID
	}

	if err := h.courses.Enroll(courseID, studentID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "enrolled"})
}

// AssignInstructor handles POST /api/courses/:id/instructors.
func (h *CourseHandler) AssignInstructor(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid course ID"})
		return
	}

	var req AssignInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := h.courses.AssignInstructor(currentUser(c), courseID, req.TutorID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "instructor assigned"})
}

// CreateClass handles POST /api/courses/:id/classes.
func (h *CourseHandler) CreateClass(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid course ID"})
		return
	}

	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	class, err := h.courses.CreateClass(services.CreateClassRequest{
		CourseID: courseID,
		Title:    req.Title,
		StartAt:  req.StartAt,
		EndAt:    req.EndAt,
		TutorID:  req.TutorID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "class": class})
}

// ListClasses handles GET /api/courses/:id/classes.
func (h *CourseHandler) ListClasses(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid course ID"})
		return
	}

	classes, err := h.courses.ListClasses(courseID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "classes": classes})
}

// UpdateClassStatus handles PATCH /api/classes/:id/status.
func (h *CourseHandler) UpdateClassStatus(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid class ID"})
		return
	}

	var req UpdateClassStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := h.courses.UpdateClassStatus(classID, req.Status); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "status updated"})
}
