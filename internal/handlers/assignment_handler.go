package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Gagan-Meena1/upkraft-sub006/internal/models"
	"github.com/Gagan-Meena1/upkraft-sub006/internal/services"
)

// AssignmentHandler handles assignment authoring, submission and
// review.
type AssignmentHandler struct {
	assignments services.AssignmentService
}

// NewAssignmentHandler creates the assignment handler.
func NewAssignmentHandler(assignments services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments}
}

// CreateAssignmentRequest is the assignment payload.
type CreateAssignmentRequest struct {
	Title       string      `json:"title" binding:"required"`
	Description string      `json:"description"`
	Deadline    time.Time   `json:"deadline" binding:"required"`
	ClassID     *uuid.UUID  `json:"classId"`
	CourseID    *uuid.UUID  `json:"courseId"`
	AssigneeIDs []uuid.UUID `json:"assigneeIds"`
}

// SubmitRequest is a student's answer.
type SubmitRequest struct {
	Content string `json:"content"`
}

// ReviewRequest accepts or rejects a submission.
type ReviewRequest struct {
	Status models.SubmissionStatus `json:"status" binding:"required"`
}

// Create handles POST /api/assignments.
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	assignment, err := h.assignments.Create(currentUser(c), services.CreateAssignmentRequest{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		ClassID:     req.ClassID,
		CourseID:    req.CourseID,
		AssigneeIDs: req.AssigneeIDs,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "assignment": assignment})
}

// Get handles GET /api/assignments/:id.
func (h *AssignmentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid assignment ID"})
		return
	}

	assignment, err := h.assignments.Get(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "assignment": assignment})
}

// List handles GET /api/assignments: a tutor sees authored work, a
// student sees assigned work.
func (h *AssignmentHandler) List(c *gin.Context) {
	user := currentUser(c)

	var (
		assignments []models.Assignment
		err         error
	)
	switch user.Role {
	case models.RoleTutor:
		assignments, err = h.assignments.ListForTutor(user.ID)
	case models.RoleStudent:
		assignments, err = h.assignments.ListForStudent(user.ID)
	default:
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "access denied"})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "assignments": assignments})
}

// Submit handles POST /api/assignments/:id/submissions.
func (h *AssignmentHandler) Submit(c *gin.Context) {
	assignmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid assignment ID"})
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	sub, err := h.assignments.Submit(assignmentID, currentUser(c).ID, req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "submission": sub})
}

// Review handles PATCH /api/assignments/:id/submissions/:sid.
func (h *AssignmentHandler) Review(c *gin.Context) {
	submissionID, err := uuid.Parse(c.Param("sid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid submission ID"})
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := h.assignments.ReviewSubmission(currentUser(c), submissionID, req.Status); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "submission reviewed"})
}
