package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Gagan-Meena1/upkraft-sub006/internal/models"
	"github.com/Gagan-Meena1/upkraft-sub006/internal/services"
)

// FeedbackHandler handles per-class rubric ratings.
type FeedbackHandler struct {
	feedback services.FeedbackService
}

// NewFeedbackHandler creates the feedback handler.
func NewFeedbackHandler(feedback services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// FeedbackRequest is the create/update payload.
type FeedbackRequest struct {
	ClassID      uuid.UUID          `json:"classId" binding:"required"`
	StudentID    uuid.UUID          `json:"studentId" binding:"required"`
	Discipline   models.Discipline  `json:"discipline" binding:"required"`
	Scores       map[string]float64 `json:"scores"`
	PersonalNote string             `json:"personalNote"`
	Finalize     bool               `json:"finalize"`
}

// UpdateFeedbackRequest carries new scores for an existing record.
type UpdateFeedbackRequest struct {
	Scores       map[string]float64 `json:"scores"`
	PersonalNote string             `json:"personalNote"`
	Finalize     bool               `json:"finalize"`
}

// SetEditableRequest toggles the tutor-edit lock.
type SetEditableRequest struct {
	Editable *bool `json:"editable" binding:"required"`
}

// Create handles POST /api/feedback.
func (h *FeedbackHandler) Create(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	feedback, err := h.feedback.Create(currentUser(c), services.FeedbackRequest{
		ClassID:      req.ClassID,
		StudentID:    req.StudentID,
		Discipline:   req.Discipline,
		Scores:       req.Scores,
		PersonalNote: req.PersonalNote,
		Finalize:     req.Finalize,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "feedback": feedback})
}

// Update handles PUT /api/feedback/:id.
func (h *FeedbackHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid feedback ID"})
		return
	}

	var req UpdateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	feedback, err := h.feedback.Update(currentUser(c), id, services.FeedbackRequest{
		Scores:       req.Scores,
		PersonalNote: req.PersonalNote,
		Finalize:     req.Finalize,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "feedback": feedback})
}

// SetEditable handles PATCH /api/feedback/:id/editable (RM only).
func (h *FeedbackHandler) SetEditable(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid feedback ID"})
		return
	}

	var req SetEditableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := h.feedback.SetEditable(currentUser(c), id, *req.Editable); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "editable flag updated"})
}

// ListByClass handles GET /api/classes/:id/feedback.
func (h *FeedbackHandler) ListByClass(c *gin.Context) {
	classID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid class ID"})
		return
	}

	feedbacks, err := h.feedback.ListByClass(classID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "feedback": feedbacks})
}

// ListMine handles GET /api/feedback: a student's own records.
func (h *FeedbackHandler) ListMine(c *gin.Context) {
	feedbacks, err := h.feedback.ListByStudent(currentUser(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "feedback": feedbacks})
}
