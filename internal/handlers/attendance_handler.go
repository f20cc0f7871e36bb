package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Gagan-Meena1/upkraft-sub006/internal/models"
	"github.com/Gagan-Meena1/upkraft-sub006/internal/services"
)

// AttendanceHandler marks attendance and moves session credits.
type AttendanceHandler struct {
	ledger services.LedgerService
}

// NewAttendanceHandler creates the attendance handler.
func NewAttendanceHandler(ledger services.LedgerService) *AttendanceHandler {
	return &AttendanceHandler{ledger: ledger}
}

// MarkAttendanceRequest is the single-student payload. When
// AttendanceRecords is non-empty the call is treated as a bulk mark
// for the class in the query (or body) instead.
type MarkAttendanceRequest struct {
	Status       models.AttendanceStatus         `json:"status"`
	Credits      int64                           `json:"credits"`
	CreditReason string                          `json:"creditReason"`
	ClassID      *uuid.UUID                      `json:"classId"`
	Records      []services.BulkAttendanceRecord `json:"attendanceRecords"`
}

// Mark handles POST /api/attendance?studentId=&classId=.
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if len(req.Records) > 0 {
		h.markBulk(c, req)
		return
	}

	studentID, err := uuid.Parse(c.Query("studentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid studentId"})
		return
	}
	classID, err := h.classID(c, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid classId"})
		return
	}

	result, err := h.ledger.MarkAttendance(services.MarkAttendanceRequest{
		StudentID:    studentID,
		ClassID:      classID,
		Status:       req.Status,
		Credits:      req.Credits,
		CreditReason: req.CreditReason,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "attendance recorded",
		"data":    result,
	})
}

func (h *AttendanceHandler) markBulk(c *gin.Context, req MarkAttendanceRequest) {
	classID, err := h.classID(c, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid classId"})
		return
	}

	results, ok := h.ledger.MarkAttendanceBulk(classID, req.Records)
	status := http.StatusOK
	if !ok {
		status = http.StatusMultiStatus
	}
	c.JSON(status, gin.H{"success": ok, "results": results})
}

// classID prefers the query parameter, falling back to the body.
func (h *AttendanceHandler) classID(c *gin.Context, req MarkAttendanceRequest) (uuid.UUID, error) {
	if raw := c.Query("classId"); raw != "" {
		return uuid.Parse(raw)
	}
	if req.ClassID != nil {
		return *req.ClassID, nil
	}
	return uuid.Nil, services.ErrInvalidInput
}
