package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Gagan-Meena1/upkraft-sub006/internal/services"
)

// FillingHandler exposes the pending-assignment reconciliation job and
// its read path.
type FillingHandler struct {
	reconciliation services.ReconciliationService
}

// NewFillingHandler creates the filling handler.
func NewFillingHandler(reconciliation services.ReconciliationService) *FillingHandler {
	return &FillingHandler{reconciliation: reconciliation}
}

// Reconcile handles POST /api/filling: recompute every tutor's
// pending map. Per-tutor failures surface as 207.
func (h *FillingHandler) Reconcile(c *gin.Context) {
	results, ok := h.reconciliation.ReconcileAll()
	status := http.StatusOK
	if !ok {
		status = http.StatusMultiStatus
	}
	c.JSON(status, gin.H{"success": ok, "tutors": results})
}

// Pending handles GET /api/filling?tutorId=: the stored map populated
// with student and assignment summaries.
func (h *FillingHandler) Pending(c *gin.Context) {
	tutorID, err := uuid.Parse(c.Query("tutorId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid tutorId"})
		return
	}

	entries, err := h.reconciliation.PendingForTutor(tutorID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "pendingAssignments": entries})
}

// PendingSelf handles GET /api/tutor/pending: the calling tutor's own
// map. Under impersonation the caller is the impersonated tutor, so a
// relationship manager sees exactly what the tutor would.
func (h *FillingHandler) PendingSelf(c *gin.Context) {
	entries, err := h.reconciliation.PendingForTutor(currentUser(c).ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "pendingAssignments": entries})
}
