package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Gagan-Meena1/upkraft-sub006/internal/models"
	"github.com/Gagan-Meena1/upkraft-sub006/internal/repository"
)

// TutorReconcileResult is the per-tutor outcome of a reconciliation
// run.
type TutorReconcileResult struct {
	TutorID      uuid.UUID `json:"tutorId"`
	TutorName    string    `json:"tutorName"`
	PendingCount int       `json:"pendingCount"`
	Error        string    `json:"error,omitempty"`
}

// PendingEntry is one student's outstanding assignments, populated for
// dashboard reads.
type PendingEntry struct {
	Student     UserSummary         `json:"student"`
	Assignments []AssignmentSummary `json:"assignments"`
}

// UserSummary is the slim user shape returned by read endpoints.
type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// AssignmentSummary is the slim assignment shape returned by read
// endpoints.
type AssignmentSummary struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Deadline string    `json:"deadline"`
}

// ReconciliationService recomputes, for every tutor, which
// (student, assignment) pairs still lack an approved submission and
// persists the result as a denormalized map on the tutor row. The
// write is a full overwrite, so a rerun with unchanged inputs is a
// no-op by construction.
type ReconciliationService interface {
	ReconcileAll() ([]TutorReconcileResult, bool)
	PendingForTutor(tutorID uuid.UUID) ([]PendingEntry, error)
}

type reconciliationService struct {
	userRepo       repository.UserRepository
	assignmentRepo repository.AssignmentRepository
}

// NewReconciliationService creates the reconciliation service.
func NewReconciliationService(userRepo repository.UserRepository, assignmentRepo repository.AssignmentRepository) ReconciliationService {
	return &reconciliationService{userRepo: userRepo, assignmentRepo: assignmentRepo}
}

// ReconcileAll runs the job for every tutor. A failure for one tutor
// is recorded and the job moves on; ok is false when any tutor failed.
func (s *reconciliationService) ReconcileAll() ([]TutorReconcileResult, bool) {
	tutors, err := s.userRepo.ListByRole(models.RoleTutor)
	if err != nil {
		log.Printf("reconciliation: listing tutors: %v", err)
		return []TutorReconcileResult{{Error: err.Error()}}, false
	}

	results := make([]TutorReconcileResult, 0, len(tutors))
	ok := true
	for _, tutor := range tutors {
		res := TutorReconcileResult{TutorID: tutor.ID, TutorName: tutor.Name}
		count, err := s.reconcileTutor(tutor.ID)
		if err != nil {
			ok = false
			res.Error = err.Error()
			log.Printf("reconciliation: tutor %s: %v", tutor.ID, err)
		} else {
			res.PendingCount = count
		}
		results = append(results, res)
	}
	return results, ok
}

// reconcileTutor rebuilds one tutor's pending map and returns the
// number of pending (student, assignment) pairs.
func (s *reconciliationService) reconcileTutor(tutorID uuid.UUID) (int, error) {
	assignments, err := s.assignmentRepo.ListByTutor(tutorID)
	if err != nil {
		return 0, err
	}

	pending := datatypes.JSONMap{}
	count := 0
	for _, a := range assignments {
		approved := make(map[uuid.UUID]bool, len(a.Submissions))
		for _, sub := range a.Submissions {
			if sub.Status == models.SubmissionApproved {
				approved[sub.StudentID] = true
			}
		}
		for _, student := range a.Assignees {
			if student.ID == tutorID || approved[student.ID] {
				continue
			}
			key := student.ID.String()
			list, _ := pending[key].([]interface{})
			pending[key] = append(list, a.ID.String())
			count++
		}
	}

	if err := s.userRepo.SetPendingAssignments(tutorID, pending); err != nil {
		return 0, err
	}
	return count, nil
}

// PendingForTutor resolves the stored map into student and assignment
// summaries.
func (s *reconciliationService) PendingForTutor(tutorID uuid.UUID) ([]PendingEntry, error) {
	tutor, err := s.userRepo.GetByID(tutorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: tutor %s", ErrNotFound, tutorID)
		}
		return nil, err
	}
	if tutor.Role != models.RoleTutor {
		return nil, fmt.Errorf("%w: user %s is not a tutor", ErrInvalidInput, tutorID)
	}

	entries := make([]PendingEntry, 0, len(tutor.PendingAssignments))
	for studentKey, raw := range tutor.PendingAssignments {
		studentID, err := uuid.Parse(studentKey)
		if err != nil {
			continue
		}
		student, err := s.userRepo.GetByID(studentID)
		if err != nil {
			continue
		}

		ids := parseIDList(raw)
		assignments, err := s.assignmentRepo.ListByIDs(ids)
		if err != nil {
			return nil, err
		}

		entry := PendingEntry{
			Student:     UserSummary{ID: student.ID, Name: student.Name, Email: student.Email},
			Assignments: make([]AssignmentSummary, 0, len(assignments)),
		}
		for _, a := range assignments {
			entry.Assignments = append(entry.Assignments, AssignmentSummary{
				ID:       a.ID,
				Title:    a.Title,
				Deadline: a.Deadline.Format("2006-01-02"),
			})
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// parseIDList converts the JSON-decoded assignment id list (stored as
// []interface{} of strings) back to uuids.
func parseIDList(raw interface{}) []uuid.UUID {
	items, _ := raw.([]interface{})
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		str, ok := item.(string)
		if !ok {
			continue
		}
		if id, err := uuid.Parse(str); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
