package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Gagan-Meena1/upkraft-sub006/internal/models"
	"github.com/Gagan-Meena1/upkraft-sub006/internal/repository"
)

// CreateAssignmentRequest describes homework for a set of students.
type CreateAssignmentRequest struct {
	Title       string
	Description string
	Deadline    time.Time
	ClassID     *uuid.UUID
	CourseID    *uuid.UUID
	AssigneeIDs []uuid.UUID
}

// AssignmentService handles assignment authoring, submission and
// review. Approvals feed the reconciliation job: a student drops out
// of a tutor's pending map once a submission is approved.
type AssignmentService interface {
	Create(tutor *models.User, req CreateAssignmentRequest) (*models.Assignment, error)
	Get(id uuid.UUID) (*models.Assignment, error)
	ListForTutor(tutorID uuid.UUID) ([]models.Assignment, error)
	ListForStudent(studentID uuid.UUID) ([]models.Assignment, error)
	Submit(assignmentID, studentID uuid.UUID, content string) (*models.Submission, error)
	ReviewSubmission(reviewer *models.User, submissionID uuid.UUID, status models.SubmissionStatus) error
}

type assignmentService struct {
	assignmentRepo repository.AssignmentRepository
	userRepo       repository.UserRepository
}

// NewAssignmentService creates the assignment service.
func NewAssignmentService(assignmentRepo repository.AssignmentRepository, userRepo repository.UserRepository) AssignmentService {
	return &assignmentService{assignmentRepo: assignmentRepo, userRepo: userRepo}
}

func (s *assignmentService) Create(tutor *models.User, req CreateAssignmentRequest) (*models.Assignment, error) {
	if tutor.Role != models.RoleTutor {
		return nil, fmt.Errorf("%w: only tutors author assignments", ErrForbidden)
	}
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	assignees := make([]models.User, 0, len(req.AssigneeIDs))
	for _, id := range req.AssigneeIDs {
		u, err := s.userRepo.GetByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: assignee %s", ErrNotFound, id)
			}
			return nil, err
		}
		assignees = append(assignees, *u)
	}

	assignment := &models.Assignment{
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		TutorID:     tutor.ID,
		ClassID:     req.ClassID,
		CourseID:    req.CourseID,
	}
	if err := s.assignmentRepo.Create(assignment, assignees); err != nil {
		return nil, err
	}
	assignment.Assignees = assignees
	return assignment, nil
}

func (s *assignmentService) Get(id uuid.UUID) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: assignment %s", ErrNotFound, id)
		}
		return nil, err
	}
	return assignment, nil
}

func (s *assignmentService) ListForTutor(tutorID uuid.UUID) ([]models.Assignment, error) {
	return s.assignmentRepo.ListByTutor(tutorID)
}

func (s *assignmentService) ListForStudent(studentID uuid.UUID) ([]models.Assignment, error) {
	return s.assignmentRepo.ListByAssignee(studentID)
}

func (s *assignmentService) Submit(assignmentID, studentID uuid.UUID, content string) (*models.Submission, error) {
	assignment, err := s.Get(assignmentID)
	if err != nil {
		return nil, err
	}

	assigned := false
	for _, a := range assignment.Assignees {
		if a.ID == studentID {
			assigned = true
			break
		}
	}
	if !assigned {
		return nil, fmt.Errorf("%w: student is not assigned this work", ErrForbidden)
	}
	for _, existing := range assignment.Submissions {
		if existing.StudentID == studentID {
			return nil, fmt.Errorf("%w: submission for this assignment", ErrConflict)
		}
	}

	sub := &models.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		Status:       models.SubmissionSubmitted,
		Content:      content,
		SubmittedAt:  time.Now(),
	}
	if err := s.assignmentRepo.CreateSubmission(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *assignmentService) ReviewSubmission(reviewer *models.User, submissionID uuid.UUID, status models.SubmissionStatus) error {
	if status != models.SubmissionApproved && status != models.SubmissionRejected {
		return fmt.Errorf("%w: review status must be APPROVED or REJECTED", ErrInvalidInput)
	}

	sub, err := s.assignmentRepo.GetSubmission(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: submission %s", ErrNotFound, submissionID)
		}
		return err
	}

	assignment, err := s.Get(sub.AssignmentID)
	if err != nil {
		return err
	}
	switch reviewer.Role {
	case models.RoleAdmin, models.RoleRelationshipManager:
		// always allowed
	case models.RoleTutor:
		if assignment.TutorID != reviewer.ID {
			return fmt.Errorf("%w: not the authoring tutor", ErrForbidden)
		}
	default:
		return fmt.Errorf("%w: role %q cannot review submissions", ErrForbidden, reviewer.Role)
	}

	return s.assignmentRepo.UpdateSubmissionStatus(submissionID, status)
}
