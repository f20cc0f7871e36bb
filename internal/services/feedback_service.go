package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Gagan-Meena1/upkraft-sub006/internal/models"
	"github.com/Gagan-Meena1/upkraft-sub006/internal/repository"
)

// FeedbackRequest creates or updates a rating record.
type FeedbackRequest struct {
	ClassID      uuid.UUID
	StudentID    uuid.UUID
	Discipline   models.Discipline
	Scores       map[string]float64
	PersonalNote string
	Finalize     bool
}

// FeedbackService handles per-class, per-student rubric ratings.
// Updates are gated by IsEditable, which only a relationship manager
// can switch back on.
type FeedbackService interface {
	Create(tutor *models.User, req FeedbackRequest) (*models.Feedback, error)
	Update(tutor *models.User, id uuid.UUID, req FeedbackRequest) (*models.Feedback, error)
	SetEditable(actor *models.User, id uuid.UUID, editable bool) error
	ListByClass(classID uuid.UUID) ([]models.Feedback, error)
	ListByStudent(studentID uuid.UUID) ([]models.Feedback, error)
}

type feedbackService struct {
	feedbackRepo repository.FeedbackRepository
	classRepo    repository.ClassRepository
}

// NewFeedbackService creates the feedback service.
func NewFeedbackService(feedbackRepo repository.FeedbackRepository, classRepo repository.ClassRepository) FeedbackService {
	return &feedbackService{feedbackRepo: feedbackRepo, classRepo: classRepo}
}

func (s *feedbackService) Create(tutor *models.User, req FeedbackRequest) (*models.Feedback, error) {
	if tutor.Role != models.RoleTutor {
		return nil, fmt.Errorf("%w: only tutors give feedback", ErrForbidden)
	}
	scores, err := validateScores(req.Discipline, req.Scores)
	if err != nil {
		return nil, err
	}
	if _, err := s.classRepo.GetByID(req.ClassID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: class %s", ErrNotFound, req.ClassID)
		}
		return nil, err
	}

	feedback := &models.Feedback{
		ClassID:      req.ClassID,
		StudentID:    req.StudentID,
		TutorID:      tutor.ID,
		Discipline:   req.Discipline,
		Scores:       scores,
		PersonalNote: req.PersonalNote,
		IsEditable:   !req.Finalize,
	}
	if err := s.feedbackRepo.Create(feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

func (s *feedbackService) Update(tutor *models.User, id uuid.UUID, req FeedbackRequest) (*models.Feedback, error) {
	feedback, err := s.feedbackRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: feedback %s", ErrNotFound, id)
		}
		return nil, err
	}
	if feedback.TutorID != tutor.ID {
		return nil, fmt.Errorf("%w: not the authoring tutor", ErrForbidden)
	}
	if !feedback.IsEditable {
		return nil, fmt.Errorf("%w: ask a relationship manager to unlock it", ErrFeedbackLocked)
	}

	scores, err := validateScores(feedback.Discipline, req.Scores)
	if err != nil {
		return nil, err
	}
	feedback.Scores = scores
	feedback.PersonalNote = req.PersonalNote
	if req.Finalize {
		feedback.IsEditable = false
	}
	if err := s.feedbackRepo.Update(feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

// SetEditable re-opens (or locks) a feedback record for tutor edits.
func (s *feedbackService) SetEditable(actor *models.User, id uuid.UUID, editable bool) error {
	switch actor.Role {
	case models.RoleRelationshipManager, models.RoleAdmin:
	default:
		return fmt.Errorf("%w: only relationship managers toggle feedback locks", ErrForbidden)
	}
	if _, err := s.feedbackRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: feedback %s", ErrNotFound, id)
		}
		return err
	}
	return s.feedbackRepo.SetEditable(id, editable)
}

func (s *feedbackService) ListByClass(classID uuid.UUID) ([]models.Feedback, error) {
	return s.feedbackRepo.ListByClass(classID)
}

func (s *feedbackService) ListByStudent(studentID uuid.UUID) ([]models.Feedback, error) {
	return s.feedbackRepo.ListByStudent(studentID)
}

// validateScores checks every key against the discipline's rubric and
// every value against the 1-10 range.
func validateScores(discipline models.Discipline, scores map[string]float64) (datatypes.JSONMap, error) {
	rubric, ok := models.DisciplineRubrics[discipline]
	if !ok {
		return nil, fmt.Errorf("%w: unknown discipline %q", ErrInvalidInput, discipline)
	}
	allowed := make(map[string]bool, len(rubric))
	for _, key := range rubric {
		allowed[key] = true
	}

	out := datatypes.JSONMap{}
	for key, val := range scores {
		if !allowed[key] {
			return nil, fmt.Errorf("%w: %q is not a %s rubric", ErrInvalidInput, key, discipline)
		}
		if val < 1 || val > 10 {
			return nil, fmt.Errorf("%w: score %q must be between 1 and 10", ErrInvalidInput, key)
		}
		out[key] = val
	}
	return out, nil
}
