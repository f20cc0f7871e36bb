package services

import (
	"errors"
	"testing"

	"github.com/Gagan-Meena1/upkraft-sub006/internal/models"
	"github.com/Gagan-Meena1/upkraft-sub006/internal/repository"
)

func TestFeedbackRubricValidation(t *testing.T) {
	db := newTestDB(t)
	tutor := createTestUser(t, db, "tara", models.RoleTutor, 0)
	student := createTestUser(t, db, "sam", models.RoleStudent, 0)
	course := createTestCourse(t, db, "Guitar 101", 1000, nil)
	class := createTestClass(t, db, course.ID, nil)

	svc := NewFeedbackService(
		repository.NewFeedbackRepository(db),
		repository.NewClassRepository(db))

	tests := []struct {
		name       string
		discipline models.Discipline
		scores     map[string]float64
		wantErr    error
	}{
		{
			name:       "valid music scores",
			discipline: models.DisciplineMusic,
			scores:     map[string]float64{"rhythm": 8, "technique": 6},
		},
		{
			name:       "dance rubric key on music record",
			discipline: models.DisciplineMusic,
			scores:     map[string]float64{"musicality": 7},
			wantErr:    ErrInvalidInput,
		},
		{
			name:       "score out of range",
			discipline: models.DisciplineDrums,
			scores:     map[string]float64{"rhythm": 11},
			wantErr:    ErrInvalidInput,
		},
		{
			name:       "unknown discipline",
			discipline: "violin",
			scores:     map[string]float64{"rhythm": 5},
			wantErr:    ErrInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(tutor, FeedbackRequest{
				ClassID:    class.ID,
				StudentID:  student.ID,
				Discipline: tt.discipline,
				Scores:     tt.scores,
			})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFeedbackEditLockedUntilManagerUnlocks(t *testing.T) {
	db := newTestDB(t)
	tutor := createTestUser(t, db, "tara", models.RoleTutor, 0)
	student := createTestUser(t, db, "sam", models.RoleStudent, 0)
	rm := createTestUser(t, db, "rita", models.RoleRelationshipManager, 0)
	course := createTestCourse(t, db, "Guitar 101", 1000, nil)
	class := createTestClass(t, db, course.ID, nil)

	svc := NewFeedbackService(
		repository.NewFeedbackRepository(db),
		repository.NewClassRepository(db))

	feedback, err := svc.Create(tutor, FeedbackRequest{
		ClassID:    class.ID,
		StudentID:  student.ID,
		Discipline: models.DisciplineMusic,
		Scores:     map[string]float64{"rhythm": 5},
		Finalize:   true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	update := FeedbackRequest{Scores: map[string]float64{"rhythm": 9}}
	if _, err := svc.Update(tutor, feedback.ID, update); !errors.Is(err, ErrFeedbackLocked) {
		t.Fatalf("update on finalized feedback: err = %v, want ErrFeedbackLocked", err)
	}

	// A student cannot unlock it.
	if err := svc.SetEditable(student, feedback.ID, true); !errors.Is(err, ErrForbidden) {
		t.Fatalf("student unlock: err = %v, want ErrForbidden", err)
	}

	// A relationship manager can; the tutor may then edit again.
	if err := svc.SetEditable(rm, feedback.ID, true); err != nil {
		t.Fatalf("rm unlock: %v", err)
	}
	updated, err := svc.Update(tutor, feedback.ID, update)
	if err != nil {
		t.Fatalf("update after unlock: %v", err)
	}
	if got := updated.Scores["rhythm"]; got != float64(9) {
		t.Errorf("rhythm = %v, want 9", got)
	}
}

func TestFeedbackOnlyAuthorUpdates(t *testing.T) {
	db := newTestDB(t)
	tutor := createTestUser(t, db, "tara", models.RoleTutor, 0)
	other := createTestUser(t, db, "tom", models.RoleTutor, 0)
	student := createTestUser(t, db, "sam", models.RoleStudent, 0)
	course := createTestCourse(t, db, "Guitar 101", 1000, nil)
	class := createTestClass(t, db, course.ID, nil)

	svc := NewFeedbackService(
		repository.NewFeedbackRepository(db),
		repository.NewClassRepository(db))

	feedback, err := svc.Create(tutor, FeedbackRequest{
		ClassID:    class.ID,
		StudentID:  student.ID,
		Discipline: models.DisciplineDance,
		Scores:     map[string]float64{"musicality": 6},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.Update(other, feedback.ID, FeedbackRequest{Scores: map[string]float64{"musicality": 1}})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("other tutor update: err = %v, want ErrForbidden", err)
	}
}
