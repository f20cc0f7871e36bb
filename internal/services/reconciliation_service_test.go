package services

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/Gagan-Meena1/upkraft-sub006/internal/models"
	"github.com/Gagan-Meena1/upkraft-sub006/internal/repository"
)

func TestReconcileAllBuildsPendingMap(t *testing.T) {
	db := newTestDB(t)
	tutor := createTestUser(t, db, "tara", models.RoleTutor, 0)
	s1 := createTestUser(t, db, "sam one", models.RoleStudent, 0)
	s2 := createTestUser(t, db, "sam two", models.RoleStudent, 0)

	a1 := createTestAssignment(t, db, tutor.ID, "scales", s1, s2)
	a2 := createTestAssignment(t, db, tutor.ID, "chords", s2)
	// s1 already approved on a1; s2 submitted a1 but not approved.
	createTestSubmission(t, db, a1.ID, s1.ID, models.SubmissionApproved)
	createTestSubmission(t, db, a1.ID, s2.ID, models.SubmissionSubmitted)

	svc := NewReconciliationService(
		repository.NewUserRepository(db),
		repository.NewAssignmentRepository(db))

	results, ok := svc.ReconcileAll()
	if !ok {
		t.Fatalf("ReconcileAll failed: %+v", results)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1 tutor", len(results))
	}
	// s2 is pending on both assignments; s1 on none.
	if results[0].PendingCount != 2 {
		t.Errorf("pending count = %d, want 2", results[0].PendingCount)
	}

	stored := reloadUser(t, db, tutor.ID).PendingAssignments
	if _, found := stored[s1.ID.String()]; found {
		t.Errorf("approved student %s present in pending map", s1.ID)
	}
	ids := parseIDList(stored[s2.ID.String()])
	if len(ids) != 2 {
		t.Fatalf("pending assignments for s2 = %d, want 2", len(ids))
	}
	got := map[uuid.UUID]bool{ids[0]: true, ids[1]: true}
	if !got[a1.ID] || !got[a2.ID] {
		t.Errorf("pending ids = %v, want {%s, %s}", ids, a1.ID, a2.ID)
	}
}

func TestReconcileAllIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	tutor := createTestUser(t, db, "tara", models.RoleTutor, 0)
	s1 := createTestUser(t, db, "sam", models.RoleStudent, 0)
	createTestAssignment(t, db, tutor.ID, "scales", s1)

	svc := NewReconciliationService(
		repository.NewUserRepository(db),
		repository.NewAssignmentRepository(db))

	if _, ok := svc.ReconcileAll(); !ok {
		t.Fatal("first run failed")
	}
	first := reloadUser(t, db, tutor.ID).PendingAssignments

	if _, ok := svc.ReconcileAll(); !ok {
		t.Fatal("second run failed")
	}
	second := reloadUser(t, db, tutor.ID).PendingAssignments

	if !reflect.DeepEqual(first, second) {
		t.Errorf("maps differ between runs:\nfirst:  %v\nsecond: %v", first, second)
	}
}

func TestReconcileApprovalClearsPending(t *testing.T) {
	db := newTestDB(t)
	tutor := createTestUser(t, db, "tara", models.RoleTutor, 0)
	s1 := createTestUser(t, db, "sam", models.RoleStudent, 0)
	a1 := createTestAssignment(t, db, tutor.ID, "scales", s1)

	svc := NewReconciliationService(
		repository.NewUserRepository(db),
		repository.NewAssignmentRepository(db))

	svc.ReconcileAll()
	if stored := reloadUser(t, db, tutor.ID).PendingAssignments; len(stored) != 1 {
		t.Fatalf("pending map = %v, want one student", stored)
	}

	createTestSubmission(t, db, a1.ID, s1.ID, models.SubmissionApproved)
	svc.ReconcileAll()
	if stored := reloadUser(t, db, tutor.ID).PendingAssignments; len(stored) != 0 {
		t.Errorf("pending map = %v after approval, want empty", stored)
	}
}

func TestReconcileZeroAssigneesContributesNothing(t *testing.T) {
	db := newTestDB(t)
	tutor := createTestUser(t, db, "tara", models.RoleTutor, 0)
	createTestAssignment(t, db, tutor.ID, "unassigned work")

	svc := NewReconciliationService(
		repository.NewUserRepository(db),
		repository.NewAssignmentRepository(db))

	results, ok := svc.ReconcileAll()
	if !ok {
		t.Fatal("run failed")
	}
	if results[0].PendingCount != 0 {
		t.Errorf("pending count = %d, want 0", results[0].PendingCount)
	}
}

func TestPendingForTutorPopulatesSummaries(t *testing.T) {
	db := newTestDB(t)
	tutor := createTestUser(t, db, "tara", models.RoleTutor, 0)
	s1 := createTestUser(t, db, "sam", models.RoleStudent, 0)
	a1 := createTestAssignment(t, db, tutor.ID, "scales", s1)

	svc := NewReconciliationService(
		repository.NewUserRepository(db),
		repository.NewAssignmentRepository(db))
	svc.ReconcileAll()

	entries, err := svc.PendingForTutor(tutor.ID)
	if err != nil {
		t.Fatalf("PendingForTutor: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].Student.ID != s1.ID || entries[0].Student.Name != s1.Name {
		t.Errorf("student summary = %+v, want %s", entries[0].Student, s1.Name)
	}
	if len(entries[0].Assignments) != 1 || entries[0].Assignments[0].Title != a1.Title {
		t.Errorf("assignment summaries = %+v, want %q", entries[0].Assignments, a1.Title)
	}
}

func TestPendingForTutorRejectsNonTutor(t *testing.T) {
	db := newTestDB(t)
	student := createTestUser(t, db, "sam", models.RoleStudent, 0)

	svc := NewReconciliationService(
		repository.NewUserRepository(db),
		repository.NewAssignmentRepository(db))

	if _, err := svc.PendingForTutor(student.ID); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.PendingForTutor(uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
