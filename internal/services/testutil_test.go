package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Gagan-Meena1/upkraft-sub006/internal/models"
)

// newTestDB opens a per-test in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Class{},
		&models.ClassAttendance{},
		&models.Payment{},
		&models.Assignment{},
		&models.Submission{},
		&models.Feedback{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// createTestUser inserts a user with the given role and credits.
func createTestUser(t *testing.T, db *gorm.DB, name string, role models.Role, credits int64) *models.User {
	t.Helper()
	u := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        fmt.Sprintf("%s@test.local", strings.ToLower(strings.ReplaceAll(name, " ", "."))),
		PasswordHash: "hash-" + name,
		Role:         role,
		Credits:      credits,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("createTestUser(%s): %v", name, err)
	}
	return u
}

// createTestCourse inserts a course, optionally owned by instructor.
func createTestCourse(t *testing.T, db *gorm.DB, title string, price int64, instructorID *uuid.UUID) *models.Course {
	t.Helper()
	course := &models.Course{
		ID:           uuid.New(),
		Title:        title,
		Price:        decimal.NewFromInt(price),
		InstructorID: instructorID,
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("createTestCourse(%s): %v", title, err)
	}
	return course
}

// createTestClass inserts a scheduled class for course.
func createTestClass(t *testing.T, db *gorm.DB, courseID uuid.UUID, tutorID *uuid.UUID) *models.Class {
	t.Helper()
	class := &models.Class{
		ID:       uuid.New(),
		CourseID: courseID,
		Title:    "session",
		StartAt:  time.Now(),
		EndAt:    time.Now().Add(time.Hour),
		Status:   models.ClassScheduled,
		TutorID:  tutorID,
	}
	if err := db.Create(class).Error; err != nil {
		t.Fatalf("createTestClass: %v", err)
	}
	return class
}

// createTestAssignment inserts an assignment authored by tutorID and
// assigned to the given students.
func createTestAssignment(t *testing.T, db *gorm.DB, tutorID uuid.UUID, title string, assignees ...*models.User) *models.Assignment {
	t.Helper()
	assignment := &models.Assignment{
		ID:       uuid.New(),
		Title:    title,
		Deadline: time.Now().Add(7 * 24 * time.Hour),
		TutorID:  tutorID,
	}
	if err := db.Create(assignment).Error; err != nil {
		t.Fatalf("createTestAssignment(%s): %v", title, err)
	}
	for _, a := range assignees {
		if err := db.Model(assignment).Association("Assignees").Append(a); err != nil {
			t.Fatalf("assign %s to %s: %v", a.Name, title, err)
		}
	}
	return assignment
}

// createTestSubmission inserts a submission with the given status.
func createTestSubmission(t *testing.T, db *gorm.DB, assignmentID, studentID uuid.UUID, status models.SubmissionStatus) *models.Submission {
	t.Helper()
	sub := &models.Submission{
		ID:           uuid.New(),
		AssignmentID: assignmentID,
		StudentID:    studentID,
		Status:       status,
		SubmittedAt:  time.Now(),
	}
	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("createTestSubmission: %v", err)
	}
	return sub
}

// reloadUser fetches the current row for id.
func reloadUser(t *testing.T, db *gorm.DB, id uuid.UUID) *models.User {
	t.Helper()
	var u models.User
	if err := db.First(&u, "id = ?", id).Error; err != nil {
		t.Fatalf("reloadUser(%s): %v", id, err)
	}
	return &u
}
