package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmissionStatus is the review state of a student submission.
type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "SUBMITTED"
	SubmissionApproved  SubmissionStatus = "APPROVED"
	SubmissionRejected  SubmissionStatus = "REJECTED"
)

// Valid reports whether s is a known submission status.
func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionSubmitted, SubmissionApproved, SubmissionRejected:
		return true
	}
	return false
}

// Assignment is homework authored by a tutor for a set of students,
// optionally tied to a class or course.
type Assignment struct {
	ID          uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`

	TutorID  uuid.UUID  `json:"tutor_id" gorm:"type:text;not null;index"`
	ClassID  *uuid.UUID `json:"class_id" gorm:"type:text;index"`
	CourseID *uuid.UUID `json:"course_id" gorm:"type:text;index"`

	Tutor       *User        `json:"tutor,omitempty" gorm:"foreignKey:TutorID"`
	Assignees   []User       `json:"assignees,omitempty" gorm:"many2many:assignment_assignees"`
	Submissions []Submission `json:"submissions,omitempty" gorm:"foreignKey:AssignmentID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Submission is a student's answer to an assignment, unique per
// (assignment, student) pair.
type Submission struct {
	ID           uuid.UUID        `json:"id" gorm:"type:text;primary_key"`
	AssignmentID uuid.UUID        `json:"assignment_id" gorm:"type:text;not null;uniqueIndex:idx_assignment_student"`
	StudentID    uuid.UUID        `json:"student_id" gorm:"type:text;not null;uniqueIndex:idx_assignment_student"`
	Status       SubmissionStatus `json:"status" gorm:"default:'SUBMITTED'"`
	Content      string           `json:"content"`

	SubmittedAt time.Time  `json:"submitted_at"`
	ReviewedAt  *time.Time `json:"reviewed_at"`

	Student *User `json:"student,omitempty" gorm:"foreignKey:StudentID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
