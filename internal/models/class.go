package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ClassStatus is the lifecycle state of a scheduled session.
type ClassStatus string

const (
	ClassScheduled ClassStatus = "scheduled"
	ClassCompleted ClassStatus = "completed"
	ClassCanceled  ClassStatus = "canceled"
)

// Valid reports whether s is a known class status.
func (s ClassStatus) Valid() bool {
	switch s {
	case ClassScheduled, ClassCompleted, ClassCanceled:
		return true
	}
	return false
}

// AttendanceStatus is the per-student attendance mark for a class.
type AttendanceStatus string

const (
	AttendancePresent   AttendanceStatus = "present"
	AttendanceAbsent    AttendanceStatus = "absent"
	AttendanceCanceled  AttendanceStatus = "canceled"
	AttendanceNotMarked AttendanceStatus = "not_marked"
)

// Valid reports whether s is a known attendance status.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceCanceled, AttendanceNotMarked:
		return true
	}
	return false
}

// Class is one scheduled session of a course.
type Class struct {
	ID       uuid.UUID   `json:"id" gorm:"type:text;primary_key"`
	CourseID uuid.UUID   `json:"course_id" gorm:"type:text;not null;index"`
	Title    string      `json:"title"`
	StartAt  time.Time   `json:"start_at"`
	EndAt    time.Time   `json:"end_at"`
	Status   ClassStatus `json:"status" gorm:"default:'scheduled'"`

	// TutorID is the tutor running this particular session, when it
	// differs from the course's instructor.
	TutorID      *uuid.UUID `json:"tutor_id" gorm:"type:text;index"`
	AssignmentID *uuid.UUID `json:"assignment_id" gorm:"type:text"`

	// Evaluation holds externally produced session-quality scores
	// (e.g. the music-practice analysis results). Opaque to this service.
	Evaluation datatypes.JSONMap `json:"evaluation,omitempty"`

	Course     *Course           `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Attendance []ClassAttendance `json:"attendance,omitempty" gorm:"foreignKey:ClassID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// ClassAttendance is one student's attendance record for one class.
// The composite unique index guarantees a single entry per
// (class, student) pair.
type ClassAttendance struct {
	ID        uuid.UUID        `json:"id" gorm:"type:text;primary_key"`
	ClassID   uuid.UUID        `json:"class_id" gorm:"type:text;not null;uniqueIndex:idx_class_student"`
	StudentID uuid.UUID        `json:"student_id" gorm:"type:text;not null;uniqueIndex:idx_class_student"`
	Status    AttendanceStatus `json:"status" gorm:"default:'not_marked'"`

	CreditsDeducted          int64  `json:"credits_deducted" gorm:"not null;default:0"`
	ReasonForCreditDeduction string `json:"reason_for_credit_deduction"`

	MarkedAt  time.Time `json:"marked_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
