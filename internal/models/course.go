package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Course is a priced curriculum taught by one primary instructor,
// optionally with academy-assigned co-instructors. Enrollment and
// instructor assignment live in join tables so the two sides of the
// relation can never drift apart.
type Course struct {
	ID         uuid.UUID       `json:"id" gorm:"type:text;primary_key"`
	Title      string          `json:"title" gorm:"not null"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Curriculum string          `json:"curriculum"`

	InstructorID *uuid.UUID `json:"instructor_id" gorm:"type:text;index"`
	AcademyID    *uuid.UUID `json:"academy_id" gorm:"type:text;index"`

	Instructor *User   `json:"instructor,omitempty" gorm:"foreignKey:InstructorID"`
	Academy    *User   `json:"academy,omitempty" gorm:"foreignKey:AcademyID"`
	Students   []User  `json:"students,omitempty" gorm:"many2many:course_students"`
	// Instructors holds academy-assigned instructors; they take
	// precedence over InstructorID when routing session credits.
	Instructors []User  `json:"instructors,omitempty" gorm:"many2many:course_instructors"`
	Classes     []Class `json:"classes,omitempty" gorm:"foreignKey:CourseID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
