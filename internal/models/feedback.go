package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Discipline selects the rubric a feedback record is scored against.
type Discipline string

const (
	DisciplineMusic   Discipline = "music"
	DisciplineDance   Discipline = "dance"
	DisciplineDrawing Discipline = "drawing"
	DisciplineDrums   Discipline = "drums"
)

// DisciplineRubrics lists the score keys allowed for each discipline.
var DisciplineRubrics = map[Discipline][]string{
	DisciplineMusic:   {"rhythm", "technique", "theory", "performance", "ear_training"},
	DisciplineDance:   {"musicality", "retention", "technique", "expression", "flexibility"},
	DisciplineDrawing: {"observation", "proportion", "shading", "composition", "creativity"},
	DisciplineDrums:   {"rhythm", "coordination", "rudiments", "tempo_control", "dynamics"},
}

// Valid reports whether d is a known discipline.
func (d Discipline) Valid() bool {
	_, ok := DisciplineRubrics[d]
	return ok
}

// Feedback is a tutor's per-class, per-student rating along the
// discipline's rubric, plus a free-text note. Once a tutor finalizes
// it, IsEditable flips off and only a relationship manager can
// re-enable edits.
type Feedback struct {
	ID         uuid.UUID  `json:"id" gorm:"type:text;primary_key"`
	ClassID    uuid.UUID  `json:"class_id" gorm:"type:text;not null;uniqueIndex:idx_class_student_discipline"`
	StudentID  uuid.UUID  `json:"student_id" gorm:"type:text;not null;uniqueIndex:idx_class_student_discipline"`
	Discipline Discipline `json:"discipline" gorm:"not null;uniqueIndex:idx_class_student_discipline"`
	TutorID    uuid.UUID  `json:"tutor_id" gorm:"type:text;not null;index"`

	// Scores maps rubric keys to 1-10 ratings; keys are validated
	// against DisciplineRubrics before persisting.
	Scores       datatypes.JSONMap `json:"scores"`
	PersonalNote string            `json:"personal_note"`
	IsEditable   bool              `json:"is_editable" gorm:"default:true"`

	Student *User `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Tutor   *User `json:"tutor,omitempty" gorm:"foreignKey:TutorID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
