package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the settlement state of a recorded transaction.
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentPending   PaymentStatus = "pending"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment is an immutable record of one commission-bearing
// transaction. Rows are created once and never updated.
type Payment struct {
	ID            uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	TransactionID string    `json:"transaction_id" gorm:"uniqueIndex;not null"`

	StudentID uuid.UUID  `json:"student_id" gorm:"type:text;not null;index"`
	TutorID   *uuid.UUID `json:"tutor_id" gorm:"type:text;index"`
	AcademyID *uuid.UUID `json:"academy_id" gorm:"type:text;index"`
	CourseID  uuid.UUID  `json:"course_id" gorm:"type:text;not null;index"`

	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	Commission decimal.Decimal `json:"commission" gorm:"type:decimal(10,2);not null"`
	Months     int             `json:"months" gorm:"not null;default:1"`

	Method        string        `json:"method" gorm:"default:'manual'"`
	Status        PaymentStatus `json:"status" gorm:"default:'completed'"`
	IsManualEntry bool          `json:"is_manual_entry"`

	PaymentDate time.Time `json:"payment_date"`
	ValidUpto   time.Time `json:"valid_upto"`

	CreatedAt time.Time `json:"created_at"`
}
