package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Role defines the platform actor kinds. Code that branches on a role
// switches exhaustively instead of comparing raw strings.
type Role string

const (
	RoleStudent             Role = "student"
	RoleTutor               Role = "tutor"
	RoleAcademy             Role = "academy"
	RoleRelationshipManager Role = "relationship_manager"
	RoleAdmin               Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTutor, RoleAcademy, RoleRelationshipManager, RoleAdmin:
		return true
	}
	return false
}

// CommissionModel describes how a tutor or academy is paid out.
type CommissionModel string

const (
	CommissionPercentage CommissionModel = "percentage"
	CommissionFlat       CommissionModel = "flat"
)

// User represents any platform actor, discriminated by Role.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         Role      `json:"role" gorm:"not null;index"`
	Phone        string    `json:"phone"`

	// Credits is a session-currency balance: consumed by students,
	// earned by tutors. Mutated only through atomic SQL expressions.
	Credits int64 `json:"credits" gorm:"not null;default:0"`

	// Payout settings, meaningful for tutors and academies.
	CommissionModel   CommissionModel `json:"commission_model" gorm:"default:'percentage'"`
	CommissionPercent decimal.Decimal `json:"commission_percent" gorm:"type:decimal(5,2)"`
	PayoutFrequency   string          `json:"payout_frequency" gorm:"default:'monthly'"`

	// AcademyID links a tutor to the academy that manages them.
	AcademyID *uuid.UUID `json:"academy_id" gorm:"type:text;index"`

	// PendingAssignments is a denormalized read model maintained by the
	// reconciliation job: studentID -> list of assignment IDs lacking an
	// approved submission. Overwritten wholesale on every run.
	PendingAssignments datatypes.JSONMap `json:"pending_assignments"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
