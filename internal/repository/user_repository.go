package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Gagan-Meena1/upkraft-sub006/internal/models"
)

// ErrInsufficientCredits is returned when a conditional debit finds
// the balance short.
var ErrInsufficientCredits = errors.New("insufficient credits")

// UserRepository handles user persistence. The balance mutators take
// an optional transaction handle so the ledger service can run a debit
// and a credit atomically; pass nil to use the repository's own pool.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	ListByRole(role models.Role) ([]models.User, error)

	DebitCredits(tx *gorm.DB, id uuid.UUID, amount int64) error
	CreditCredits(tx *gorm.DB, id uuid.UUID, amount int64) error
	SetPendingAssignments(id uuid.UUID, pending datatypes.JSONMap) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return r.db.Create(user).Error
}

func (r *userRepository) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *userRepository) ListByRole(role models.Role) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("role = ?", role).Order("created_at").Find(&users).Error
	return users, err
}

// DebitCredits decrements the balance only when it covers amount; the
// guard runs inside the UPDATE so concurrent debits cannot overdraw.
func (r *userRepository) DebitCredits(tx *gorm.DB, id uuid.UUID, amount int64) error {
	db := r.handle(tx)
	res := db.Model(&models.User{}).
		Where("id = ? AND credits >= ?", id, amount).
		UpdateColumn("credits", gorm.Expr("credits - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientCredits
	}
	return nil
}

// CreditCredits increments the balance atomically.
func (r *userRepository) CreditCredits(tx *gorm.DB, id uuid.UUID, amount int64) error {
	db := r.handle(tx)
	return db.Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("credits", gorm.Expr("credits + ?", amount)).Error
}

// SetPendingAssignments overwrites the denormalized pending map.
func (r *userRepository) SetPendingAssignments(id uuid.UUID, pending datatypes.JSONMap) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", id).
		Update("pending_assignments", pending).Error
}

func (r *userRepository) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
