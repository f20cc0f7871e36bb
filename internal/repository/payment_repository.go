package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Gagan-Meena1/upkraft-sub006/internal/models"
)

// PaymentRepository persists immutable payment records. There is no
// Update: a payment, once written, is history.
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(id uuid.UUID) (*models.Payment, error)
	ListByStudent(studentID uuid.UUID) ([]models.Payment, error)
	ListByTutor(tutorID uuid.UUID) ([]models.Payment, error)
	ListByAcademy(academyID uuid.UUID) ([]models.Payment, error)
	List() ([]models.Payment, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a payment repository.
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(payment *models.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	return r.db.Create(payment).Error
}

func (r *paymentRepository) GetByID(id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) ListByStudent(studentID uuid.UUID) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("student_id = ?", studentID).
		Order("payment_date DESC").Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) ListByTutor(tutorID uuid.UUID) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("tutor_id = ?", tutorID).
		Order("payment_date DESC").Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) ListByAcademy(academyID uuid.UUID) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("academy_id = ?", academyID).
		Order("payment_date DESC").Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) List() ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Order("payment_date DESC").Find(&payments).Error
	return payments, err
}
