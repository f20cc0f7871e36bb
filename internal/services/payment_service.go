package services

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Gagan-Meena1/upkraft-sub006/internal/models"
	"github.com/Gagan-Meena1/upkraft-sub006/internal/repository"
)

// commissionRate is the platform's fixed cut of every course payment.
var commissionRate = decimal.NewFromFloat(0.15)

// CreatePaymentRequest records one paid transaction.
type CreatePaymentRequest struct {
	StudentID     uuid.UUID
	CourseID      uuid.UUID
	Months        int
	Method        string
	IsManualEntry bool
}

// PaymentService records commission-bearing transactions.
type PaymentService interface {
	Create(req CreatePaymentRequest) (*models.Payment, error)
	ListFor(user *models.User) ([]models.Payment, error)
}

type paymentService struct {
	paymentRepo repository.PaymentRepository
	courseRepo  repository.CourseRepository
	userRepo    repository.UserRepository
	now         func() time.Time
}

// NewPaymentService creates the payment service.
func NewPaymentService(paymentRepo repository.PaymentRepository, courseRepo repository.CourseRepository, userRepo repository.UserRepository) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		courseRepo:  courseRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

func (s *paymentService) Create(req CreatePaymentRequest) (*models.Payment, error) {
	if req.Months < 1 {
		req.Months = 1
	}
	if req.Method == "" {
		req.Method = "manual"
	}

	course, err := s.courseRepo.GetByID(req.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: course %s", ErrNotFound, req.CourseID)
		}
		return nil, err
	}

	amount := course.Price.Mul(decimal.NewFromInt(int64(req.Months)))
	commission := amount.Mul(commissionRate).Round(2)

	paymentDate := s.now()
	payment := &models.Payment{
		TransactionID: newTransactionID(paymentDate),
		StudentID:     req.StudentID,
		TutorID:       course.InstructorID,
		AcademyID:     course.AcademyID,
		CourseID:      course.ID,
		Amount:        amount,
		Commission:    commission,
		Months:        req.Months,
		Method:        req.Method,
		Status:        models.PaymentCompleted,
		IsManualEntry: req.IsManualEntry,
		PaymentDate:   paymentDate,
		ValidUpto:     endOfDay(paymentDate.AddDate(0, req.Months, 0)),
	}

	if payment.TutorID != nil {
		if tutor, err := s.userRepo.GetByID(*payment.TutorID); err == nil && tutor.AcademyID != nil {
			payment.AcademyID = tutor.AcademyID
		}
	}

	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// ListFor scopes the payment listing to what the caller may see.
func (s *paymentService) ListFor(user *models.User) ([]models.Payment, error) {
	switch user.Role {
	case models.RoleStudent:
		return s.paymentRepo.ListByStudent(user.ID)
	case models.RoleTutor:
		return s.paymentRepo.ListByTutor(user.ID)
	case models.RoleAcademy:
		return s.paymentRepo.ListByAcademy(user.ID)
	case models.RoleAdmin, models.RoleRelationshipManager:
		return s.paymentRepo.List()
	default:
		return nil, fmt.Errorf("%w: role %q cannot list payments", ErrForbidden, user.Role)
	}
}

// newTransactionID builds a human-readable id: a base-36 timestamp and
// a zero-padded random suffix. Readable, not cryptographically unique.
func newTransactionID(at time.Time) string {
	ts := strings.ToUpper(strconv.FormatInt(at.UnixMilli(), 36))
	return fmt.Sprintf("#TXN-%s%03d", ts, rand.Intn(1000))
}

// endOfDay clamps t to 23:59:59.999 local time.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999_000_000, t.Location())
}
