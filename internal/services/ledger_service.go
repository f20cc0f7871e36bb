package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Gagan-Meena1/upkraft-sub006/internal/models"
	"github.com/Gagan-Meena1/upkraft-sub006/internal/repository"
)

// MarkAttendanceRequest is one attendance mark, optionally carrying a
// credit charge.
type MarkAttendanceRequest struct {
	StudentID    uuid.UUID
	ClassID      uuid.UUID
	Status       models.AttendanceStatus
	Credits      int64
	CreditReason string
}

// AttendanceResult reports what a mark actually did.
type AttendanceResult struct {
	StudentID                uuid.UUID               `json:"studentId"`
	ClassID                  uuid.UUID               `json:"classId"`
	Status                   models.AttendanceStatus `json:"status"`
	CreditsDeducted          int64                   `json:"creditsDeducted,omitempty"`
	CreditsAddedToInstructor int64                   `json:"creditsAddedToInstructor,omitempty"`
	InstructorID             *uuid.UUID              `json:"instructorId,omitempty"`
}

// BulkAttendanceRecord is one entry of a bulk marking call.
type BulkAttendanceRecord struct {
	StudentID uuid.UUID               `json:"studentId"`
	Status    models.AttendanceStatus `json:"status"`
	Credits   int64                   `json:"credits,omitempty"`
}

// BulkAttendanceResult is the per-record outcome of a bulk call.
type BulkAttendanceResult struct {
	StudentID uuid.UUID         `json:"studentId"`
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
	Result    *AttendanceResult `json:"result,omitempty"`
}

// LedgerService moves session credits from students to instructors as
// attendance is marked. The debit and the matching credit run inside a
// single transaction: either both balances move or neither does.
type LedgerService interface {
	MarkAttendance(req MarkAttendanceRequest) (*AttendanceResult, error)
	MarkAttendanceBulk(classID uuid.UUID, records []BulkAttendanceRecord) ([]BulkAttendanceResult, bool)
}

type ledgerService struct {
	db        *gorm.DB
	userRepo  repository.UserRepository
	classRepo repository.ClassRepository
}

// NewLedgerService creates the credit ledger service. db is the same
// pool the repositories were built on; it is only used to open
// transactions spanning them.
func NewLedgerService(db *gorm.DB, userRepo repository.UserRepository, classRepo repository.ClassRepository) LedgerService {
	return &ledgerService{db: db, userRepo: userRepo, classRepo: classRepo}
}

func (s *ledgerService) MarkAttendance(req MarkAttendanceRequest) (*AttendanceResult, error) {
	if !req.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown attendance status %q", ErrInvalidInput, req.Status)
	}
	if req.Credits < 0 {
		return nil, fmt.Errorf("%w: credits must not be negative", ErrInvalidInput)
	}

	student, err := s.userRepo.GetByID(req.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: student %s", ErrNotFound, req.StudentID)
		}
		return nil, err
	}
	if student.Role != models.RoleStudent {
		return nil, fmt.Errorf("%w: user %s is not a student", ErrInvalidInput, req.StudentID)
	}

	class, err := s.classRepo.GetWithCourse(req.ClassID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: class %s", ErrNotFound, req.ClassID)
		}
		return nil, err
	}

	att, err := s.classRepo.GetAttendance(req.ClassID, req.StudentID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if att == nil {
		att = &models.ClassAttendance{ClassID: req.ClassID, StudentID: req.StudentID}
	}

	result := &AttendanceResult{StudentID: req.StudentID, ClassID: req.ClassID, Status: req.Status}

	chargeable := req.Status == models.AttendancePresent && req.Credits > 0
	// A mark whose credits were already deducted is a re-application,
	// not a re-charge: the entry is updated but no balance moves again.
	alreadyCharged := att.CreditsDeducted > 0

	if !chargeable || alreadyCharged {
		if att.Status == req.Status && att.ID != uuid.Nil && !chargeable {
			// Same status, nothing to charge: full no-op.
			return result, nil
		}
		att.Status = req.Status
		att.MarkedAt = time.Now()
		if err := s.classRepo.SaveAttendance(nil, att); err != nil {
			return nil, err
		}
		return result, nil
	}

	instructorID, err := s.resolveInstructor(class)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.DebitCredits(tx, student.ID, req.Credits); err != nil {
			if errors.Is(err, repository.ErrInsufficientCredits) {
				return fmt.Errorf("%w: student %s has fewer than %d credits", ErrInsufficientCredits, student.ID, req.Credits)
			}
			return err
		}
		if err := s.userRepo.CreditCredits(tx, instructorID, req.Credits); err != nil {
			return err
		}
		att.Status = req.Status
		att.CreditsDeducted = req.Credits
		att.ReasonForCreditDeduction = req.CreditReason
		att.MarkedAt = time.Now()
		return s.classRepo.SaveAttendance(tx, att)
	})
	if err != nil {
		return nil, err
	}

	result.CreditsDeducted = req.Credits
	result.CreditsAddedToInstructor = req.Credits
	result.InstructorID = &instructorID
	return result, nil
}

// resolveInstructor picks the credit recipient for a class: the
// academy-assigned instructor list first, then the course's own
// instructor, then the tutor attached to the session itself.
func (s *ledgerService) resolveInstructor(class *models.Class) (uuid.UUID, error) {
	if class.Course != nil {
		for _, instr := range class.Course.Instructors {
			if instr.Role == models.RoleTutor {
				return instr.ID, nil
			}
		}
		if class.Course.InstructorID != nil {
			return *class.Course.InstructorID, nil
		}
	}
	if class.TutorID != nil {
		return *class.TutorID, nil
	}
	return uuid.Nil, fmt.Errorf("%w: class %s", ErrInstructorUnresolved, class.ID)
}

// MarkAttendanceBulk marks each record independently and reports
// per-record outcomes; ok is false when any record failed.
func (s *ledgerService) MarkAttendanceBulk(classID uuid.UUID, records []BulkAttendanceRecord) ([]BulkAttendanceResult, bool) {
	results := make([]BulkAttendanceResult, 0, len(records))
	ok := true
	for _, rec := range records {
		res, err := s.MarkAttendance(MarkAttendanceRequest{
			StudentID: rec.StudentID,
			ClassID:   classID,
			Status:    rec.Status,
			Credits:   rec.Credits,
		})
		if err != nil {
			ok = false
			results = append(results, BulkAttendanceResult{StudentID: rec.StudentID, Error: err.Error()})
			continue
		}
		results = append(results, BulkAttendanceResult{StudentID: rec.StudentID, Success: true, Result: res})
	}
	return results, ok
}
