package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Gagan-Meena1/upkraft-sub006/internal/auth"
	"github.com/Gagan-Meena1/upkraft-sub006/internal/models"
	"github.com/Gagan-Meena1/upkraft-sub006/internal/repository"
	"github.com/Gagan-Meena1/upkraft-sub006/internal/services"
)

const testSecret = "handler-test-secret"

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

// newTestEnv wires a router with the auth middleware and the
// attendance routes over an in-memory database.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Class{},
		&models.ClassAttendance{},
		&models.Payment{},
		&models.Assignment{},
		&models.Submission{},
		&models.Feedback{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	userRepo := repository.NewUserRepository(db)
	classRepo := repository.NewClassRepository(db)

	authService := services.NewAuthService(userRepo, testSecret, time.Hour, 10*time.Minute)
	ledger := services.NewLedgerService(db, userRepo, classRepo)
	attendance := NewAttendanceHandler(ledger)

	router := gin.New()
	protected := router.Group("/api")
	protected.Use(AuthMiddleware(authService))
	protected.POST("/attendance",
		RequireRoles(models.RoleTutor, models.RoleAcademy, models.RoleAdmin),
		attendance.Mark)
	protected.GET("/tutor/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId":       currentUser(c).ID,
			"impersonated": currentClaims(c).Impersonated(),
		})
	})

	return &testEnv{db: db, router: router}
}

func (e *testEnv) createUser(t *testing.T, name string, role models.Role, credits int64) *models.User {
	t.Helper()
	u := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        strings.ToLower(name) + "@test.local",
		PasswordHash: "x",
		Role:         role,
		Credits:      credits,
	}
	if err := e.db.Create(u).Error; err != nil {
		t.Fatalf("createUser(%s): %v", name, err)
	}
	return u
}

func (e *testEnv) createClass(t *testing.T, tutorID uuid.UUID) *models.Class {
	t.Helper()
	course := &models.Course{
		ID:           uuid.New(),
		Title:        "guitar",
		Price:        decimal.NewFromInt(1000),
		InstructorID: &tutorID,
	}
	if err := e.db.Create(course).Error; err != nil {
		t.Fatalf("create course: %v", err)
	}
	class := &models.Class{
		ID:       uuid.New(),
		CourseID: course.ID,
		Title:    "session",
		StartAt:  time.Now(),
		EndAt:    time.Now().Add(time.Hour),
		Status:   models.ClassScheduled,
		TutorID:  &tutorID,
	}
	if err := e.db.Create(class).Error; err != nil {
		t.Fatalf("create class: %v", err)
	}
	return class
}

func (e *testEnv) request(t *testing.T, method, target string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()
	token, err := auth.Mint(testSecret, user, time.Hour)
	if err != nil {
		t.Fatalf("mint session token: %v", err)
	}
	return &http.Cookie{Name: auth.SessionCookie, Value: token}
}

func TestMarkAttendanceRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/attendance", gin.H{"status": "present"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestMarkAttendanceRejectsStudents(t *testing.T) {
	env := newTestEnv(t)
	student := env.createUser(t, "sam", models.RoleStudent, 10)

	w := env.request(t, http.MethodPost, "/api/attendance",
		gin.H{"status": "present"}, sessionCookie(t, student))
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestMarkAttendanceSingle(t *testing.T) {
	env := newTestEnv(t)
	tutor := env.createUser(t, "tina", models.RoleTutor, 0)
	student := env.createUser(t, "sam", models.RoleStudent, 5)
	class := env.createClass(t, tutor.ID)

	target := fmt.Sprintf("/api/attendance?studentId=%s&classId=%s", student.ID, class.ID)
	w := env.request(t, http.MethodPost, target,
		gin.H{"status": "present", "credits": 1, "creditReason": "weekly session"},
		sessionCookie(t, tutor))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var updated models.User
	if err := env.db.First(&updated, "id = ?", student.ID).Error; err != nil {
		t.Fatalf("reload student: %v", err)
	}
	if updated.Credits != 4 {
		t.Errorf("student credits = %d, want 4", updated.Credits)
	}
}

func TestMarkAttendanceBulkPartialFailure(t *testing.T) {
	env := newTestEnv(t)
	tutor := env.createUser(t, "tina", models.RoleTutor, 0)
	student := env.createUser(t, "sam", models.RoleStudent, 5)
	class := env.createClass(t, tutor.ID)

	body := gin.H{
		"classId": class.ID,
		"attendanceRecords": []gin.H{
			{"studentId": student.ID, "status": "present", "credits": 1},
			{"studentId": uuid.New(), "status": "present", "credits": 1},
		},
	}
	w := env.request(t, http.MethodPost, "/api/attendance", body, sessionCookie(t, tutor))
	if w.Code != http.StatusMultiStatus {
		t.Fatalf("status = %d, want 207, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Results []struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		} `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success {
		t.Error("success = true, want false")
	}
	if len(resp.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(resp.Results))
	}
	if !resp.Results[0].Success || resp.Results[1].Success {
		t.Errorf("per-record success = %v/%v, want true/false",
			resp.Results[0].Success, resp.Results[1].Success)
	}
}

func TestMarkAttendanceBulkAllSucceed(t *testing.T) {
	env := newTestEnv(t)
	tutor := env.createUser(t, "tina", models.RoleTutor, 0)
	a := env.createUser(t, "ann", models.RoleStudent, 5)
	b := env.createUser(t, "ben", models.RoleStudent, 5)
	class := env.createClass(t, tutor.ID)

	body := gin.H{
		"classId": class.ID,
		"attendanceRecords": []gin.H{
			{"studentId": a.ID, "status": "present", "credits": 1},
			{"studentId": b.ID, "status": "absent", "credits": 1},
		},
	}
	w := env.request(t, http.MethodPost, "/api/attendance", body, sessionCookie(t, tutor))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
}

func TestImpersonationCookieOnTutorRoute(t *testing.T) {
	env := newTestEnv(t)
	rm := env.createUser(t, "rita", models.RoleRelationshipManager, 0)
	tutor := env.createUser(t, "tina", models.RoleTutor, 0)

	impToken, err := auth.MintImpersonation(testSecret, rm, tutor, 10*time.Minute)
	if err != nil {
		t.Fatalf("mint impersonation token: %v", err)
	}

	// On a tutor-scoped path the impersonation cookie outranks the
	// manager's own session cookie.
	w := env.request(t, http.MethodGet, "/api/tutor/whoami", nil,
		sessionCookie(t, rm),
		&http.Cookie{Name: auth.ImpersonationCookie, Value: impToken})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		UserID       uuid.UUID `json:"userId"`
		Impersonated bool      `json:"impersonated"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.UserID != tutor.ID {
		t.Errorf("userId = %s, want tutor %s", resp.UserID, tutor.ID)
	}
	if !resp.Impersonated {
		t.Error("impersonated = false, want true")
	}
}
