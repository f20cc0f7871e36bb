package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Gagan-Meena1/upkraft-sub006/internal/config"
	"github.com/Gagan-Meena1/upkraft-sub006/internal/handlers"
	"github.com/Gagan-Meena1/upkraft-sub006/internal/models"
	"github.com/Gagan-Meena1/upkraft-sub006/internal/repository"
	"github.com/Gagan-Meena1/upkraft-sub006/internal/services"
	"github.com/Gagan-Meena1/upkraft-sub006/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.New(cfg.DatabaseURL, cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db.DB)
	courseRepo := repository.NewCourseRepository(db.DB)
	classRepo := repository.NewClassRepository(db.DB)
	paymentRepo := repository.NewPaymentRepository(db.DB)
	assignmentRepo := repository.NewAssignmentRepository(db.DB)
	feedbackRepo := repository.NewFeedbackRepository(db.DB)

	// Services
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiration, cfg.ImpersonationTimeout)
	ledgerService := services.NewLedgerService(db.DB, userRepo, classRepo)
	paymentService := services.NewPaymentService(paymentRepo, courseRepo, userRepo)
	reconciliationService := services.NewReconciliationService(userRepo, assignmentRepo)
	courseService := services.NewCourseService(courseRepo, classRepo, userRepo)
	assignmentService := services.NewAssignmentService(assignmentRepo, userRepo)
	feedbackService := services.NewFeedbackService(feedbackRepo, classRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.CookieSecure, int(cfg.JWTExpiration/time.Second))
	attendanceHandler := handlers.NewAttendanceHandler(ledgerService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	fillingHandler := handlers.NewFillingHandler(reconciliationService)
	courseHandler := handlers.NewCourseHandler(courseService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService)

	router := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// Public auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// Everything below requires a credential
	protected := api.Group("/")
	protected.Use(handlers.AuthMiddleware(authService))
	{
		protected.GET("/auth/me", authHandler.Me)
		protected.POST("/auth/impersonate",
			handlers.RequireRoles(models.RoleRelationshipManager), authHandler.Impersonate)
		protected.DELETE("/auth/impersonate", authHandler.StopImpersonation)

		// Attendance and the credit ledger
		protected.POST("/attendance",
			handlers.RequireRoles(models.RoleTutor, models.RoleAcademy, models.RoleAdmin),
			attendanceHandler.Mark)

		// Payments
		protected.POST("/payments",
			handlers.RequireRoles(models.RoleStudent, models.RoleAdmin), paymentHandler.Create)
		protected.GET("/payments", paymentHandler.List)

		// Pending-assignment reconciliation
		protected.POST("/filling",
			handlers.RequireRoles(models.RoleAdmin, models.RoleRelationshipManager),
			fillingHandler.Reconcile)
		protected.GET("/filling", fillingHandler.Pending)

		// Courses and classes
		protected.POST("/courses",
			handlers.RequireRoles(models.RoleTutor, models.RoleAcademy, models.RoleAdmin),
			courseHandler.Create)
		protected.GET("/courses", courseHandler.List)
		protected.GET("/courses/:id", courseHandler.Get)
		protected.POST("/courses/:id/enroll", courseHandler.Enroll)
		protected.POST("/courses/:id/instructors",
			handlers.RequireRoles(models.RoleAcademy, models.RoleAdmin),
			courseHandler.AssignInstructor)
		protected.POST("/courses/:id/classes",
			handlers.RequireRoles(models.RoleTutor, models.RoleAcademy, models.RoleAdmin),
			courseHandler.CreateClass)
		protected.GET("/courses/:id/classes", courseHandler.ListClasses)
		protected.PATCH("/classes/:id/status",
			handlers.RequireRoles(models.RoleTutor, models.RoleAcademy, models.RoleAdmin),
			courseHandler.UpdateClassStatus)
		protected.GET("/classes/:id/feedback", feedbackHandler.ListByClass)

		// Assignments and submissions
		protected.POST("/assignments",
			handlers.RequireRoles(models.RoleTutor), assignmentHandler.Create)
		protected.GET("/assignments", assignmentHandler.List)
		protected.GET("/assignments/:id", assignmentHandler.Get)
		protected.POST("/assignments/:id/submissions",
			handlers.RequireRoles(models.RoleStudent), assignmentHandler.Submit)
		protected.PATCH("/assignments/:id/submissions/:sid",
			handlers.RequireRoles(models.RoleTutor, models.RoleRelationshipManager, models.RoleAdmin),
			assignmentHandler.Review)

		// Feedback
		protected.POST("/feedback",
			handlers.RequireRoles(models.RoleTutor), feedbackHandler.Create)
		protected.GET("/feedback", feedbackHandler.ListMine)
		protected.PUT("/feedback/:id",
			handlers.RequireRoles(models.RoleTutor), feedbackHandler.Update)
		protected.PATCH("/feedback/:id/editable",
			handlers.RequireRoles(models.RoleRelationshipManager, models.RoleAdmin),
			feedbackHandler.SetEditable)
	}

	// Tutor-scoped dashboard routes. Paths under /api/tutor make the
	// impersonation cookie win over the session cookie, so a
	// relationship manager browsing here acts as the tutor.
	tutor := api.Group("/tutor")
	tutor.Use(handlers.AuthMiddleware(authService))
	tutor.Use(handlers.RequireRoles(models.RoleTutor))
	{
		tutor.GET("/assignments", assignmentHandler.List)
		tutor.GET("/pending", fillingHandler.PendingSelf)
	}

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	log.Printf("Starting academyd on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
