package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Gagan-Meena1/upkraft-sub006/internal/auth"
	"github.com/Gagan-Meena1/upkraft-sub006/internal/models"
	"github.com/Gagan-Meena1/upkraft-sub006/internal/services"
)

// AuthHandler exposes signup, login and impersonation endpoints.
type AuthHandler struct {
	authService  *services.AuthService
	cookieSecure bool
	cookieMaxAge int
}

// NewAuthHandler creates the auth handler. cookieMaxAge is in seconds.
func NewAuthHandler(authService *services.AuthService, cookieSecure bool, cookieMaxAge int) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieSecure: cookieSecure,
		cookieMaxAge: cookieMaxAge,
	}
}

// SignupRequest is the signup payload.
type SignupRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=8"`
	Role     models.Role `json:"role" binding:"required"`
	Phone    string      `json:"phone"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ImpersonateRequest names the tutor a relationship manager wants to
// act as.
type ImpersonateRequest struct {
	TutorID uuid.UUID `json:"tutorId" binding:"required"`
}

// Signup registers a user and sets the session cookie.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result, err := h.authService.Signup(services.SignupRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Phone:    req.Phone,
	})
	if err != nil {
		fail(c, err)
		return
	}

	h.setCookie(c, auth.SessionCookie, result.Token, h.cookieMaxAge)
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": result.User, "token": result.Token})
}

// Login checks credentials and sets the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	h.setCookie(c, auth.SessionCookie, result.Token, h.cookieMaxAge)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": result.User, "token": result.Token})
}

// Logout clears both session and impersonation cookies.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setCookie(c, auth.SessionCookie, "", -1)
	h.setCookie(c, auth.ImpersonationCookie, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "logged out"})
}

// Me returns the authenticated user, noting the impersonating actor
// when the credential is an impersonation token.
func (h *AuthHandler) Me(c *gin.Context) {
	user := currentUser(c)
	claims := currentClaims(c)

	resp := gin.H{"success": true, "user": user}
	if claims != nil && claims.Impersonated() {
		resp["impersonatedBy"] = claims.ActorID
	}
	c.JSON(http.StatusOK, resp)
}

// Impersonate mints an impersonation cookie for a relationship
// manager acting as a tutor.
func (h *AuthHandler) Impersonate(c *gin.Context) {
	var req ImpersonateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	token, err := h.authService.Impersonate(currentUser(c), req.TutorID)
	if err != nil {
		fail(c, err)
		return
	}

	h.setCookie(c, auth.ImpersonationCookie, token, h.cookieMaxAge)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "impersonation started"})
}

// StopImpersonation drops the impersonation cookie, falling back to
// the caller's own session.
func (h *AuthHandler) StopImpersonation(c *gin.Context) {
	h.setCookie(c, auth.ImpersonationCookie, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "impersonation stopped"})
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", h.cookieSecure, true)
}
