package handlers

import (
	"net/http"
	"strings"

	"warehouse/internal/domain"
	"warehouse/internal/http/middleware"
	"warehouse/internal/repositories"
	"warehouse/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	user, token, err := authSvc.Login(req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "login", "email="+utils.NormalizeEmail(req.Email))
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
// Self-signup always lands at the staff role; promotion is an admin action
// on the users module.
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	req.Name = utils.NormalizeSpace(req.Name)
	req.Email = utils.NormalizeEmail(req.Email)
	if req.Name == "" || req.Email == "" || len(req.Password) < 6 {
		RespondDomainError(c, domain.ValidationError{Msg: "name, email and a password of at least 6 characters are required"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "password hashing failed", Err: err})
		return
	}

	rec := repositories.UserRecord{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleStaff,
		Status:       "active",
	}
	id, err := userStore.Create(rec)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	rec.ID = id

	user := rec.ToUser()
	token, err := authSvc.IssueToken(user)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "token signing failed", Err: err})
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "register", "email="+req.Email)
	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	})
}

// GET /api/auth/validate
// Returns the fresh user for a valid bearer token, 401 otherwise. This is
// the startup token-validation collaborator of the dashboard client.
func Validate(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "missing bearer token", nil)
		return
	}

	user, validated, err := authSvc.ValidateToken(token)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": validated,
		"user":  user,
	})
}

// POST /api/auth/refresh
func Refresh(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized", "missing bearer token", nil)
		return
	}

	user, fresh, err := authSvc.Refresh(token)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": fresh,
		"user":  user,
	})
}

// POST /api/auth/logout
// Best-effort from the client's perspective: always succeeds locally, so
// this endpoint never returns an error status for a well-formed request.
func Logout(c *gin.Context) {
	utils.LogEvent(middleware.GetRequestID(c), "auth", "logout", "")
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func bearerToken(c *gin.Context) (string, bool) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	token, ok := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}
