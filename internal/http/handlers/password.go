package handlers

import (
	"net/http"

	"warehouse/internal/http/middleware"
	"warehouse/internal/utils"

	"github.com/gin-gonic/gin"
)

// The forgot-password flow is three independent request/response steps:
// request a PIN, verify it (single-use), reset the password. Only the
// email carries between steps, client-side.

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// POST /api/auth/forgot-password
func ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if _, err := pinSvc.Request(req.Email); err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "password", "pin_requested", "email="+utils.NormalizeEmail(req.Email))
	c.JSON(http.StatusOK, gin.H{"message": "a PIN has been sent to your email"})
}

type verifyPinRequest struct {
	Email string `json:"email"`
	PIN   string `json:"pin"`
}

// POST /api/auth/verify-pin
func VerifyPin(c *gin.Context) {
	var req verifyPinRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if err := pinSvc.Verify(req.Email, req.PIN); err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "PIN verified"})
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"new_password"`
}

// POST /api/auth/reset-password
func ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if err := authSvc.ResetPassword(req.Email, req.NewPassword); err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "password", "reset", "email="+utils.NormalizeEmail(req.Email))
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
