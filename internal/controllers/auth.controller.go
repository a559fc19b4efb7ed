package controllers

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"campusconnect/internal/auth"
	"campusconnect/internal/mailer"
	"campusconnect/internal/middleware"
	"campusconnect/internal/models"
	"campusconnect/internal/repository"
	"campusconnect/internal/utils"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=student employer admin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6"`
}

type AuthController struct {
	userRepo repository.UserRepository
	mail     mailer.Mailer
}

func NewAuthController(userRepo repository.UserRepository, mail mailer.Mailer) *AuthController {
	return &AuthController{userRepo: userRepo, mail: mail}
}

// Register godoc
// @Summary Register a new account
// @Description Creates an unverified account and emails a verification link
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration details"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "All fields are required",
			"error":   err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := ac.userRepo.GetUserByEmail(email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "User already exists",
		})
		return
	}

	verificationToken, err := utils.GenerateRandomToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Server error",
		})
		return
	}

	user := models.User{
		Name:              req.Name,
		Email:             email,
		Password:          req.Password,
		Role:              req.Role,
		VerificationToken: verificationToken,
	}

	if err := ac.userRepo.CreateUser(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to create user account",
		})
		return
	}

	// Verification mail is best-effort: registration succeeds even when the
	// mail bounces, the user can request a resend later.
	verificationURL := os.Getenv("FRONTEND_URL") + "/verify-email/" + verificationToken
	go func() {
		body := "Welcome to Campus Connect!\r\n\r\nPlease verify your email by visiting: " + verificationURL
		if err := ac.mail.Send(user.Email, "Email Verification - Campus Connect", body); err != nil {
			log.Printf("Failed to send verification email to %s: %v", user.Email, err)
		}
	}()

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully. Please check your email to verify your account.",
		"data":    user,
	})
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Please provide email and password",
			"error":   err.Error(),
		})
		return
	}

	user, err := ac.userRepo.GetUserByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Invalid credentials",
		})
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Invalid credentials",
		})
		return
	}

	if !user.IsVerified {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "User not verified",
		})
		return
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Could not generate token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User logged in successfully",
		"data": gin.H{
			"user":  user,
			"token": token,
		},
	})
}

// VerifyEmail flips the verification flag for the user holding the token and
// clears the token so the link is single-use.
func (ac *AuthController) VerifyEmail(c *gin.Context) {
	token := c.Param("token")

	user, err := ac.userRepo.GetUserByVerificationToken(token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid verification token",
		})
		return
	}

	user.IsVerified = true
	user.VerificationToken = ""

	if err := ac.userRepo.UpdateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to verify user",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Email verified successfully",
	})
}

// ForgotPassword stores a hashed single-use reset token valid for 10 minutes
// and emails the raw token. If the mail cannot be sent the token fields are
// rolled back so no orphaned reset state survives.
func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Please provide an email",
			"error":   err.Error(),
		})
		return
	}

	user, err := ac.userRepo.GetUserByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "User not found",
		})
		return
	}

	resetToken, err := utils.GenerateRandomToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Server error",
		})
		return
	}

	expire := time.Now().Add(10 * time.Minute)
	user.ResetPasswordToken = utils.HashToken(resetToken)
	user.ResetPasswordExpire = &expire

	if err := ac.userRepo.UpdateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Server error",
		})
		return
	}

	resetURL := os.Getenv("FRONTEND_URL") + "/reset-password/" + resetToken
	body := "You are receiving this email because a password reset was requested for your account.\r\n\r\n" +
		"Reset your password here: " + resetURL + "\r\n\r\nThis link will expire in 10 minutes. " +
		"If you didn't request this, please ignore this email."

	if err := ac.mail.Send(user.Email, "Password Reset - Campus Connect", body); err != nil {
		user.ResetPasswordToken = ""
		user.ResetPasswordExpire = nil
		if rollbackErr := ac.userRepo.UpdateUser(user); rollbackErr != nil {
			log.Printf("Failed to roll back reset token for %s: %v", user.Email, rollbackErr)
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Email could not be sent",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password reset email sent",
	})
}

// ResetPassword redeems a reset token. The stored digest must match and the
// expiry must still be in the future; redeeming clears both fields, so a
// token can never be used twice.
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Please provide a new password",
			"error":   err.Error(),
		})
		return
	}

	hashedToken := utils.HashToken(c.Param("token"))

	user, err := ac.userRepo.GetUserByResetToken(hashedToken, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid or expired token",
		})
		return
	}

	user.Password = req.Password
	user.ResetPasswordToken = ""
	user.ResetPasswordExpire = nil

	if err := ac.userRepo.UpdateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to reset password",
		})
		return
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Could not generate token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password reset successful",
		"data":    gin.H{"token": token},
	})
}

// GetMe returns the authenticated user's full profile.
func (ac *AuthController) GetMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Not authorized to access this route",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

// Logout has no server-side effect: tokens are stateless and the client
// discards its copy.
func (ac *AuthController) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User logged out successfully",
		"data":    nil,
	})
}
