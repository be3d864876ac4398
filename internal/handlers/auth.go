package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/joykbiswas/prisma-blog-app-backend/internal/apperr"
	"github.com/joykbiswas/prisma-blog-app-backend/internal/auth"
	"github.com/joykbiswas/prisma-blog-app-backend/internal/models"
	"github.com/joykbiswas/prisma-blog-app-backend/internal/sms"
)

type AuthHandler struct {
	db       *gorm.DB
	verifier sms.Verifier
}

func NewAuthHandler(db *gorm.DB, verifier sms.Verifier) *AuthHandler {
	return &AuthHandler{db: db, verifier: verifier}
}

// jwtSecret is read lazily so .env autoload always wins the race with
// package initialization.
func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GoogleUserInfo represents user data from Google OAuth
type GoogleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Picture       string `json:"picture"`
	Name          string `json:"name"`
}

// verifyGoogleIDToken verifies the Google ID token and returns user info
func verifyGoogleIDToken(idToken string) (*GoogleUserInfo, error) {
	resp, err := http.Get(
		"https://oauth2.googleapis.com/tokeninfo?id_token=" + idToken,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("invalid google token")
	}

	var user GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	if !user.EmailVerified {
		return nil, fmt.Errorf("email not verified")
	}

	return &user, nil
}

// Register handles email/password signup. New users get the USER role.
func (h *AuthHandler) Register(c *gin.Context) {
	var input models.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validation("Registration failed", err.Error()))
		return
	}

	var existingUser models.User
	if err := h.db.Where("email = ?", input.Email).First(&existingUser).Error; err == nil {
		respondError(c, apperr.Validation("Registration failed", "email already exists"))
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, apperr.Internal("Failed to hash password", err))
		return
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		Password:     string(hashedPassword),
		Phone:        input.Phone,
		Role:         models.RoleUser,
		Status:       models.UserActive,
		AuthProvider: "email",
	}

	if err := h.db.Create(&user).Error; err != nil {
		respondError(c, apperr.Internal("Failed to create user", err))
		return
	}

	tokenString, err := auth.GenerateToken(&user, jwtSecret())
	if err != nil {
		respondError(c, apperr.Internal("Failed to generate token", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"token":   tokenString,
		"user":    user,
	})
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var input models.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validation("Login failed", err.Error()))
		return
	}

	var user models.User
	if err := h.db.Where("email = ? AND auth_provider = ?", input.Email, "email").First(&user).Error; err != nil {
		respondError(c, apperr.Unauthorized("Invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		respondError(c, apperr.Unauthorized("Invalid credentials"))
		return
	}

	tokenString, err := auth.GenerateToken(&user, jwtSecret())
	if err != nil {
		respondError(c, apperr.Internal("Failed to generate token", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"token":   tokenString,
		"user":    user,
	})
}

// GoogleLogin signs a user in with a verified Google ID token, creating
// the account on first sign-in.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var input models.OAuthRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validation("Google sign-in failed", err.Error()))
		return
	}

	googleUser, err := verifyGoogleIDToken(input.Token)
	if err != nil {
		respondError(c, apperr.Unauthorized("Invalid Google token"))
		return
	}

	var user models.User
	result := h.db.Where("email = ? OR google_id = ?", googleUser.Email, googleUser.Sub).First(&user)

	if result.Error == gorm.ErrRecordNotFound {
		name := input.Name
		if name == "" {
			name = googleUser.Name
		}
		if name == "" {
			name = strings.SplitN(googleUser.Email, "@", 2)[0]
		}

		user = models.User{
			Name:          name,
			Email:         googleUser.Email,
			Role:          models.RoleUser,
			Status:        models.UserActive,
			EmailVerified: true, // Google already verified it
			GoogleID:      googleUser.Sub,
			AuthProvider:  "google",
		}

		if err := h.db.Create(&user).Error; err != nil {
			respondError(c, apperr.Internal("Failed to create user", err))
			return
		}
	} else if result.Error != nil {
		respondError(c, apperr.Internal("Database error", result.Error))
		return
	} else if user.GoogleID == "" {
		// Existing email account - link the Google identity
		user.GoogleID = googleUser.Sub
		h.db.Save(&user)
	}

	tokenString, err := auth.GenerateToken(&user, jwtSecret())
	if err != nil {
		respondError(c, apperr.Internal("Failed to generate token", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   tokenString,
		"user":    user,
	})
}

// GetMe returns the caller's user record.
func (h *AuthHandler) GetMe(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", principal.ID).Error; err != nil {
		respondError(c, apperr.NotFound("User not found"))
		return
	}
	c.JSON(http.StatusOK, user)
}

// SendPhoneCode starts phone verification for the caller.
func (h *AuthHandler) SendPhoneCode(c *gin.Context) {
	if _, ok := requirePrincipal(c); !ok {
		return
	}

	var input models.SendPhoneCodeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validation("Phone verification failed", err.Error()))
		return
	}

	if err := h.verifier.SendCode(c.Request.Context(), input.Phone); err != nil {
		respondError(c, apperr.Internal("Failed to send verification code", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Verification code sent",
	})
}

// VerifyPhone confirms the code and stores the verified number.
func (h *AuthHandler) VerifyPhone(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var input models.VerifyPhoneRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperr.Validation("Phone verification failed", err.Error()))
		return
	}

	approved, err := h.verifier.CheckCode(c.Request.Context(), input.Phone, input.Code)
	if err != nil {
		respondError(c, apperr.Internal("Failed to check verification code", err))
		return
	}
	if !approved {
		respondError(c, apperr.Validation("Phone verification failed", "invalid or expired code"))
		return
	}

	err = h.db.Model(&models.User{}).
		Where("id = ?", principal.ID).
		Updates(map[string]interface{}{
			"phone":          input.Phone,
			"phone_verified": true,
		}).Error
	if err != nil {
		respondError(c, apperr.Internal("Failed to update user", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Phone number verified",
	})
}
