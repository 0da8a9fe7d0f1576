package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/evandrht/festipass/internal/helpers"
	"github.com/evandrht/festipass/internal/models"
)

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	FirstName   string `json:"first_name" binding:"required,alpha"`
	LastName    string `json:"last_name" binding:"required,alpha"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	DOB         string `json:"dob"`
	Country     string `json:"country" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var existingUser models.User
	if result := gormDB.Where("email = ?", req.Email).First(&existingUser); result.Error == nil {
		helpers.RespondWithError(c, http.StatusConflict, "email already exists!")
		return
	}

	var dob *time.Time
	if req.DOB != "" {
		parsed, err := time.Parse("2006-01-02", req.DOB)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "Invalid date of birth format, expected YYYY-MM-DD.")
			return
		}
		dob = &parsed
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to hash the password.")
		return
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		DOB:          dob,
		Country:      req.Country,
		IsActive:     true,
	}

	if err := gormDB.Create(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create user.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, "sign-up success!", user)
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var user models.User
	if err := gormDB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "email does not exist")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "wrong password")
		return
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		helpers.RespondWithError(c, http.StatusInternalServerError, "JWT_SECRET not configured.")
		return
	}

	now := time.Now().UTC()
	expiry := now.Add(7 * 24 * time.Hour)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID.String(),
		"exp":     expiry.Unix(),
	})
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token.")
		return
	}

	if err := gormDB.Model(&user).Update("last_login_at", now).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to record login.")
		return
	}

	// A user holds at most one live token; a new login retires the old one.
	if err := gormDB.Model(&models.AccessToken{}).
		Where("user_id = ? AND invalidated = ?", user.ID, false).
		Update("invalidated", true).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to invalidate previous session.")
		return
	}

	accessToken := models.AccessToken{
		Token:       tokenString,
		UserID:      user.ID,
		Expiry:      expiry,
		Invalidated: false,
		UserAgent:   c.GetHeader("User-Agent"),
	}
	if err := gormDB.Create(&accessToken).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to store access token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  1,
		"message": "auth success!",
		"data":    user,
		"token":   tokenString,
	})
}
