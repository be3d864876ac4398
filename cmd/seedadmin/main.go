// Command seedadmin bootstraps the admin account. Safe to run repeatedly:
// it refuses to touch an existing user with the same email.
package main

import (
	"errors"
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/joykbiswas/prisma-blog-app-backend/internal/database"
	"github.com/joykbiswas/prisma-blog-app-backend/internal/models"
)

func main() {
	log.Println("**** Admin Seeding Start ****")

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@test2.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "password1234"
	}

	db := database.New().GetDB()

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Fatalf("User %s already exists", email)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to check existing user: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := models.User{
		Name:          "Admin",
		Email:         email,
		Password:      string(hashed),
		Role:          models.RoleAdmin,
		Status:        models.UserActive,
		EmailVerified: true,
		AuthProvider:  "email",
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	log.Printf("**** Admin %s created ****", email)
}
