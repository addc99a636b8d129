package database

import (
	"log"
	"os"

	"plastiwood-backend/models"
)

// SeedDefaultOwner creates the initial owner account when the users table is
// empty, so a fresh install can log in. Credentials come from
// SEED_OWNER_USERNAME / SEED_OWNER_PASSWORD.
func SeedDefaultOwner() {
	var count int64
	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		log.Printf("seed: user count failed: %v", err)
		return
	}
	if count > 0 {
		return
	}

	username := os.Getenv("SEED_OWNER_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("SEED_OWNER_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	owner := models.User{
		Username: username,
		Name:     "Owner",
		Role:     models.RoleOwner,
	}
	owner.SetPassword(password)
	if err := DB.Create(&owner).Error; err != nil {
		log.Printf("seed: could not create default owner: %v", err)
		return
	}
	log.Printf("seed: created default owner account %q", username)
}
