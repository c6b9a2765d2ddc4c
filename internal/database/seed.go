package database

import (
	"log"

	"github.com/bleep333/fake-shop-sub001/internal/config"
	"github.com/bleep333/fake-shop-sub001/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// seedDemoData bootstraps an admin account and a small catalog on an empty
// database. Existing rows are never touched.
func seedDemoData(cfg *config.Config) {
	var userCount int64
	DB.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Could not hash admin password: %v", err)
		}
		admin := models.User{
			Name:         "Admin",
			Email:        cfg.AdminEmail,
			PasswordHash: string(hash),
			IsAdmin:      true,
		}
		if err := DB.Create(&admin).Error; err != nil {
			log.Fatalf("Could not create admin user: %v", err)
		}
		log.Println("Seeded admin user:", admin.Email)
	}

	var productCount int64
	DB.Model(&models.Product{}).Count(&productCount)
	if productCount > 0 {
		return
	}

	products := []models.Product{
		{
			Name:        "Classic Tee",
			Description: "Plain cotton t-shirt",
			Category:    "shirts",
			Price:       19.90,
			Sizes: []models.ProductSize{
				{Size: "S", Stock: 20},
				{Size: "M", Stock: 30},
				{Size: "L", Stock: 25},
			},
		},
		{
			Name:        "Denim Jacket",
			Description: "Stonewashed denim jacket",
			Category:    "jackets",
			Price:       79.50,
			Sizes: []models.ProductSize{
				{Size: "M", Stock: 10},
				{Size: "L", Stock: 8},
			},
		},
		{
			Name:        "Canvas Sneakers",
			Description: "Low-top canvas sneakers",
			Category:    "shoes",
			Price:       49.00,
			Sizes: []models.ProductSize{
				{Size: "40", Stock: 12},
				{Size: "42", Stock: 15},
				{Size: "44", Stock: 9},
			},
		},
	}

	for i := range products {
		if err := DB.Create(&products[i]).Error; err != nil {
			log.Printf("Could not seed product %q: %v", products[i].Name, err)
		}
	}
	log.Printf("Seeded %d demo products", len(products))
}
