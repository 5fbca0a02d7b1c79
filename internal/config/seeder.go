package config

import (
	"log"

	"campus-assetdesk/internal/adapters/persistence/models"
	"campus-assetdesk/internal/core/domain"
	"campus-assetdesk/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("Warning: admin seeder skipped: %v", err)
	}

	log.Println("Database seeding completed")
	return nil
}

// seedAdminUser seeds a default admin account if none exists.
// Development convenience only; production admins are created through
// a controlled process.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", string(domain.RoleAdmin)).Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: "admin",
		Email:    "admin@campus.local",
		FullName: "System Administrator",
		Password: hashedPassword,
		Role:     string(domain.RoleAdmin),
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("Seeded default admin user (username: admin)")
	return nil
}

// SeedData runs the seeder against the given database
func SeedData(db *gorm.DB) error {
	return NewSeeder(db).Run()
}
