package database

import (
	"os"
	"time"

	"fyp-portal/internal/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(dsn string) {
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Info().Int("attempt", i).Int("max", maxAttempts).Msg("connecting to database")

		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			log.Info().Msg("connected to database")
			break
		}

		log.Warn().Err(err).Msg("database connection failed")
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatal().Err(err).Int("attempts", maxAttempts).Msg("giving up connecting to database")
	}

	if err := Migrate(DB); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	createDefaultAdmin()
	seedDemoAccounts()
}

// Migrate runs AutoMigrate for every table. Shared with tests, which
// run it against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.Supervisor{},
		&models.Project{},
		&models.ProjectTopic{},
		&models.Notification{},
	)
}

// admin account only ever comes from env / defaults, never from the
// registration form
func createDefaultAdmin() {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "Admin123!"
	}

	var count int64
	if err := DB.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		log.Error().Err(err).Msg("failed to check for admin user")
		return
	}
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash default admin password")
		return
	}

	admin := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}

	if err := DB.Create(&admin).Error; err != nil {
		log.Error().Err(err).Msg("failed to create default admin")
		return
	}

	log.Info().Str("username", username).Msg("created default admin user")
}

// demo supervisor + student so a fresh database is usable straight away
func seedDemoAccounts() {
	seedSupervisor("jsmith", "Demo123!", models.Supervisor{
		FirstName:       "Jane",
		LastName:        "Smith",
		Email:           "j.smith@sussex.ac.uk",
		SussexID:        "sv100001",
		Department:      "Informatics",
		TelephoneNumber: "01273000001",
	})
	seedStudent("abrown", "Demo123!", models.Student{
		FirstName: "Alex",
		LastName:  "Brown",
		Email:     "a.brown@sussex.ac.uk",
		SussexID:  "st200001",
		Course:    "Computer Science BSc",
	})
}

func seedSupervisor(username, password string, profile models.Supervisor) {
	user, ok := seedUser(username, password, models.RoleSupervisor)
	if !ok {
		return
	}
	profile.UserID = user.ID
	if err := DB.Create(&profile).Error; err != nil {
		log.Error().Err(err).Str("username", username).Msg("failed to create supervisor profile")
	}
}

func seedStudent(username, password string, profile models.Student) {
	user, ok := seedUser(username, password, models.RoleStudent)
	if !ok {
		return
	}
	profile.UserID = user.ID
	if err := DB.Create(&profile).Error; err != nil {
		log.Error().Err(err).Str("username", username).Msg("failed to create student profile")
	}
}

func seedUser(username, password string, role models.UserRole) (*models.User, bool) {
	var count int64
	if err := DB.Model(&models.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		log.Error().Err(err).Str("username", username).Msg("failed to check seed user")
		return nil, false
	}
	if count > 0 {
		return nil, false
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Str("username", username).Msg("failed to hash seed password")
		return nil, false
	}

	user := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := DB.Create(&user).Error; err != nil {
		log.Error().Err(err).Str("username", username).Msg("failed to create seed user")
		return nil, false
	}

	log.Info().Str("username", username).Str("role", string(role)).Msg("created seed user")
	return &user, true
}
