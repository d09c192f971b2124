package database

import (
	"github.com/nhatrovn/rental-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Init(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	// Auto migrate schemas
	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.PasswordResetToken{},
		&models.Category{},
		&models.Amenity{},
		&models.Post{},
		&models.PostImage{},
		&models.SavedPost{},
		&models.Review{},
		&models.ReviewReply{},
		&models.Blog{},
		&models.LessorRequest{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
