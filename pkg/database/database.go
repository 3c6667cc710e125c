package database

import (
	"fmt"
	"log"

	"award_backend/internal/config"
	"award_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Category{},
		&model.Question{},
		&model.QuestionOption{},
		&model.Session{},
		&model.Response{},
		&model.ReviewComment{},
		&model.JuryScore{},
		&model.AwardRanking{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Default rubric categories so a fresh install can score immediately.
	var count int64
	db.Model(&model.Category{}).Count(&count)
	if count == 0 {
		defaults := []model.Category{
			{Name: "Cakupan Program", Weight: 0.2, MinValue: 0, MaxValue: 100, ScoreType: model.ScoreTypePercentage},
			{Name: "Jumlah Penerima Manfaat", Weight: 0.3, MinValue: 0, MaxValue: 10000, ScoreType: model.ScoreTypeNumber},
			{Name: "Anggaran Program", Weight: 0.1, MinValue: 0, MaxValue: 1000000000, ScoreType: model.ScoreTypeCurrency},
			{Name: "Keberlanjutan", Weight: 0.25, MinValue: 1, MaxValue: 5, ScoreType: model.ScoreTypeRating},
			{Name: "Kemitraan", Weight: 0.15, MinValue: 0, MaxValue: 1, ScoreType: model.ScoreTypeBoolean},
		}
		for _, cat := range defaults {
			db.Create(&cat)
		}
	}

	return db, nil
}
