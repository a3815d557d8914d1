package services

import (
	"testing"

	"github.com/campusrate/campusrate-backend/internal/database"
	"github.com/campusrate/campusrate-backend/internal/models"
	"github.com/campusrate/campusrate-backend/pkg/logger"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.Init()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// An in-memory sqlite database lives per connection; pin the pool to one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Password: "password123",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createProfessor(t *testing.T, db *gorm.DB, name, department, university string) models.Professor {
	t.Helper()
	professor := models.Professor{
		Name:       name,
		Department: department,
		University: university,
	}
	require.NoError(t, db.Create(&professor).Error)
	return professor
}

func createReview(t *testing.T, db *gorm.DB, professorID uint, userID *uint, courseCode string, rating int, comment string) models.Review {
	t.Helper()
	review := models.Review{
		ProfessorID: professorID,
		UserID:      userID,
		CourseCode:  courseCode,
		Rating:      rating,
		Comment:     comment,
	}
	require.NoError(t, db.Create(&review).Error)
	return review
}
