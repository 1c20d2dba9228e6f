package services

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/leiwu84/my-nutri/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func f64(v float64) *float64 { return &v }

func str(v string) *string { return &v }

func unitStr(u models.Unit) *string {
	s := u.String()
	return &s
}

// seedFood inserts one food through the service and returns it.
func seedFood(t *testing.T, svc *FoodService, name, kind string, amount float64, calories *float64) models.Food {
	t.Helper()

	res, err := svc.CreateFoods([]models.FoodCreate{{
		Name:     name,
		Kind:     kind,
		Amount:   &amount,
		Calories: calories,
	}})
	require.NoError(t, err)
	require.Equal(t, 1, res.Created)

	foods, err := svc.FindFoodsByName(name, kindOrDefault(kind))
	require.NoError(t, err)
	require.Len(t, foods, 1)
	return foods[0]
}

func kindOrDefault(kind string) string {
	if kind == "" {
		return models.DefaultKind
	}
	return kind
}
