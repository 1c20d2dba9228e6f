package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leiwu84/my-nutri/apperrors"
	"github.com/leiwu84/my-nutri/models"
)

func TestCreateFoodsSkipsDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewFoodService(db)

	res, err := svc.CreateFoods([]models.FoodCreate{
		{Name: "Apple", Kind: "Fuji", Calories: f64(52)},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 0, res.Skipped)

	// Same (name, kind) again: one stored row, skip count of 1.
	res, err = svc.CreateFoods([]models.FoodCreate{
		{Name: "Apple", Kind: "Fuji"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 1, res.Skipped)

	var count int64
	require.NoError(t, db.Model(&models.Food{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateFoodsDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewFoodService(db)

	res, err := svc.CreateFoods([]models.FoodCreate{{Name: "Apple"}})
	require.NoError(t, err)
	require.Equal(t, 1, res.Created)

	foods, err := svc.FindFoodsByName("Apple", "")
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, models.DefaultKind, foods[0].Kind)
	assert.Equal(t, 100.0, foods[0].Amount)
	assert.Equal(t, "g", foods[0].Unit)
	assert.Nil(t, foods[0].Calories)
}

func TestCreateFoodsSameNameDifferentKind(t *testing.T) {
	db := newTestDB(t)
	svc := NewFoodService(db)

	res, err := svc.CreateFoods([]models.FoodCreate{
		{Name: "Apple", Kind: "Fuji"},
		{Name: "Apple", Kind: "Gala"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 0, res.Skipped)
}

func TestCreateFoodsInvalidUnit(t *testing.T) {
	db := newTestDB(t)
	svc := NewFoodService(db)

	_, err := svc.CreateFoods([]models.FoodCreate{
		{Name: "Milk", Unit: str("oz")},
	})
	require.ErrorIs(t, err, apperrors.ErrInvalid)
}

func TestCreateFoodsEmptyBatch(t *testing.T) {
	svc := NewFoodService(newTestDB(t))

	res, err := svc.CreateFoods(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 0, res.Skipped)
}

func TestGetFoodNotFound(t *testing.T) {
	svc := NewFoodService(newTestDB(t))

	_, err := svc.GetFood(42)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListFoodsPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewFoodService(db)

	items := make([]models.FoodCreate, 0, 12)
	for i := 0; i < 12; i++ {
		items = append(items, models.FoodCreate{Name: fmt.Sprintf("Food %02d", i)})
	}
	res, err := svc.CreateFoods(items)
	require.NoError(t, err)
	require.Equal(t, 12, res.Created)

	page, err := svc.ListFoods(0, 5)
	require.NoError(t, err)
	assert.Len(t, page, 5)

	page, err = svc.ListFoods(10, 5)
	require.NoError(t, err)
	assert.Len(t, page, 2)
}

func TestFindFoodsByName(t *testing.T) {
	db := newTestDB(t)
	svc := NewFoodService(db)

	_, err := svc.CreateFoods([]models.FoodCreate{
		{Name: "Apple", Kind: "Fuji"},
		{Name: "Apple", Kind: "Gala"},
		{Name: "Banana"},
	})
	require.NoError(t, err)

	// Kind given: exactly one match.
	foods, err := svc.FindFoodsByName("Apple", "Gala")
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "Gala", foods[0].Kind)

	// Kind given but absent: NotFound.
	_, err = svc.FindFoodsByName("Apple", "Honeycrisp")
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	// Kind omitted: all kinds sharing the name, insertion order.
	foods, err = svc.FindFoodsByName("Apple", "")
	require.NoError(t, err)
	require.Len(t, foods, 2)
	assert.Equal(t, "Fuji", foods[0].Kind)
	assert.Equal(t, "Gala", foods[1].Kind)
}

func TestUpdateFoodPartialMerge(t *testing.T) {
	db := newTestDB(t)
	svc := NewFoodService(db)

	food := seedFood(t, svc, "Apple", "Fuji", 100, f64(52))

	updated, err := svc.UpdateFood(food.ID, models.FoodPatch{
		Calories: f64(55),
		Protein:  f64(0.3),
	})
	require.NoError(t, err)

	// Only supplied fields overwrite.
	assert.Equal(t, "Apple", updated.Name)
	assert.Equal(t, "Fuji", updated.Kind)
	assert.Equal(t, 100.0, updated.Amount)
	require.NotNil(t, updated.Calories)
	assert.Equal(t, 55.0, *updated.Calories)
	require.NotNil(t, updated.Protein)
	assert.Equal(t, 0.3, *updated.Protein)
}

func TestUpdateFoodNotFound(t *testing.T) {
	svc := NewFoodService(newTestDB(t))

	_, err := svc.UpdateFood(99, models.FoodPatch{Name: str("Ghost")})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateFoodRenameConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewFoodService(db)

	seedFood(t, svc, "Apple", "Fuji", 100, nil)
	gala := seedFood(t, svc, "Apple", "Gala", 100, nil)

	_, err := svc.UpdateFood(gala.ID, models.FoodPatch{Kind: str("Fuji")})
	require.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestDeleteFoodCascadesLinksOnly(t *testing.T) {
	db := newTestDB(t)
	foodSvc := NewFoodService(db)
	mealSvc := NewCompositeService(db, models.LabelMeal)

	apple := seedFood(t, foodSvc, "Apple", "Fuji", 100, nil)
	seedFood(t, foodSvc, "Chia Seeds", "", 100, nil)

	_, err := mealSvc.CreateComposites([]models.CompositeCreate{{
		Name: "Fruit Bowl",
		Foods: []models.FoodInComposite{
			{Name: "Apple", Kind: "Fuji", Amount: 150, Unit: models.UnitGram},
			{Name: "Chia Seeds", Amount: 20, Unit: models.UnitGram},
		},
	}})
	require.NoError(t, err)

	require.NoError(t, foodSvc.DeleteFood(apple.ID))

	// The link to the deleted food is gone, the composite survives.
	var linkCount int64
	require.NoError(t, db.Model(&models.CompositeFoodLink{}).Count(&linkCount).Error)
	assert.EqualValues(t, 1, linkCount)

	views, err := mealSvc.FindCompositesByName("Fruit Bowl", "")
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Len(t, views[0].Foods, 1)
	assert.Equal(t, "Chia Seeds", views[0].Foods[0].Name)
}

func TestDeleteFoodNotFound(t *testing.T) {
	svc := NewFoodService(newTestDB(t))
	require.ErrorIs(t, svc.DeleteFood(7), apperrors.ErrNotFound)
}
