package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/leiwu84/my-nutri/apperrors"
	"github.com/leiwu84/my-nutri/models"
)

// BatchResult reports the outcome of a duplicate-skipping batch create.
type BatchResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

func (r BatchResult) Detail(noun string) string {
	return fmt.Sprintf("Created %d %s; skipped %d duplicates based on name and kind.", r.Created, noun, r.Skipped)
}

type FoodService struct {
	db *gorm.DB
}

func NewFoodService(db *gorm.DB) *FoodService {
	return &FoodService{db: db}
}

// CreateFoods inserts the candidates that don't already exist by
// (name, kind) and skips the ones that do. All-or-nothing: any other
// failure rolls the whole batch back. The existence check is only an
// optimization; the unique index is the real guard, and a violation
// that slips past the check still comes back as a Conflict.
func (s *FoodService) CreateFoods(items []models.FoodCreate) (*BatchResult, error) {
	var res BatchResult
	if len(items) == 0 {
		return &res, nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, in := range items {
			food := in.Food()
			if !models.Unit(food.Unit).Valid() {
				return fmt.Errorf("%w: unit %q for food %q", apperrors.ErrInvalid, food.Unit, food.Name)
			}

			var existing models.Food
			err := tx.Where("name = ? AND kind = ?", food.Name, food.Kind).First(&existing).Error
			if err == nil {
				res.Skipped++
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			if err := tx.Create(&food).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fmt.Errorf("%w: food already exists: name %s", apperrors.ErrConflict, food.Name)
				}
				return err
			}
			res.Created++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *FoodService) GetFood(id uint) (*models.Food, error) {
	var food models.Food
	if err := s.db.First(&food, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: food with ID %d", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	return &food, nil
}

func (s *FoodService) ListFoods(offset, limit int) ([]models.Food, error) {
	var foods []models.Food
	err := s.db.Order("id").Offset(offset).Limit(limit).Find(&foods).Error
	return foods, err
}

// FindFoodsByName returns all kinds sharing a name, or, when kind is
// given, exactly the one matching (name, kind) row.
func (s *FoodService) FindFoodsByName(name, kind string) ([]models.Food, error) {
	if kind != "" {
		var food models.Food
		err := s.db.Where("name = ? AND kind = ?", name, kind).First(&food).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: food with name %s and kind %s", apperrors.ErrNotFound, name, kind)
		}
		if err != nil {
			return nil, err
		}
		return []models.Food{food}, nil
	}

	var foods []models.Food
	err := s.db.Where("name = ?", name).Order("id").Find(&foods).Error
	return foods, err
}

// UpdateFood merges the supplied fields into the stored row. A patch
// that moves the row onto another (name, kind) pair is a Conflict.
func (s *FoodService) UpdateFood(id uint, patch models.FoodPatch) (*models.Food, error) {
	var food models.Food
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&food, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: food with ID %d", apperrors.ErrNotFound, id)
			}
			return err
		}

		patch.Apply(&food)
		if !models.Unit(food.Unit).Valid() {
			return fmt.Errorf("%w: unit %q", apperrors.ErrInvalid, food.Unit)
		}

		if err := tx.Save(&food).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: food already exists: name %s and kind %s", apperrors.ErrConflict, food.Name, food.Kind)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &food, nil
}

// DeleteFood removes the food and its composite links. Consumption
// rows referencing it are left behind; resolution tolerates them.
func (s *FoodService) DeleteFood(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var food models.Food
		if err := tx.First(&food, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: food with ID %d", apperrors.ErrNotFound, id)
			}
			return err
		}

		if err := tx.Where("food_id = ?", id).Delete(&models.CompositeFoodLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(&food).Error
	})
}
