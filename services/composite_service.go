package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/leiwu84/my-nutri/apperrors"
	"github.com/leiwu84/my-nutri/models"
)

// CompositeService manages one composite catalog. Meals and recipes
// are the same implementation instantiated with different labels; the
// label scopes every lookup, while name uniqueness stays global.
type CompositeService struct {
	db    *gorm.DB
	label string
}

func NewCompositeService(db *gorm.DB, label string) *CompositeService {
	return &CompositeService{db: db, label: label}
}

// CreateComposites inserts the candidates whose names are new and
// skips the ones that already exist. Every embedded food reference
// must resolve to an existing food by (name, kind); a miss aborts the
// whole batch. Composite row and links commit atomically.
func (s *CompositeService) CreateComposites(items []models.CompositeCreate) (*BatchResult, error) {
	var res BatchResult
	if len(items) == 0 {
		return &res, nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, in := range items {
			if len(in.Foods) == 0 {
				return fmt.Errorf("%w: %s %q must reference at least one food", apperrors.ErrInvalid, s.label, in.Name)
			}

			var existing models.CompositeItem
			err := tx.Where("name = ?", in.Name).First(&existing).Error
			if err == nil {
				res.Skipped++
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			item := models.CompositeItem{Label: s.label, Name: in.Name, Kind: in.Kind}
			if item.Kind == "" {
				item.Kind = models.DefaultKind
			}
			if err := tx.Create(&item).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fmt.Errorf("%w: %s already exists: name %s", apperrors.ErrConflict, s.label, in.Name)
				}
				return err
			}

			for i, ref := range in.Foods {
				if !ref.Unit.Valid() {
					return fmt.Errorf("%w: unit %q for food %q in %s %q", apperrors.ErrInvalid, ref.Unit, ref.Name, s.label, in.Name)
				}
				kind := ref.Kind
				if kind == "" {
					kind = models.DefaultKind
				}

				var food models.Food
				if err := tx.Where("name = ? AND kind = ?", ref.Name, kind).First(&food).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("%w: food not found when creating %s: %s and kind %s", apperrors.ErrNotFound, s.label, ref.Name, kind)
					}
					return err
				}

				link := models.CompositeFoodLink{
					CompositeID: item.ID,
					FoodID:      food.ID,
					Position:    i,
					Amount:      ref.Amount,
					Unit:        ref.Unit.String(),
				}
				if err := tx.Create(&link).Error; err != nil {
					if errors.Is(err, gorm.ErrDuplicatedKey) {
						return fmt.Errorf("%w: food %s appears more than once in %s %s", apperrors.ErrConflict, ref.Name, s.label, in.Name)
					}
					return err
				}
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

func (s *CompositeService) GetComposite(id uint) (*models.CompositeView, error) {
	var item models.CompositeItem
	err := s.db.Where("id = ? AND label = ?", id, s.label).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s with ID %d", apperrors.ErrNotFound, s.label, id)
	}
	if err != nil {
		return nil, err
	}
	return s.Resolve(&item)
}

func (s *CompositeService) ListComposites(offset, limit int) ([]models.CompositeView, error) {
	var items []models.CompositeItem
	err := s.db.Where("label = ?", s.label).Order("id").Offset(offset).Limit(limit).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return s.resolveAll(items)
}

// FindCompositesByName looks up by name; since names are unique the
// result holds at most one row, and a supplied kind only narrows it.
func (s *CompositeService) FindCompositesByName(name, kind string) ([]models.CompositeView, error) {
	if kind != "" {
		var item models.CompositeItem
		err := s.db.Where("label = ? AND name = ? AND kind = ?", s.label, name, kind).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s with name %s and kind %s", apperrors.ErrNotFound, s.label, name, kind)
		}
		if err != nil {
			return nil, err
		}
		view, err := s.Resolve(&item)
		if err != nil {
			return nil, err
		}
		return []models.CompositeView{*view}, nil
	}

	var items []models.CompositeItem
	err := s.db.Where("label = ? AND name = ?", s.label, name).Order("id").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return s.resolveAll(items)
}

// UpdateComposite merges name/kind; food links are only exercised
// through re-creation, never edited in place. Renaming onto an
// existing composite name is a Conflict.
func (s *CompositeService) UpdateComposite(id uint, patch models.CompositePatch) (*models.CompositeView, error) {
	var item models.CompositeItem
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND label = ?", id, s.label).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s with ID %d", apperrors.ErrNotFound, s.label, id)
			}
			return err
		}

		patch.Apply(&item)
		if err := tx.Save(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: %s already exists: name %s", apperrors.ErrConflict, s.label, item.Name)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Resolve(&item)
}

// DeleteComposite removes the composite and its links. Consumption
// rows referencing it are left behind.
func (s *CompositeService) DeleteComposite(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var item models.CompositeItem
		if err := tx.Where("id = ? AND label = ?", id, s.label).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s with ID %d", apperrors.ErrNotFound, s.label, id)
			}
			return err
		}

		if err := tx.Where("composite_id = ?", id).Delete(&models.CompositeFoodLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}

// Resolve joins every link back to its food and assembles the external
// view in creation order. The item must come from the store so its ID
// is set.
func (s *CompositeService) Resolve(item *models.CompositeItem) (*models.CompositeView, error) {
	var links []models.CompositeFoodLink
	err := s.db.Where("composite_id = ?", item.ID).Order("position").Find(&links).Error
	if err != nil {
		return nil, err
	}

	foods := make([]models.FoodInComposite, 0, len(links))
	for _, link := range links {
		var food models.Food
		if err := s.db.First(&food, link.FoodID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Dangling links are never created, so a miss here means
				// the food vanished mid-read; skip rather than fail.
				continue
			}
			return nil, err
		}
		foods = append(foods, models.FoodInComposite{
			Name:   food.Name,
			Kind:   food.Kind,
			Amount: link.Amount,
			Unit:   models.Unit(link.Unit),
		})
	}

	return &models.CompositeView{
		ID:    item.ID,
		Name:  item.Name,
		Kind:  item.Kind,
		Foods: foods,
	}, nil
}

func (s *CompositeService) resolveAll(items []models.CompositeItem) ([]models.CompositeView, error) {
	views := make([]models.CompositeView, 0, len(items))
	for i := range items {
		view, err := s.Resolve(&items[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}
