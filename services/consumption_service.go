package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/leiwu84/my-nutri/apperrors"
	"github.com/leiwu84/my-nutri/models"
)

type ConsumptionService struct {
	db *gorm.DB
}

func NewConsumptionService(db *gorm.DB) *ConsumptionService {
	return &ConsumptionService{db: db}
}

func parseTimestamp(text string) (time.Time, error) {
	ts, err := time.ParseInLocation(models.TimestampFormat, text, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp %q, expected format %s", apperrors.ErrInvalid, text, models.TimestampFormat)
	}
	return ts, nil
}

// resolveItem turns (kind, itemName, itemKind) into the matching
// foreign key. Consumptions may reference a composite from either
// catalog, so the composite lookup ignores the label.
func resolveItem(tx *gorm.DB, kind models.ConsumptionKind, itemName, itemKind string) (foodID, compositeID *uint, err error) {
	if itemKind == "" {
		itemKind = models.DefaultKind
	}

	switch kind {
	case models.ConsumptionFood:
		var food models.Food
		if err := tx.Where("name = ? AND kind = ?", itemName, itemKind).First(&food).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, fmt.Errorf("%w: item not found when creating consumption: kind %s, item name %s, and item kind %s",
					apperrors.ErrNotFound, kind, itemName, itemKind)
			}
			return nil, nil, err
		}
		return &food.ID, nil, nil
	case models.ConsumptionComposite:
		var item models.CompositeItem
		if err := tx.Where("name = ? AND kind = ?", itemName, itemKind).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, fmt.Errorf("%w: item not found when creating consumption: kind %s, item name %s, and item kind %s",
					apperrors.ErrNotFound, kind, itemName, itemKind)
			}
			return nil, nil, err
		}
		return nil, &item.ID, nil
	default:
		return nil, nil, fmt.Errorf("%w: consumption kind %q", apperrors.ErrInvalid, kind)
	}
}

// CreateConsumptions inserts all events or none. Each event's named
// item must resolve in the catalog its kind selects.
func (s *ConsumptionService) CreateConsumptions(items []models.ConsumptionCreate) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, in := range items {
			ts, err := parseTimestamp(in.Timestamp)
			if err != nil {
				return err
			}
			if in.Unit != nil && !models.Unit(*in.Unit).Valid() {
				return fmt.Errorf("%w: unit %q", apperrors.ErrInvalid, *in.Unit)
			}

			foodID, compositeID, err := resolveItem(tx, in.Kind, in.ItemName, in.ItemKind)
			if err != nil {
				return err
			}

			event := models.Consumption{
				Timestamp:   ts,
				FoodID:      foodID,
				CompositeID: compositeID,
				Amount:      in.Amount,
				Unit:        in.Unit,
			}
			if err := tx.Create(&event).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fmt.Errorf("%w: consumption with ID %d already exists", apperrors.ErrConflict, event.ID)
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

func (s *ConsumptionService) GetConsumption(id uint) (*models.ConsumptionView, error) {
	var event models.Consumption
	if err := s.db.First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: consumption with ID %d", apperrors.ErrNotFound, id)
		}
		return nil, err
	}
	return s.Resolve(&event)
}

func (s *ConsumptionService) ListConsumptions(offset, limit int) ([]models.ConsumptionView, error) {
	var events []models.Consumption
	err := s.db.Order("id").Offset(offset).Limit(limit).Find(&events).Error
	if err != nil {
		return nil, err
	}
	return s.resolveAll(events)
}

// ListConsumptionsByRange returns every event with start <= timestamp
// <= end, both bounds in the external text format, interpreted as UTC.
func (s *ConsumptionService) ListConsumptionsByRange(start, end string) ([]models.ConsumptionView, error) {
	startTS, err := parseTimestamp(start)
	if err != nil {
		return nil, err
	}
	endTS, err := parseTimestamp(end)
	if err != nil {
		return nil, err
	}

	var events []models.Consumption
	err = s.db.Where("timestamp >= ? AND timestamp <= ?", startTS, endTS).Order("id").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return s.resolveAll(events)
}

// UpdateConsumption merges the supplied fields. Timestamp text is
// re-parsed when present. Re-pointing the event requires kind and
// item_name together; the foreign key on the other side is cleared so
// the mutual-exclusivity invariant holds after every patch.
func (s *ConsumptionService) UpdateConsumption(id uint, patch models.ConsumptionPatch) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var event models.Consumption
		if err := tx.First(&event, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: consumption with ID %d", apperrors.ErrNotFound, id)
			}
			return err
		}

		if patch.Timestamp != nil {
			ts, err := parseTimestamp(*patch.Timestamp)
			if err != nil {
				return err
			}
			event.Timestamp = ts
		}

		if patch.Kind != nil || patch.ItemName != nil || patch.ItemKind != nil {
			if patch.Kind == nil || patch.ItemName == nil {
				return fmt.Errorf("%w: re-pointing a consumption requires kind and item_name together", apperrors.ErrInvalid)
			}
			itemKind := ""
			if patch.ItemKind != nil {
				itemKind = *patch.ItemKind
			}
			foodID, compositeID, err := resolveItem(tx, *patch.Kind, *patch.ItemName, itemKind)
			if err != nil {
				return err
			}
			event.FoodID = foodID
			event.CompositeID = compositeID
		}

		if patch.Amount != nil {
			event.Amount = patch.Amount
		}
		if patch.Unit != nil {
			if !models.Unit(*patch.Unit).Valid() {
				return fmt.Errorf("%w: unit %q", apperrors.ErrInvalid, *patch.Unit)
			}
			event.Unit = patch.Unit
		}

		return tx.Save(&event).Error
	})
}

func (s *ConsumptionService) DeleteConsumption(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var event models.Consumption
		if err := tx.First(&event, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: consumption with ID %d", apperrors.ErrNotFound, id)
			}
			return err
		}
		return tx.Delete(&event).Error
	})
}

// Resolve projects the referenced item's identity into the view. The
// discriminator comes from whichever foreign key is populated. If the
// item has since been deleted the name fields stay empty instead of
// failing the read.
func (s *ConsumptionService) Resolve(event *models.Consumption) (*models.ConsumptionView, error) {
	view := models.ConsumptionView{
		ID:        event.ID,
		Timestamp: event.Timestamp.UTC().Format(models.TimestampFormat),
		Kind:      event.Kind(),
		Amount:    event.Amount,
		Unit:      event.Unit,
	}

	switch {
	case event.CompositeID != nil:
		var item models.CompositeItem
		err := s.db.First(&item, *event.CompositeID).Error
		if err == nil {
			view.ItemName = item.Name
			view.ItemKind = item.Kind
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	case event.FoodID != nil:
		var food models.Food
		err := s.db.First(&food, *event.FoodID).Error
		if err == nil {
			view.ItemName = food.Name
			view.ItemKind = food.Kind
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return &view, nil
}

func (s *ConsumptionService) resolveAll(events []models.Consumption) ([]models.ConsumptionView, error) {
	views := make([]models.ConsumptionView, 0, len(events))
	for i := range events {
		view, err := s.Resolve(&events[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}
