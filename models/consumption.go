package models

import "time"

// TimestampFormat is the external text format for consumption
// timestamps, always interpreted as UTC.
const TimestampFormat = "2006-01-02 15:04"

// ConsumptionKind discriminates what a consumption event references.
// It is derived from which foreign key is populated, never stored.
type ConsumptionKind string

const (
	ConsumptionFood      ConsumptionKind = "Food"
	ConsumptionComposite ConsumptionKind = "Composite"
)

func (k ConsumptionKind) Valid() bool {
	return k == ConsumptionFood || k == ConsumptionComposite
}

// Consumption is one ledger event. Exactly one of CompositeID/FoodID
// is set. Amount/Unit describe the observed consumed quantity and may
// be absent.
type Consumption struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Timestamp   time.Time `gorm:"index;not null" json:"timestamp"`
	CompositeID *uint     `json:"composite_id"`
	FoodID      *uint     `json:"food_id"`
	Amount      *float64  `json:"amount"`
	Unit        *string   `json:"unit"`
}

func (co *Consumption) TableName() string {
	return "consumptions"
}

// Kind derives the discriminator from the populated foreign key.
func (co *Consumption) Kind() ConsumptionKind {
	if co.CompositeID != nil {
		return ConsumptionComposite
	}
	return ConsumptionFood
}

// ConsumptionCreate is one event of a batch create request. The item
// is named, not referenced by id; (ItemName, ItemKind) must resolve in
// the catalog selected by Kind.
type ConsumptionCreate struct {
	Timestamp string          `json:"timestamp" binding:"required"`
	Kind      ConsumptionKind `json:"kind" binding:"required"`
	ItemName  string          `json:"item_name" binding:"required"`
	ItemKind  string          `json:"item_kind"`
	Amount    *float64        `json:"amount"`
	Unit      *string         `json:"unit"`
}

// ConsumptionPatch carries a partial update. Re-pointing the event at
// a different item requires Kind and ItemName together so the stored
// foreign key cannot desynchronize from the discriminator.
type ConsumptionPatch struct {
	Timestamp *string          `json:"timestamp"`
	Kind      *ConsumptionKind `json:"kind"`
	ItemName  *string          `json:"item_name"`
	ItemKind  *string          `json:"item_kind"`
	Amount    *float64         `json:"amount"`
	Unit      *string          `json:"unit"`
}

// ConsumptionView is the resolved external view. ItemName/ItemKind are
// empty when the referenced item has since been deleted.
type ConsumptionView struct {
	ID        uint            `json:"id"`
	Timestamp string          `json:"timestamp"`
	Kind      ConsumptionKind `json:"kind"`
	ItemName  string          `json:"item_name"`
	ItemKind  string          `json:"item_kind"`
	Amount    *float64        `json:"amount"`
	Unit      *string         `json:"unit"`
}
