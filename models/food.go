package models

// DefaultKind tags entries that have no specific varietal, e.g. a plain
// "Apple" as opposed to "Apple"/"Fuji".
const DefaultKind = "General"

// Food is an atomic catalog entry. Nutrition fields are reported per
// Amount+Unit (e.g. per 100g) and stay nil when unknown.
type Food struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	Name          string   `gorm:"uniqueIndex:idx_foods_name_kind;not null" json:"name"`
	Kind          string   `gorm:"uniqueIndex:idx_foods_name_kind;not null" json:"kind"`
	Amount        float64  `gorm:"not null" json:"amount"`
	Unit          string   `gorm:"not null" json:"unit"`
	Calories      *float64 `json:"calories"`
	Fat           *float64 `json:"fat"`
	FatSaturated  *float64 `json:"fat_saturated"`
	Carbohydrates *float64 `json:"carbohydrates"`
	Sugars        *float64 `json:"sugars"`
	Fiber         *float64 `json:"fiber"`
	Protein       *float64 `json:"protein"`
}

func (f *Food) TableName() string {
	return "foods"
}

// FoodCreate is one candidate row of a batch create request.
type FoodCreate struct {
	Name          string   `json:"name" binding:"required"`
	Kind          string   `json:"kind"`
	Amount        *float64 `json:"amount"`
	Unit          *string  `json:"unit"`
	Calories      *float64 `json:"calories"`
	Fat           *float64 `json:"fat"`
	FatSaturated  *float64 `json:"fat_saturated"`
	Carbohydrates *float64 `json:"carbohydrates"`
	Sugars        *float64 `json:"sugars"`
	Fiber         *float64 `json:"fiber"`
	Protein       *float64 `json:"protein"`
}

// Food materializes the candidate with catalog defaults: kind
// "General", reference amount 100g.
func (in FoodCreate) Food() Food {
	f := Food{
		Name:          in.Name,
		Kind:          in.Kind,
		Amount:        100,
		Unit:          UnitGram.String(),
		Calories:      in.Calories,
		Fat:           in.Fat,
		FatSaturated:  in.FatSaturated,
		Carbohydrates: in.Carbohydrates,
		Sugars:        in.Sugars,
		Fiber:         in.Fiber,
		Protein:       in.Protein,
	}
	if f.Kind == "" {
		f.Kind = DefaultKind
	}
	if in.Amount != nil {
		f.Amount = *in.Amount
	}
	if in.Unit != nil {
		f.Unit = *in.Unit
	}
	return f
}

// FoodPatch carries a partial update; only non-nil fields overwrite.
type FoodPatch struct {
	Name          *string  `json:"name"`
	Kind          *string  `json:"kind"`
	Amount        *float64 `json:"amount"`
	Unit          *string  `json:"unit"`
	Calories      *float64 `json:"calories"`
	Fat           *float64 `json:"fat"`
	FatSaturated  *float64 `json:"fat_saturated"`
	Carbohydrates *float64 `json:"carbohydrates"`
	Sugars        *float64 `json:"sugars"`
	Fiber         *float64 `json:"fiber"`
	Protein       *float64 `json:"protein"`
}

func (p FoodPatch) Apply(f *Food) {
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Kind != nil {
		f.Kind = *p.Kind
	}
	if p.Amount != nil {
		f.Amount = *p.Amount
	}
	if p.Unit != nil {
		f.Unit = *p.Unit
	}
	if p.Calories != nil {
		f.Calories = p.Calories
	}
	if p.Fat != nil {
		f.Fat = p.Fat
	}
	if p.FatSaturated != nil {
		f.FatSaturated = p.FatSaturated
	}
	if p.Carbohydrates != nil {
		f.Carbohydrates = p.Carbohydrates
	}
	if p.Sugars != nil {
		f.Sugars = p.Sugars
	}
	if p.Fiber != nil {
		f.Fiber = p.Fiber
	}
	if p.Protein != nil {
		f.Protein = p.Protein
	}
}
