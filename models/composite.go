package models

// A composite item is a named bundle of weighted food references. Meals
// and recipes are the same structure; Label records which catalog an
// item belongs to.
const (
	LabelMeal   = "meal"
	LabelRecipe = "recipe"
)

// CompositeItem is a meal or recipe. Name is globally unique across
// both labels; Kind is descriptive metadata only (e.g. "with milk").
type CompositeItem struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Label string `gorm:"index;not null" json:"-"`
	Name  string `gorm:"uniqueIndex;not null" json:"name"`
	Kind  string `gorm:"not null" json:"kind"`

	FoodLinks []CompositeFoodLink `gorm:"foreignKey:CompositeID" json:"-"`
}

func (ci *CompositeItem) TableName() string {
	return "composite_items"
}

// CompositeFoodLink joins a composite to one constituent food. Amount
// and Unit say how much of the food the composite uses, independent of
// the food's reference amount. Position preserves creation order.
type CompositeFoodLink struct {
	CompositeID uint    `gorm:"primaryKey;autoIncrement:false" json:"composite_id"`
	FoodID      uint    `gorm:"primaryKey;autoIncrement:false" json:"food_id"`
	Position    int     `gorm:"not null" json:"-"`
	Amount      float64 `gorm:"not null" json:"amount"`
	Unit        string  `gorm:"not null" json:"unit"`
}

func (l *CompositeFoodLink) TableName() string {
	return "composite_food_links"
}

// FoodInComposite is the external shape of one link: the referenced
// food's identity plus the amount used.
type FoodInComposite struct {
	Name   string  `json:"name" binding:"required"`
	Kind   string  `json:"kind"`
	Amount float64 `json:"amount"`
	Unit   Unit    `json:"unit"`
}

// CompositeCreate is one candidate of a batch create request. Foods
// must not be empty and each entry must resolve to an existing food.
type CompositeCreate struct {
	Name  string            `json:"name" binding:"required"`
	Kind  string            `json:"kind"`
	Foods []FoodInComposite `json:"foods" binding:"required"`
}

// CompositePatch carries a partial update of the composite's own
// scalar fields. Links are not editable in place.
type CompositePatch struct {
	Name *string `json:"name"`
	Kind *string `json:"kind"`
}

func (p CompositePatch) Apply(ci *CompositeItem) {
	if p.Name != nil {
		ci.Name = *p.Name
	}
	if p.Kind != nil {
		ci.Kind = *p.Kind
	}
}

// CompositeView is the resolved external view: every link joined back
// to its food's (name, kind), in creation order.
type CompositeView struct {
	ID    uint              `json:"id"`
	Name  string            `json:"name"`
	Kind  string            `json:"kind"`
	Foods []FoodInComposite `json:"foods"`
}
