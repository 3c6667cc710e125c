package model

type ScoreType string

const (
	ScoreTypeNumber     ScoreType = "number"
	ScoreTypePercentage ScoreType = "percentage"
	ScoreTypeCurrency   ScoreType = "currency"
	ScoreTypeRating     ScoreType = "rating"
	ScoreTypeBoolean    ScoreType = "boolean"
)

// Category is a scoring rubric dimension attached to questions. Weight
// multiplies the raw numeric answer; MinValue/MaxValue only classify the
// answer as under/in/over range and never block a submission. The stored
// bounds may be inverted, readers must normalize via NormalizedRange.
// swagger:model Category
type Category struct {
	BaseModel
	Name      string    `gorm:"size:255;unique;not null" json:"name"`
	Weight    float64   `gorm:"default:1" json:"weight"`
	MinValue  float64   `gorm:"default:0" json:"minValue"`
	MaxValue  float64   `gorm:"default:0" json:"maxValue"`
	ScoreType ScoreType `gorm:"size:20;default:'number'" json:"scoreType"`
}

func (Category) TableName() string {
	return "categories"
}

// NormalizedRange returns the bounds with min <= max regardless of how the
// admin entered them.
func (c *Category) NormalizedRange() (min, max float64) {
	if c.MinValue <= c.MaxValue {
		return c.MinValue, c.MaxValue
	}
	return c.MaxValue, c.MinValue
}
