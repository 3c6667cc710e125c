package model

// Group is an award track (nomination). Sessions belong to exactly one group
// and are ranked against the other sessions of the same group.
// swagger:model Group
type Group struct {
	BaseModel
	Name        string `gorm:"size:255;unique;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Year        int    `gorm:"default:0" json:"year"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`
}

func (Group) TableName() string {
	return "groups"
}
