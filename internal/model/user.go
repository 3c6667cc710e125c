package model

import "time"

type UserRole string

const (
	Peserta    UserRole = "PESERTA"
	Admin      UserRole = "ADMIN"
	Superadmin UserRole = "SUPERADMIN"
	Juri       UserRole = "JURI"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"type:enum('PESERTA','ADMIN','SUPERADMIN','JURI');default:'PESERTA'" json:"role"`
	Agency    string    `gorm:"size:255" json:"agency"` // institution the participant represents
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}
