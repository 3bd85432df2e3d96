package models

import "time"

type Rider struct {
	RID                 uint      `gorm:"column:rid;primaryKey;autoIncrement" json:"rid"`
	Name                string    `gorm:"column:name;not null" json:"name"`
	Phone               string    `gorm:"column:phone;uniqueIndex;not null" json:"phone"`
	Password            string    `gorm:"column:password;not null" json:"-"`
	VehicleRegistration string    `gorm:"column:vehicleRegistration" json:"vehicleRegistration"`
	Image               string    `gorm:"column:image" json:"image"`
	CreatedAt           time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (Rider) TableName() string {
	return "riders"
}
