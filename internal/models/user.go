package models

import "time"

// User is a customer who sends or receives shipments.
type User struct {
	UID       uint      `gorm:"column:uid;primaryKey;autoIncrement" json:"uid"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Phone     string    `gorm:"column:phone;uniqueIndex;not null" json:"phone"`
	Password  string    `gorm:"column:password;not null" json:"-"` // bcrypt hash
	Address   string    `gorm:"column:address" json:"address"`
	GPS       string    `gorm:"column:gps" json:"gps"`
	Image     string    `gorm:"column:image" json:"image"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}
