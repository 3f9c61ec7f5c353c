package models

import "time"

type Restaurant struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"type:varchar(255);unique;not null" json:"name"`
	Address   string `gorm:"type:varchar(255)" json:"address"`
	Phone     string `gorm:"type:varchar(20)" json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
