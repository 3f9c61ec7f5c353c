package models

import "time"

type Address struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	CustomerID uint     `gorm:"not null;index" json:"customer_id"`
	Customer   Customer `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Line       string   `gorm:"type:varchar(255);not null" json:"line"`
	City       string   `gorm:"type:varchar(100);not null" json:"city"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
