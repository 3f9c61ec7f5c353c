package models

import "time"

// Customer adalah pelanggan yang mendaftar lewat bot Telegram.
// ChatID dipakai sebagai kunci utama percakapan.
type Customer struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ChatID    int64   `gorm:"uniqueIndex;not null" json:"chat_id"`
	Phone     string  `gorm:"type:varchar(20);index" json:"phone"`
	FirstName string  `gorm:"type:varchar(255)" json:"first_name"`
	Username  string  `gorm:"type:varchar(255)" json:"username"`
	Language  string  `gorm:"type:varchar(5);not null;default:'en'" json:"language"`
	Addresses []Address `gorm:"foreignKey:CustomerID" json:"addresses,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
