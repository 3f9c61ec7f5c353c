package models

import "time"

// OrderData adalah draft checkout: pilihan alamat + metode bayar milik satu
// customer, di-upsert selama sub-flow checkout (satu baris per customer).
type OrderData struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	CustomerID    uint     `gorm:"uniqueIndex;not null" json:"customer_id"`
	Customer      Customer `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	AddressID     *uint    `json:"address_id,omitempty"`
	PaymentOption string   `gorm:"type:varchar(20);not null;default:'cash'" json:"payment_option"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
