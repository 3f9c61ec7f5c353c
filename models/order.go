package models

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	CustomerID    uint        `gorm:"not null;index" json:"customer_id"`
	Customer      Customer    `gorm:"foreignKey:CustomerID" json:"customer"`
	RestaurantID  uint        `gorm:"not null" json:"restaurant_id"`
	Restaurant    Restaurant  `gorm:"foreignKey:RestaurantID" json:"-"`
	AddressID     uint        `gorm:"not null" json:"address_id"`
	Address       Address     `gorm:"foreignKey:AddressID" json:"address"`
	PaymentOption string      `gorm:"type:varchar(20);not null;default:'cash'" json:"payment_option"`
	Status        string      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Subtotal      float64     `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	ServiceCharge float64     `gorm:"type:decimal(10,2);not null" json:"service_charge"`
	DeliveryFee   float64     `gorm:"type:decimal(10,2);not null" json:"delivery_fee"`
	Discount      float64     `gorm:"type:decimal(10,2);not null" json:"discount"`
	TotalAmount   float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	OrderItems    []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
	CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
}
