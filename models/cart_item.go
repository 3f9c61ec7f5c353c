package models

import "time"

// CartItem adalah satu baris keranjang, di-keyed per chat (bukan per cart id)
// karena satu chat = satu keranjang pada alur bot.
type CartItem struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	ChatID    int64 `gorm:"not null;index:idx_cart_chat_menu,unique" json:"chat_id"`
	MenuID    uint  `gorm:"not null;index:idx_cart_chat_menu,unique" json:"menu_id"`
	Menu      Menu  `gorm:"foreignKey:MenuID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"menu"`
	Quantity  int   `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
