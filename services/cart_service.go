package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yeremiapane/food-order-bot/models"
)

type CartService struct {
	DB *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{DB: db}
}

// AddItem meng-upsert satu baris keranjang: kalau menu sudah ada di keranjang
// chat ini, quantity dijumlahkan; kalau belum, baris baru dibuat.
func (cs *CartService) AddItem(chatID int64, menuID uint, quantity int) error {
	if quantity <= 0 {
		return errors.New("quantity must be positive")
	}

	var item models.CartItem
	err := cs.DB.Where("chat_id = ? AND menu_id = ?", chatID, menuID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.CartItem{
			ChatID:   chatID,
			MenuID:   menuID,
			Quantity: quantity,
		}
		return cs.DB.Create(&item).Error
	}
	if err != nil {
		return err
	}

	item.Quantity += quantity
	return cs.DB.Save(&item).Error
}

// GetCart mengembalikan isi keranjang beserta data menu, urut sesuai penambahan.
func (cs *CartService) GetCart(chatID int64) ([]models.CartItem, error) {
	var items []models.CartItem
	err := cs.DB.Preload("Menu").
		Where("chat_id = ?", chatID).
		Order("created_at asc").
		Find(&items).Error
	return items, err
}

func (cs *CartService) ClearCart(chatID int64) error {
	return cs.DB.Where("chat_id = ?", chatID).Delete(&models.CartItem{}).Error
}
