package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yeremiapane/food-order-bot/models"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// FindByChatID mencari customer berdasarkan chat Telegram.
func (us *UserService) FindByChatID(chatID int64) (*models.Customer, error) {
	var customer models.Customer
	if err := us.DB.Where("chat_id = ?", chatID).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (us *UserService) FindByPhone(phone string) (*models.Customer, error) {
	var customer models.Customer
	if err := us.DB.Where("phone = ?", phone).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// Save membuat atau memperbarui customer (upsert per chat id).
func (us *UserService) Save(customer *models.Customer) error {
	if customer.ChatID == 0 {
		return errors.New("customer chat id is required")
	}

	var existing models.Customer
	err := us.DB.Where("chat_id = ?", customer.ChatID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return us.DB.Create(customer).Error
	}
	if err != nil {
		return err
	}

	customer.ID = existing.ID
	return us.DB.Save(customer).Error
}

// Delete menghapus customer beserta alamat, keranjang, dan draft-nya
// (perintah /deletedata di bot).
func (us *UserService) Delete(chatID int64) error {
	customer, err := us.FindByChatID(chatID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	return us.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chat_id = ?", chatID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", customer.ID).Delete(&models.OrderData{}).Error; err != nil {
			return err
		}
		if err := tx.Where("customer_id = ?", customer.ID).Delete(&models.Address{}).Error; err != nil {
			return err
		}
		return tx.Delete(customer).Error
	})
}
