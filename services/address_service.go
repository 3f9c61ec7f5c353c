package services

import (
	"gorm.io/gorm"

	"github.com/yeremiapane/food-order-bot/models"
)

type AddressService struct {
	DB *gorm.DB
}

func NewAddressService(db *gorm.DB) *AddressService {
	return &AddressService{DB: db}
}

func (as *AddressService) ListForCustomer(customerID uint) ([]models.Address, error) {
	var addresses []models.Address
	err := as.DB.Where("customer_id = ?", customerID).
		Order("created_at asc").
		Find(&addresses).Error
	return addresses, err
}

func (as *AddressService) Save(address *models.Address) error {
	return as.DB.Save(address).Error
}

func (as *AddressService) FindByID(id uint) (*models.Address, error) {
	var address models.Address
	if err := as.DB.First(&address, id).Error; err != nil {
		return nil, err
	}
	return &address, nil
}
