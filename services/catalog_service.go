package services

import (
	"gorm.io/gorm"

	"github.com/yeremiapane/food-order-bot/models"
)

type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

func (cs *CatalogService) CategoriesByRestaurant(restaurantID uint) ([]models.MenuCategory, error) {
	var categories []models.MenuCategory
	err := cs.DB.Where("restaurant_id = ?", restaurantID).
		Order("name asc").
		Find(&categories).Error
	return categories, err
}

func (cs *CatalogService) ProductsByCategory(categoryID uint) ([]models.Menu, error) {
	var menus []models.Menu
	err := cs.DB.Where("category_id = ? AND available = ?", categoryID, true).
		Order("name asc").
		Find(&menus).Error
	return menus, err
}

func (cs *CatalogService) ProductByID(id uint) (*models.Menu, error) {
	var menu models.Menu
	if err := cs.DB.First(&menu, id).Error; err != nil {
		return nil, err
	}
	return &menu, nil
}
