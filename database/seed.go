package database

import (
	"gorm.io/gorm"

	"github.com/yeremiapane/food-order-bot/models"
	"github.com/yeremiapane/food-order-bot/utils"
)

// Seed mengisi restoran, kategori, dan menu awal kalau database masih kosong.
// Dipanggil sekali saat start supaya bot langsung punya katalog.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Restaurant{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		restaurant := models.Restaurant{
			Name:    "Warung Nusantara",
			Address: "Jl. Melati No. 12, Jakarta",
			Phone:   "+62215550123",
		}
		if err := tx.Create(&restaurant).Error; err != nil {
			return err
		}

		categories := []models.MenuCategory{
			{RestaurantID: restaurant.ID, Name: "Makanan"},
			{RestaurantID: restaurant.ID, Name: "Minuman"},
			{RestaurantID: restaurant.ID, Name: "Cemilan"},
		}
		if err := tx.Create(&categories).Error; err != nil {
			return err
		}

		menus := []models.Menu{
			{CategoryID: categories[0].ID, Name: "Nasi Goreng Spesial", Price: 35000, Description: "Nasi goreng dengan ayam, telur, dan kerupuk", Available: true},
			{CategoryID: categories[0].ID, Name: "Ayam Bakar Madu", Price: 42000, Description: "Ayam bakar bumbu madu dengan lalapan", Available: true},
			{CategoryID: categories[0].ID, Name: "Soto Ayam", Price: 28000, Description: "Soto ayam kuah bening dengan nasi", Available: true},
			{CategoryID: categories[1].ID, Name: "Es Teh Manis", Price: 8000, Description: "Teh manis dingin", Available: true},
			{CategoryID: categories[1].ID, Name: "Jus Alpukat", Price: 18000, Description: "Jus alpukat dengan susu coklat", Available: true},
			{CategoryID: categories[2].ID, Name: "Pisang Goreng", Price: 15000, Description: "Pisang goreng crispy (5 pcs)", Available: true},
		}
		if err := tx.Create(&menus).Error; err != nil {
			return err
		}

		utils.InfoLogger.Printf("Seeded restaurant %q with %d categories and %d menus",
			restaurant.Name, len(categories), len(menus))
		return nil
	})
}
