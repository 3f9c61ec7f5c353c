package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/food-order-bot/models"
)

// Satu database in-memory bernama per test, supaya koneksi pool gorm
// melihat schema yang sama tanpa bocor antar test.
func setupOrderTestDB(t *testing.T) *gorm.DB {
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Restaurant{},
		&models.Customer{},
		&models.Address{},
		&models.MenuCategory{},
		&models.Menu{},
		&models.CartItem{},
		&models.OrderData{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedOrderFixtures(t *testing.T, db *gorm.DB) (models.Customer, models.Address, []models.Menu) {
	restaurant := models.Restaurant{Name: "Warung Test"}
	assert.NoError(t, db.Create(&restaurant).Error)

	customer := models.Customer{ChatID: 111, Phone: "+628111", FirstName: "Budi", Language: "id"}
	assert.NoError(t, db.Create(&customer).Error)

	address := models.Address{CustomerID: customer.ID, Line: "Jl. Kenanga 5", City: "Jakarta"}
	assert.NoError(t, db.Create(&address).Error)

	category := models.MenuCategory{RestaurantID: restaurant.ID, Name: "Makanan"}
	assert.NoError(t, db.Create(&category).Error)

	menus := []models.Menu{
		{CategoryID: category.ID, Name: "Nasi Goreng", Price: 40000, Available: true},
		{CategoryID: category.ID, Name: "Es Teh", Price: 10000, Available: true},
	}
	assert.NoError(t, db.Create(&menus).Error)

	return customer, address, menus
}

func TestQuotePricing(t *testing.T) {
	db := setupOrderTestDB(t)
	svc := NewOrderService(db, 10000, 1000)

	// subtotal 100000 -> +5000 service +10000 ongkir -1000 diskon = 114000
	items := []models.CartItem{
		{Quantity: 2, Menu: models.Menu{Price: 40000}},
		{Quantity: 2, Menu: models.Menu{Price: 10000}},
	}

	p := svc.Quote(items)
	assert.Equal(t, 100000.0, p.Subtotal)
	assert.Equal(t, 5000.0, p.ServiceCharge)
	assert.Equal(t, 10000.0, p.DeliveryFee)
	assert.Equal(t, 1000.0, p.Discount)
	assert.Equal(t, 114000.0, p.Total)
}

func TestCreateOrderValidation(t *testing.T) {
	db := setupOrderTestDB(t)
	customer, address, menus := seedOrderFixtures(t, db)
	svc := NewOrderService(db, 10000, 1000)

	_, err := svc.CreateOrder(customer.ID, 1, address.ID, nil, "cash")
	assert.ErrorIs(t, err, ErrEmptyOrder)

	badItems := []models.CartItem{
		{MenuID: menus[0].ID, Quantity: 0, Menu: menus[0]},
	}
	_, err = svc.CreateOrder(customer.ID, 1, address.ID, badItems, "cash")
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	// Validasi gagal tidak boleh meninggalkan order parsial
	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateOrderPersistsItems(t *testing.T) {
	db := setupOrderTestDB(t)
	customer, address, menus := seedOrderFixtures(t, db)
	svc := NewOrderService(db, 10000, 1000)

	items := []models.CartItem{
		{ChatID: customer.ChatID, MenuID: menus[0].ID, Quantity: 2, Menu: menus[0]},
		{ChatID: customer.ChatID, MenuID: menus[1].ID, Quantity: 1, Menu: menus[1]},
	}

	order, err := svc.CreateOrder(customer.ID, 1, address.ID, items, "cash")
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 90000.0, order.Subtotal)
	assert.Equal(t, 90000.0+4500.0+10000.0-1000.0, order.TotalAmount)

	var orderItems []models.OrderItem
	assert.NoError(t, db.Where("order_id = ?", order.ID).Find(&orderItems).Error)
	assert.Len(t, orderItems, 2)
	// Harga item adalah snapshot harga menu saat order dibuat
	assert.Equal(t, 40000.0, orderItems[0].Price)
}

func TestUpsertDraftSingleRowPerCustomer(t *testing.T) {
	db := setupOrderTestDB(t)
	customer, address, _ := seedOrderFixtures(t, db)
	svc := NewOrderService(db, 10000, 1000)

	first, err := svc.UpsertDraft(customer.ID, nil, "")
	assert.NoError(t, err)
	assert.Equal(t, "cash", first.PaymentOption)
	assert.Nil(t, first.AddressID)

	second, err := svc.UpsertDraft(customer.ID, &address.ID, "")
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.NotNil(t, second.AddressID)
	assert.Equal(t, address.ID, *second.AddressID)

	var count int64
	db.Model(&models.OrderData{}).Where("customer_id = ?", customer.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}
