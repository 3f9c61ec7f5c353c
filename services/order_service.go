package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yeremiapane/food-order-bot/models"
)

// ServiceChargeRate adalah biaya layanan, 5% dari subtotal.
const ServiceChargeRate = 0.05

var (
	ErrEmptyOrder      = errors.New("order has no items")
	ErrInvalidQuantity = errors.New("item quantity must be positive")
)

type OrderService struct {
	DB          *gorm.DB
	DeliveryFee float64
	Discount    float64
}

func NewOrderService(db *gorm.DB, deliveryFee, discount float64) *OrderService {
	return &OrderService{DB: db, DeliveryFee: deliveryFee, Discount: discount}
}

// Pricing adalah rincian harga satu order sebelum/ sesudah dibuat.
type Pricing struct {
	Subtotal      float64
	ServiceCharge float64
	DeliveryFee   float64
	Discount      float64
	Total         float64
}

// Quote menghitung rincian harga dari isi keranjang tanpa menyentuh database.
// total = subtotal + 5% subtotal + ongkir - diskon.
func (osv *OrderService) Quote(items []models.CartItem) Pricing {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Menu.Price * float64(item.Quantity)
	}
	p := Pricing{
		Subtotal:      subtotal,
		ServiceCharge: subtotal * ServiceChargeRate,
		DeliveryFee:   osv.DeliveryFee,
		Discount:      osv.Discount,
	}
	p.Total = p.Subtotal + p.ServiceCharge + p.DeliveryFee - p.Discount
	return p
}

// UpsertDraft menyimpan pilihan alamat/pembayaran checkout; satu baris per
// customer (find-or-create).
func (osv *OrderService) UpsertDraft(customerID uint, addressID *uint, paymentOption string) (*models.OrderData, error) {
	var draft models.OrderData
	err := osv.DB.Where("customer_id = ?", customerID).First(&draft).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		draft = models.OrderData{CustomerID: customerID, PaymentOption: "cash"}
	} else if err != nil {
		return nil, err
	}

	if addressID != nil {
		draft.AddressID = addressID
	}
	if paymentOption != "" {
		draft.PaymentOption = paymentOption
	}

	if err := osv.DB.Save(&draft).Error; err != nil {
		return nil, err
	}
	return &draft, nil
}

func (osv *OrderService) GetDraft(customerID uint) (*models.OrderData, error) {
	var draft models.OrderData
	if err := osv.DB.Where("customer_id = ?", customerID).First(&draft).Error; err != nil {
		return nil, err
	}
	return &draft, nil
}

// CreateOrder membuat order berstatus pending dari isi keranjang.
// Item kosong atau quantity <= 0 ditolak sebelum menyentuh database;
// order + item disimpan dalam satu transaksi supaya tidak ada order parsial.
func (osv *OrderService) CreateOrder(customerID, restaurantID, addressID uint, items []models.CartItem, paymentOption string) (*models.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	pricing := osv.Quote(items)

	order := models.Order{
		CustomerID:    customerID,
		RestaurantID:  restaurantID,
		AddressID:     addressID,
		PaymentOption: paymentOption,
		Status:        models.OrderStatusPending,
		Subtotal:      pricing.Subtotal,
		ServiceCharge: pricing.ServiceCharge,
		DeliveryFee:   pricing.DeliveryFee,
		Discount:      pricing.Discount,
		TotalAmount:   pricing.Total,
	}

	err := osv.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, item := range items {
			orderItem := models.OrderItem{
				OrderID:  order.ID,
				MenuID:   item.MenuID,
				Quantity: item.Quantity,
				Price:    item.Menu.Price,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}
