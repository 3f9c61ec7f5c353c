package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yeremiapane/food-order-bot/models"
	"github.com/yeremiapane/food-order-bot/services"
)

// Sender adalah saluran keluar ke Telegram; *tgbotapi.BotAPI memenuhinya.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// AuthService menerbitkan dan memverifikasi OTP.
type AuthService interface {
	RequestOtp(phone string) (string, error)
	VerifyOtp(phone, code, otpID string) error
}

// CatalogService menyediakan kategori dan produk.
type CatalogService interface {
	CategoriesByRestaurant(restaurantID uint) ([]models.MenuCategory, error)
	ProductsByCategory(categoryID uint) ([]models.Menu, error)
	ProductByID(id uint) (*models.Menu, error)
}

type AddressService interface {
	ListForCustomer(customerID uint) ([]models.Address, error)
	Save(address *models.Address) error
	FindByID(id uint) (*models.Address, error)
}

type CustomerService interface {
	FindByChatID(chatID int64) (*models.Customer, error)
	FindByPhone(phone string) (*models.Customer, error)
	Save(customer *models.Customer) error
	Delete(chatID int64) error
}

type CartService interface {
	AddItem(chatID int64, menuID uint, quantity int) error
	GetCart(chatID int64) ([]models.CartItem, error)
	ClearCart(chatID int64) error
}

type OrderService interface {
	Quote(items []models.CartItem) services.Pricing
	UpsertDraft(customerID uint, addressID *uint, paymentOption string) (*models.OrderData, error)
	GetDraft(customerID uint) (*models.OrderData, error)
	CreateOrder(customerID, restaurantID, addressID uint, items []models.CartItem, paymentOption string) (*models.Order, error)
}

// Localizer me-resolve key + locale menjadi teks pesan dan label tombol.
type Localizer interface {
	T(locale, key string, args ...interface{}) string
	ButtonLabel(locale, code string) string
	CodeForLabel(locale, text string) (string, bool)
	Supported() []string
	IsSupported(code string) bool
}

// Notifier menyiarkan event order ke dashboard staff (feed hub). Boleh nil.
type Notifier interface {
	OrderCreated(order models.Order)
}
