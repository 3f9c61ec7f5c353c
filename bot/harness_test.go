package bot

import (
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/gorm"

	"github.com/yeremiapane/food-order-bot/locales"
	"github.com/yeremiapane/food-order-bot/models"
	"github.com/yeremiapane/food-order-bot/services"
	"github.com/yeremiapane/food-order-bot/utils"
)

// fakeSender merekam semua Chattable yang dikirim handler.
type fakeSender struct {
	sent []tgbotapi.Chattable
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

// texts mengembalikan teks pesan keluar secara berurutan; jawaban callback dan
// edit markup dilewati.
func (f *fakeSender) texts() []string {
	var out []string
	for _, c := range f.sent {
		switch m := c.(type) {
		case tgbotapi.MessageConfig:
			out = append(out, m.Text)
		case tgbotapi.EditMessageTextConfig:
			out = append(out, m.Text)
		}
	}
	return out
}

func (f *fakeSender) lastText() string {
	texts := f.texts()
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

func (f *fakeSender) reset() { f.sent = nil }

type fakeAuth struct {
	codes   map[string]string // otpID -> kode yang benar
	issued  []string
	seq     int
	failReq bool
}

func (f *fakeAuth) RequestOtp(phone string) (string, error) {
	if f.failReq {
		return "", errors.New("sms gateway unavailable")
	}
	f.seq++
	id := fmt.Sprintf("otp-%d", f.seq)
	if f.codes == nil {
		f.codes = make(map[string]string)
	}
	f.codes[id] = "123456"
	f.issued = append(f.issued, id)
	return id, nil
}

func (f *fakeAuth) VerifyOtp(phone, code, otpID string) error {
	if want, ok := f.codes[otpID]; ok && want == code {
		delete(f.codes, otpID)
		return nil
	}
	return services.ErrOtpInvalid
}

type fakeCustomers struct {
	byChat map[int64]*models.Customer
	seq    uint
}

func newFakeCustomers() *fakeCustomers {
	return &fakeCustomers{byChat: make(map[int64]*models.Customer)}
}

func (f *fakeCustomers) FindByChatID(chatID int64) (*models.Customer, error) {
	if c, ok := f.byChat[chatID]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCustomers) FindByPhone(phone string) (*models.Customer, error) {
	for _, c := range f.byChat {
		if c.Phone == phone {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCustomers) Save(customer *models.Customer) error {
	if existing, ok := f.byChat[customer.ChatID]; ok {
		customer.ID = existing.ID
	}
	if customer.ID == 0 {
		f.seq++
		customer.ID = f.seq
	}
	cp := *customer
	f.byChat[customer.ChatID] = &cp
	return nil
}

func (f *fakeCustomers) Delete(chatID int64) error {
	delete(f.byChat, chatID)
	return nil
}

type fakeCatalog struct {
	categories []models.MenuCategory
	products   map[uint][]models.Menu
	byID       map[uint]models.Menu
}

func (f *fakeCatalog) CategoriesByRestaurant(uint) ([]models.MenuCategory, error) {
	return f.categories, nil
}

func (f *fakeCatalog) ProductsByCategory(categoryID uint) ([]models.Menu, error) {
	return f.products[categoryID], nil
}

func (f *fakeCatalog) ProductByID(id uint) (*models.Menu, error) {
	if m, ok := f.byID[id]; ok {
		return &m, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeAddresses struct {
	byCustomer map[uint][]models.Address
	seq        uint
}

func newFakeAddresses() *fakeAddresses {
	return &fakeAddresses{byCustomer: make(map[uint][]models.Address)}
}

func (f *fakeAddresses) ListForCustomer(customerID uint) ([]models.Address, error) {
	return f.byCustomer[customerID], nil
}

func (f *fakeAddresses) Save(address *models.Address) error {
	f.seq++
	address.ID = f.seq
	f.byCustomer[address.CustomerID] = append(f.byCustomer[address.CustomerID], *address)
	return nil
}

func (f *fakeAddresses) FindByID(id uint) (*models.Address, error) {
	for _, list := range f.byCustomer {
		for _, a := range list {
			if a.ID == id {
				cp := a
				return &cp, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeCarts struct {
	items map[int64][]models.CartItem
	menus map[uint]models.Menu
}

func newFakeCarts(menus map[uint]models.Menu) *fakeCarts {
	return &fakeCarts{items: make(map[int64][]models.CartItem), menus: menus}
}

func (f *fakeCarts) AddItem(chatID int64, menuID uint, quantity int) error {
	if quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	for i, item := range f.items[chatID] {
		if item.MenuID == menuID {
			f.items[chatID][i].Quantity += quantity
			return nil
		}
	}
	f.items[chatID] = append(f.items[chatID], models.CartItem{
		ChatID:   chatID,
		MenuID:   menuID,
		Quantity: quantity,
		Menu:     f.menus[menuID],
	})
	return nil
}

func (f *fakeCarts) GetCart(chatID int64) ([]models.CartItem, error) {
	return f.items[chatID], nil
}

func (f *fakeCarts) ClearCart(chatID int64) error {
	delete(f.items, chatID)
	return nil
}

type fakeOrders struct {
	drafts     map[uint]*models.OrderData
	created    []models.Order
	seq        uint
	failCreate bool
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{drafts: make(map[uint]*models.OrderData)}
}

func (f *fakeOrders) Quote(items []models.CartItem) services.Pricing {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Menu.Price * float64(item.Quantity)
	}
	p := services.Pricing{
		Subtotal:      subtotal,
		ServiceCharge: subtotal * services.ServiceChargeRate,
		DeliveryFee:   10000,
		Discount:      1000,
	}
	p.Total = p.Subtotal + p.ServiceCharge + p.DeliveryFee - p.Discount
	return p
}

func (f *fakeOrders) UpsertDraft(customerID uint, addressID *uint, paymentOption string) (*models.OrderData, error) {
	draft, ok := f.drafts[customerID]
	if !ok {
		draft = &models.OrderData{CustomerID: customerID, PaymentOption: "cash"}
		f.drafts[customerID] = draft
	}
	if addressID != nil {
		draft.AddressID = addressID
	}
	if paymentOption != "" {
		draft.PaymentOption = paymentOption
	}
	return draft, nil
}

func (f *fakeOrders) GetDraft(customerID uint) (*models.OrderData, error) {
	if draft, ok := f.drafts[customerID]; ok {
		return draft, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrders) CreateOrder(customerID, restaurantID, addressID uint, items []models.CartItem, paymentOption string) (*models.Order, error) {
	if f.failCreate {
		return nil, errors.New("database unavailable")
	}
	if len(items) == 0 {
		return nil, services.ErrEmptyOrder
	}
	pricing := f.Quote(items)
	f.seq++
	order := models.Order{
		ID:            f.seq,
		CustomerID:    customerID,
		RestaurantID:  restaurantID,
		AddressID:     addressID,
		PaymentOption: paymentOption,
		Status:        models.OrderStatusPending,
		Subtotal:      pricing.Subtotal,
		TotalAmount:   pricing.Total,
	}
	f.created = append(f.created, order)
	return &order, nil
}

type fakeNotifier struct {
	orders []models.Order
}

func (f *fakeNotifier) OrderCreated(order models.Order) {
	f.orders = append(f.orders, order)
}

// fixture menjahit handler lengkap dengan semua fake.
type fixture struct {
	handler   *Handler
	sender    *fakeSender
	sessions  *SessionStore
	auth      *fakeAuth
	customers *fakeCustomers
	catalog   *fakeCatalog
	addresses *fakeAddresses
	carts     *fakeCarts
	orders    *fakeOrders
	notifier  *fakeNotifier
	loc       *locales.Localizer
}

func newFixture() *fixture {
	utils.InitLogger()

	menus := map[uint]models.Menu{
		1: {ID: 1, CategoryID: 1, Name: "Nasi Goreng", Description: "Nasi goreng spesial", Price: 35000, Available: true},
		2: {ID: 2, CategoryID: 1, Name: "Ayam Bakar", Description: "Ayam bakar madu", Price: 42000, Available: true},
		3: {ID: 3, CategoryID: 2, Name: "Es Teh", Description: "Teh manis dingin", Price: 8000, Available: true},
	}

	sender := &fakeSender{}
	sessions := NewSessionStore("en", 0)
	auth := &fakeAuth{}
	customers := newFakeCustomers()
	catalog := &fakeCatalog{
		categories: []models.MenuCategory{
			{ID: 1, RestaurantID: 1, Name: "Makanan"},
			{ID: 2, RestaurantID: 1, Name: "Minuman"},
		},
		products: map[uint][]models.Menu{
			1: {menus[1], menus[2]},
			2: {menus[3]},
		},
		byID: menus,
	}
	addresses := newFakeAddresses()
	carts := newFakeCarts(menus)
	orders := newFakeOrders()
	notifier := &fakeNotifier{}
	loc := locales.New("en")

	handler := NewHandler(sender, Deps{
		Sessions:     sessions,
		Locales:      loc,
		Auth:         auth,
		Catalog:      catalog,
		Addresses:    addresses,
		Customers:    customers,
		Carts:        carts,
		Orders:       orders,
		Feed:         notifier,
		RestaurantID: 1,
	})

	return &fixture{
		handler:   handler,
		sender:    sender,
		sessions:  sessions,
		auth:      auth,
		customers: customers,
		catalog:   catalog,
		addresses: addresses,
		carts:     carts,
		orders:    orders,
		notifier:  notifier,
		loc:       loc,
	}
}

// registered menyiapkan chat yang sudah selesai mendaftar.
func (f *fixture) registered(chatID int64) *models.Customer {
	customer := &models.Customer{ChatID: chatID, Phone: "+628111", FirstName: "Budi", Language: "en"}
	if err := f.customers.Save(customer); err != nil {
		panic(err)
	}
	f.sessions.CacheCustomer(chatID, customer.ID)
	f.sessions.SetState(chatID, StateRegistered)
	return customer
}

func (f *fixture) withAddress(customer *models.Customer) models.Address {
	address := models.Address{CustomerID: customer.ID, Line: "Jl. Kenanga 5", City: "Jakarta"}
	if err := f.addresses.Save(&address); err != nil {
		panic(err)
	}
	return address
}

// --- pembuat update Telegram ---

func textUpdate(chatID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: chatID, FirstName: "Budi", UserName: "budi"},
		Chat:      &tgbotapi.Chat{ID: chatID},
		Text:      text,
	}}
}

func commandUpdate(chatID int64, command string) tgbotapi.Update {
	u := textUpdate(chatID, "/"+command)
	u.Message.Entities = []tgbotapi.MessageEntity{
		{Type: "bot_command", Offset: 0, Length: len(command) + 1},
	}
	return u
}

func contactUpdate(chatID int64, ownerID int64, phone string) tgbotapi.Update {
	u := textUpdate(chatID, "")
	u.Message.Contact = &tgbotapi.Contact{PhoneNumber: phone, UserID: ownerID}
	return u
}

func locationUpdate(chatID int64, lat, lon float64) tgbotapi.Update {
	u := textUpdate(chatID, "")
	u.Message.Location = &tgbotapi.Location{Latitude: lat, Longitude: lon}
	return u
}

func replyUpdate(chatID int64, text string) tgbotapi.Update {
	u := textUpdate(chatID, text)
	u.Message.ReplyToMessage = &tgbotapi.Message{MessageID: 99, Chat: &tgbotapi.Chat{ID: chatID}}
	return u
}

func callbackUpdate(chatID int64, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: chatID},
		Data:    data,
		Message: &tgbotapi.Message{MessageID: 7, Chat: &tgbotapi.Chat{ID: chatID}},
	}}
}
