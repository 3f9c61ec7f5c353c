package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yeremiapane/food-order-bot/locales"
	"github.com/yeremiapane/food-order-bot/utils"
)

// Deps mengelompokkan kolaborator yang dipakai state machine.
type Deps struct {
	Sessions     *SessionStore
	Locales      Localizer
	Auth         AuthService
	Catalog      CatalogService
	Addresses    AddressService
	Customers    CustomerService
	Carts        CartService
	Orders       OrderService
	Feed         Notifier
	RestaurantID uint
}

// Handler adalah state machine percakapan: satu update masuk, session dibaca,
// transisi diputuskan, side effect dijalankan, session ditulis kembali.
type Handler struct {
	api          Sender
	sessions     *SessionStore
	loc          Localizer
	auth         AuthService
	catalog      CatalogService
	addresses    AddressService
	customers    CustomerService
	carts        CartService
	orders       OrderService
	feed         Notifier
	restaurantID uint
}

func NewHandler(api Sender, deps Deps) *Handler {
	return &Handler{
		api:          api,
		sessions:     deps.Sessions,
		loc:          deps.Locales,
		auth:         deps.Auth,
		catalog:      deps.Catalog,
		addresses:    deps.Addresses,
		customers:    deps.Customers,
		carts:        deps.Carts,
		orders:       deps.Orders,
		feed:         deps.Feed,
		restaurantID: deps.RestaurantID,
	}
}

// HandleUpdate memproses satu update Telegram. Lock per chat menahan dua
// delivery untuk chat yang sama (mis. duplikat webhook) supaya tidak balapan.
// Tidak ada panic yang boleh lolos ke transport.
func (h *Handler) HandleUpdate(update tgbotapi.Update) {
	chatID := updateChatID(update)
	if chatID == 0 {
		return
	}

	lock := h.sessions.ChatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	defer func() {
		if r := recover(); r != nil {
			utils.ErrorLogger.Printf("panic while handling update for chat %d: %v", chatID, r)
			locale := h.sessions.Locale(chatID)
			h.send(chatID, h.loc.T(locale, "generic_error"))
		}
	}()

	if update.CallbackQuery != nil {
		h.handleCallback(update.CallbackQuery)
		return
	}
	if update.Message != nil {
		h.handleMessage(update.Message)
	}
}

func updateChatID(update tgbotapi.Update) int64 {
	if update.Message != nil {
		return update.Message.Chat.ID
	}
	if update.CallbackQuery != nil && update.CallbackQuery.Message != nil {
		return update.CallbackQuery.Message.Chat.ID
	}
	return 0
}

// handleMessage menerapkan urutan dispatch; cabang pertama yang cocok menang.
func (h *Handler) handleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	sess := h.sessions.Get(chatID)

	switch {
	// 1. Balasan ke prompt OTP saat menunggu OTP selalu dianggap kode,
	//    apapun isi teksnya.
	case msg.ReplyToMessage != nil && sess.CurrentState == StateAwaitingOtp && msg.Text != "":
		h.handleOtpSubmission(msg, sess)

	// 2. Lokasi saat menunggu alamat.
	case msg.Location != nil && sess.CurrentState == StateAwaitingAddress:
		h.handleLocation(msg, sess)

	// 3. Teks detail alamat "jalan, kota".
	case msg.Text != "" && sess.CurrentState == StateAwaitingAddressDetails:
		h.handleAddressDetails(msg, sess)

	// 4. Kontak saat menunggu nomor telepon.
	case msg.Contact != nil && sess.CurrentState == StateAwaitingPhone:
		h.handleContact(msg, sess)

	// 5. Teks apapun saat menunggu OTP tetap diperlakukan sebagai kode.
	case msg.Text != "" && sess.CurrentState == StateAwaitingOtp:
		h.handleOtpSubmission(msg, sess)

	// 6. Dispatch teks generik: command dulu, lalu tombol menu, lalu
	//    pengingat sesuai state.
	default:
		h.handleText(msg, sess)
	}
}

func (h *Handler) handleText(msg *tgbotapi.Message, sess Session) {
	chatID := msg.Chat.ID
	locale := sess.Locale

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			h.startRegistration(chatID)
			return
		case "help":
			h.send(chatID, h.loc.T(locale, "help"))
			return
		case "menu":
			if !isBrowsing(sess.CurrentState) {
				h.send(chatID, h.loc.T(locale, "command_unavailable"))
				return
			}
			h.showCategories(chatID, locale)
			return
		case "settings":
			if !isBrowsing(sess.CurrentState) {
				h.send(chatID, h.loc.T(locale, "command_unavailable"))
				return
			}
			h.showSettings(chatID, locale)
			return
		case "deletedata":
			if !isBrowsing(sess.CurrentState) {
				h.send(chatID, h.loc.T(locale, "command_unavailable"))
				return
			}
			h.deleteData(chatID, locale)
			return
		}
		// Command tak dikenal jatuh ke dispatch tombol/pengingat di bawah.
	}

	if isBrowsing(sess.CurrentState) {
		// Caption tombol reply-keyboard dipetakan balik ke kode; dispatch
		// selalu lewat kode, pencocokan label hanya jembatan dari keyboard.
		if code, ok := h.loc.CodeForLabel(locale, msg.Text); ok {
			h.handleMenuButton(chatID, locale, code)
			return
		}
		h.showMainMenu(chatID, locale)
		return
	}

	h.remindCurrentStep(chatID, sess)
}

func (h *Handler) handleMenuButton(chatID int64, locale, code string) {
	switch code {
	case locales.BtnMenu:
		h.showCategories(chatID, locale)
	case locales.BtnCart:
		h.showCart(chatID, locale, 0)
	case locales.BtnAddresses:
		h.showAddresses(chatID, locale)
	case locales.BtnSettings:
		h.showSettings(chatID, locale)
	case locales.BtnBack:
		h.showMainMenu(chatID, locale)
	}
}

// remindCurrentStep mengirim pesan "selesaikan dulu langkah X" sesuai state.
func (h *Handler) remindCurrentStep(chatID int64, sess Session) {
	locale := sess.Locale
	switch sess.CurrentState {
	case StateStart:
		// Chat yang belum pernah terlihat: event pertama apapun membuka
		// pemilihan bahasa.
		h.startRegistration(chatID)
	case StateAwaitingLanguage:
		h.sendWithInline(chatID, h.loc.T(locale, "choose_language"), h.languageKeyboard())
	case StateAwaitingPhone:
		h.sendWithReply(chatID, h.loc.T(locale, "must_share_phone"), h.contactKeyboard(locale))
	case StateAwaitingOtp:
		h.send(chatID, h.loc.T(locale, "must_verify_otp"))
	case StateAwaitingAddress:
		h.sendWithReply(chatID, h.loc.T(locale, "must_share_location"), h.locationKeyboard(locale))
	case StateAwaitingAddressDetails:
		h.send(chatID, h.loc.T(locale, "must_address_details"))
	case StateAwaitingAddressSelection:
		h.send(chatID, h.loc.T(locale, "must_select_address"))
	default:
		h.send(chatID, h.loc.T(locale, "generic_error"))
	}
}

// handleCallback memecah callback data pada ":" dan mendispatch per prefix.
// Kombinasi yang tidak dikenal diabaikan diam-diam.
func (h *Handler) handleCallback(cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		return
	}
	chatID := cq.Message.Chat.ID
	msgID := cq.Message.MessageID

	// Jawab callback supaya spinner di client hilang.
	if _, err := h.api.Send(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		utils.ErrorLogger.Printf("answer callback: %v", err)
	}

	sess := h.sessions.Get(chatID)
	parts := strings.Split(cq.Data, ":")

	switch parts[0] {
	case "lang":
		if len(parts) == 2 {
			h.selectLanguage(chatID, msgID, parts[1])
		}
	case "category":
		if len(parts) == 2 {
			h.selectCategory(chatID, msgID, sess, parts[1])
		}
	case "product":
		if len(parts) == 2 {
			h.selectProduct(chatID, msgID, sess, parts[1])
		}
	case "qty":
		if len(parts) == 4 {
			h.adjustQuantity(chatID, msgID, sess, parts[1], parts[2], parts[3])
		}
	case "cart":
		if len(parts) == 4 && parts[1] == "add" {
			h.addToCart(chatID, msgID, sess, parts[2], parts[3])
		}
	case "address":
		if len(parts) == 2 {
			h.selectAddress(chatID, msgID, sess, parts[1])
		}
	case cbMainMenu:
		h.sessions.SetState(chatID, StateRegistered)
		h.sessions.SetMenuState(chatID, MenuMain)
		h.showMainMenu(chatID, sess.Locale)
	case cbViewCart:
		h.showCart(chatID, sess.Locale, msgID)
	case cbCheckout:
		h.startCheckout(chatID, msgID, sess)
	case cbBackToProducts:
		h.backToProducts(chatID, msgID, sess)
	case cbConfirmOrder:
		h.confirmOrder(chatID, sess)
	case cbCancelOrder:
		h.cancelOrder(chatID, msgID, sess)
	case cbAddAddress:
		h.promptAddAddress(chatID, sess)
	default:
		utils.InfoLogger.Printf("ignoring unknown callback %q from chat %d", cq.Data, chatID)
	}
}

func isBrowsing(state State) bool {
	return state == StateRegistered || state == StateProductDetail
}

// --- helper kirim pesan: error dicatat, tidak di-retry ---

func (h *Handler) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.api.Send(msg); err != nil {
		utils.ErrorLogger.Printf("send to chat %d: %v", chatID, err)
	}
}

func (h *Handler) sendWithReply(chatID int64, text string, kb tgbotapi.ReplyKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := h.api.Send(msg); err != nil {
		utils.ErrorLogger.Printf("send to chat %d: %v", chatID, err)
	}
}

func (h *Handler) sendWithInline(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := h.api.Send(msg); err != nil {
		utils.ErrorLogger.Printf("send to chat %d: %v", chatID, err)
	}
}

// sendForceReply dipakai untuk prompt OTP supaya balasan bisa dikenali.
func (h *Handler) sendForceReply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.ForceReply{ForceReply: true}
	if _, err := h.api.Send(msg); err != nil {
		utils.ErrorLogger.Printf("send to chat %d: %v", chatID, err)
	}
}

func (h *Handler) editMarkup(chatID int64, msgID int, kb tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, msgID, kb)
	if _, err := h.api.Send(edit); err != nil {
		utils.ErrorLogger.Printf("edit markup for chat %d: %v", chatID, err)
	}
}

// editOrSend mengedit pesan lama kalau msgID dikenal; kalau gagal atau msgID
// nol, kirim pesan baru.
func (h *Handler) editOrSend(chatID int64, msgID int, text string, kb tgbotapi.InlineKeyboardMarkup) {
	if msgID > 0 {
		edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
		edit.ReplyMarkup = &kb
		if _, err := h.api.Send(edit); err == nil {
			return
		}
	}
	h.sendWithInline(chatID, text, kb)
}
