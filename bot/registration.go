package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/gorm"

	"github.com/yeremiapane/food-order-bot/locales"
	"github.com/yeremiapane/food-order-bot/models"
	"github.com/yeremiapane/food-order-bot/utils"
)

// startRegistration membuka (atau mengulang) alur pendaftaran: scratch data
// dibuang, lalu pemilihan bahasa.
func (h *Handler) startRegistration(chatID int64) {
	h.sessions.ClearTemporaryData(chatID)
	locale := h.sessions.Locale(chatID)

	// Customer lama langsung ke menu utama.
	if customer, err := h.customers.FindByChatID(chatID); err == nil {
		h.sessions.CacheCustomer(chatID, customer.ID)
		h.sessions.SetLocale(chatID, customer.Language)
		h.sessions.SetState(chatID, StateRegistered)
		h.sessions.SetMenuState(chatID, MenuMain)
		h.showMainMenu(chatID, customer.Language)
		return
	}

	h.sessions.SetState(chatID, StateAwaitingLanguage)
	h.sendWithInline(chatID, h.loc.T(locale, "choose_language"), h.languageKeyboard())
}

// selectLanguage menyimpan locale, mengedit pesan konfirmasi, lalu
// melanjutkan alur yang tertunda: customer terdaftar kembali ke menu utama,
// selain itu lanjut minta nomor telepon.
func (h *Handler) selectLanguage(chatID int64, msgID int, code string) {
	if !h.loc.IsSupported(code) {
		return
	}
	h.sessions.SetLocale(chatID, code)

	confirm := tgbotapi.NewEditMessageText(chatID, msgID, h.loc.T(code, "language_set", locales.LanguageName(code)))
	if _, err := h.api.Send(confirm); err != nil {
		utils.ErrorLogger.Printf("edit language confirmation for chat %d: %v", chatID, err)
	}

	if customer, err := h.customers.FindByChatID(chatID); err == nil {
		customer.Language = code
		if err := h.customers.Save(customer); err != nil {
			utils.ErrorLogger.Printf("persist language for chat %d: %v", chatID, err)
		}
		h.sessions.CacheCustomer(chatID, customer.ID)
		h.sessions.SetState(chatID, StateRegistered)
		h.sessions.SetMenuState(chatID, MenuMain)
		h.showMainMenu(chatID, code)
		return
	}

	h.sessions.SetState(chatID, StateAwaitingPhone)
	h.sendWithReply(chatID, h.loc.T(code, "share_phone"), h.contactKeyboard(code))
}

// handleContact memproses kontak yang dibagikan saat menunggu nomor telepon.
// Kontak milik orang lain ditolak dan pendaftaran diulang dari langkah ini.
func (h *Handler) handleContact(msg *tgbotapi.Message, sess Session) {
	chatID := msg.Chat.ID
	locale := sess.Locale

	if msg.From == nil || msg.Contact.UserID != msg.From.ID {
		h.sessions.SetState(chatID, StateAwaitingPhone)
		h.sendWithReply(chatID, h.loc.T(locale, "contact_not_yours"), h.contactKeyboard(locale))
		return
	}

	phone := normalizePhone(msg.Contact.PhoneNumber)
	h.sessions.SetTemporaryData(chatID, KeyPhoneNumber, phone)
	if msg.From.UserName != "" {
		h.sessions.SetTemporaryData(chatID, KeyUsername, msg.From.UserName)
	}

	otpID, err := h.auth.RequestOtp(phone)
	if err != nil {
		utils.ErrorLogger.Printf("request otp for chat %d: %v", chatID, err)
		h.sendWithReply(chatID, h.loc.T(locale, "otp_send_failed"), h.contactKeyboard(locale))
		return
	}

	h.sessions.SetTemporaryData(chatID, KeyOtpID, otpID)
	h.sessions.SetState(chatID, StateAwaitingOtp)
	h.sendForceReply(chatID, h.loc.T(locale, "otp_prompt", phone))
}

// handleOtpSubmission memverifikasi kode. Scratch data yang hilang memutus
// sesi dan mengembalikan ke START; kode salah menerbitkan otp_id baru dan
// tetap menunggu di state yang sama.
func (h *Handler) handleOtpSubmission(msg *tgbotapi.Message, sess Session) {
	chatID := msg.Chat.ID
	locale := sess.Locale

	phone, okPhone := h.sessions.GetTemporaryData(chatID, KeyPhoneNumber)
	otpID, okOtp := h.sessions.GetTemporaryData(chatID, KeyOtpID)
	if !okPhone || !okOtp {
		h.sessions.SetState(chatID, StateStart)
		h.send(chatID, h.loc.T(locale, "otp_session_lost"))
		return
	}

	code := strings.TrimSpace(msg.Text)
	if err := h.auth.VerifyOtp(phone, code, otpID); err != nil {
		newID, reqErr := h.auth.RequestOtp(phone)
		if reqErr != nil {
			utils.ErrorLogger.Printf("re-request otp for chat %d: %v", chatID, reqErr)
			h.send(chatID, h.loc.T(locale, "otp_send_failed"))
			return
		}
		h.sessions.SetTemporaryData(chatID, KeyOtpID, newID)
		h.sendForceReply(chatID, h.loc.T(locale, "otp_invalid"))
		return
	}

	h.sessions.SetTemporaryData(chatID, KeyPhoneVerified, "true")

	username, _ := h.sessions.GetTemporaryData(chatID, KeyUsername)
	customer := &models.Customer{
		ChatID:    chatID,
		Phone:     phone,
		Username:  username,
		Language:  locale,
		FirstName: firstNameOf(msg),
	}
	if err := h.customers.Save(customer); err != nil {
		utils.ErrorLogger.Printf("save customer for chat %d: %v", chatID, err)
		h.send(chatID, h.loc.T(locale, "generic_error"))
		return
	}

	h.sessions.CacheCustomer(chatID, customer.ID)
	h.sessions.ClearTemporaryData(chatID)
	h.sessions.SetState(chatID, StateAwaitingAddress)
	h.sendWithReply(chatID, h.loc.T(locale, "share_location"), h.locationKeyboard(locale))
}

// handleLocation menyimpan koordinat di scratch data dan minta detail alamat.
func (h *Handler) handleLocation(msg *tgbotapi.Message, sess Session) {
	chatID := msg.Chat.ID
	locale := sess.Locale

	h.sessions.SetTemporaryData(chatID, KeyTempLatitude, strconv.FormatFloat(msg.Location.Latitude, 'f', -1, 64))
	h.sessions.SetTemporaryData(chatID, KeyTempLongitude, strconv.FormatFloat(msg.Location.Longitude, 'f', -1, 64))
	h.sessions.SetState(chatID, StateAwaitingAddressDetails)
	h.send(chatID, h.loc.T(locale, "address_details"))
}

// handleAddressDetails mem-parse "jalan, kota" (kota kosong jadi "Unknown"),
// menyimpan alamat, lalu kembali ke REGISTERED. Kalau entry alamat ini bagian
// dari checkout (previous state = pemilihan alamat), langsung lanjut ke
// konfirmasi order dengan alamat baru.
func (h *Handler) handleAddressDetails(msg *tgbotapi.Message, sess Session) {
	chatID := msg.Chat.ID
	locale := sess.Locale

	customerID := h.resolveCustomerID(chatID)
	if customerID == 0 {
		h.sessions.SetState(chatID, StateStart)
		h.send(chatID, h.loc.T(locale, "otp_session_lost"))
		return
	}

	line, city := parseAddressDetails(msg.Text)
	lat := parseCoord(h.sessions, chatID, KeyTempLatitude)
	lon := parseCoord(h.sessions, chatID, KeyTempLongitude)

	address := &models.Address{
		CustomerID: customerID,
		Line:       line,
		City:       city,
		Latitude:   lat,
		Longitude:  lon,
	}
	if err := h.addresses.Save(address); err != nil {
		utils.ErrorLogger.Printf("save address for chat %d: %v", chatID, err)
		h.send(chatID, h.loc.T(locale, "generic_error"))
		return
	}

	fromCheckout := sess.PreviousState == StateAwaitingAddressSelection

	h.sessions.ClearTemporaryData(chatID)
	h.sessions.SetPreviousState(chatID, "")
	h.sessions.SetState(chatID, StateRegistered)
	h.sessions.SetMenuState(chatID, MenuMain)

	if fromCheckout {
		if _, err := h.orders.UpsertDraft(customerID, &address.ID, ""); err != nil {
			utils.ErrorLogger.Printf("upsert draft for chat %d: %v", chatID, err)
			h.send(chatID, h.loc.T(locale, "generic_error"))
			return
		}
		h.showConfirmation(chatID, locale)
		return
	}

	h.sendWithReply(chatID, h.loc.T(locale, "address_saved"), h.mainMenuKeyboard(locale))
}

func (h *Handler) showMainMenu(chatID int64, locale string) {
	h.sessions.SetMenuState(chatID, MenuMain)
	h.sendWithReply(chatID, h.loc.T(locale, "main_menu"), h.mainMenuKeyboard(locale))
}

func (h *Handler) showSettings(chatID int64, locale string) {
	h.sendWithInline(chatID, h.loc.T(locale, "settings"), h.languageKeyboard())
}

func (h *Handler) showAddresses(chatID int64, locale string) {
	customerID := h.resolveCustomerID(chatID)
	if customerID == 0 {
		h.send(chatID, h.loc.T(locale, "generic_error"))
		return
	}

	addresses, err := h.addresses.ListForCustomer(customerID)
	if err != nil {
		utils.ErrorLogger.Printf("list addresses for chat %d: %v", chatID, err)
		h.send(chatID, h.loc.T(locale, "generic_error"))
		return
	}
	if len(addresses) == 0 {
		h.sendWithInline(chatID, h.loc.T(locale, "checkout_no_address"), h.addAddressKeyboard(locale))
		return
	}

	var b strings.Builder
	b.WriteString(h.loc.T(locale, "addresses_title"))
	for _, a := range addresses {
		b.WriteString(fmt.Sprintf("\n• %s, %s", a.Line, a.City))
	}
	h.sendWithInline(chatID, b.String(), h.addAddressKeyboard(locale))
}

// promptAddAddress memulai entry alamat baru (callback add_address).
func (h *Handler) promptAddAddress(chatID int64, sess Session) {
	h.sessions.SetState(chatID, StateAwaitingAddress)
	h.sendWithReply(chatID, h.loc.T(sess.Locale, "share_location"), h.locationKeyboard(sess.Locale))
}

// deleteData menghapus customer + data turunannya dan mengosongkan session.
func (h *Handler) deleteData(chatID int64, locale string) {
	if err := h.customers.Delete(chatID); err != nil {
		utils.ErrorLogger.Printf("delete data for chat %d: %v", chatID, err)
		h.send(chatID, h.loc.T(locale, "generic_error"))
		return
	}
	h.sessions.Reset(chatID)
	msg := tgbotapi.NewMessage(chatID, h.loc.T(locale, "data_deleted"))
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	if _, err := h.api.Send(msg); err != nil {
		utils.ErrorLogger.Printf("send to chat %d: %v", chatID, err)
	}
}

// resolveCustomerID membaca cache session dulu, lalu database.
func (h *Handler) resolveCustomerID(chatID int64) uint {
	if id := h.sessions.Customer(chatID); id != 0 {
		return id
	}
	customer, err := h.customers.FindByChatID(chatID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.ErrorLogger.Printf("find customer for chat %d: %v", chatID, err)
		}
		return 0
	}
	h.sessions.CacheCustomer(chatID, customer.ID)
	return customer.ID
}

func parseAddressDetails(text string) (line, city string) {
	parts := strings.SplitN(text, ",", 2)
	line = strings.TrimSpace(parts[0])
	city = "Unknown"
	if len(parts) == 2 {
		if c := strings.TrimSpace(parts[1]); c != "" {
			city = c
		}
	}
	return line, city
}

func parseCoord(s *SessionStore, chatID int64, key string) float64 {
	raw, ok := s.GetTemporaryData(chatID, key)
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

func normalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone != "" && !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}
	return phone
}

func firstNameOf(msg *tgbotapi.Message) string {
	if msg.From != nil {
		return msg.From.FirstName
	}
	return ""
}
